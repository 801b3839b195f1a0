package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/strutkit/strut/internal"
	"github.com/strutkit/strut/middlewares"
)

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("fast handler completes normally", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := newTestContext(httptest.NewRecorder(), req)

		handler := middlewares.Timeout(time.Second)(func(c internal.Context) error {
			return nil
		})

		require.NoError(t, handler(ctx))
	})

	t.Run("slow handler yields TimeoutError", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := newTestContext(httptest.NewRecorder(), req)

		timeout := 20 * time.Millisecond
		handler := middlewares.Timeout(timeout)(func(c internal.Context) error {
			time.Sleep(500 * time.Millisecond)
			return nil
		})

		err := handler(ctx)
		require.Error(t, err)
		require.True(t, middlewares.IsTimeoutError(err))

		var te *middlewares.TimeoutError
		require.ErrorAs(t, err, &te)
		require.Equal(t, timeout, te.Duration)
	})

	t.Run("handler error survives timeout wrapping", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := newTestContext(httptest.NewRecorder(), req)

		handler := middlewares.Timeout(time.Second)(func(c internal.Context) error {
			return internal.ErrNotFound("gone")
		})

		err := handler(ctx)
		require.True(t, internal.IsHTTPError(err))
	})

	t.Run("GetTimeoutContext carries the deadline", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := newTestContext(httptest.NewRecorder(), req)

		handler := middlewares.Timeout(time.Second)(func(c internal.Context) error {
			tctx := middlewares.GetTimeoutContext(c)
			_, ok := tctx.Deadline()
			require.True(t, ok)
			return nil
		})

		require.NoError(t, handler(ctx))
	})
}
