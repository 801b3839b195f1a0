package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strutkit/strut/internal"
	"github.com/strutkit/strut/middlewares"
)

func TestLogging(t *testing.T) {
	t.Parallel()

	t.Run("passes result through on success", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		ctx := newTestContext(httptest.NewRecorder(), req)

		invoked := false
		handler := middlewares.Logging()(func(c internal.Context) error {
			invoked = true
			return nil
		})

		require.NoError(t, handler(ctx))
		require.True(t, invoked)
	})

	t.Run("re-returns handler errors untouched", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		ctx := newTestContext(httptest.NewRecorder(), req)

		want := errors.New("handler failed")
		handler := middlewares.Logging()(func(c internal.Context) error {
			return want
		})

		require.ErrorIs(t, handler(ctx), want)
	})
}
