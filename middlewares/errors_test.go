package middlewares_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/strutkit/strut/middlewares"
)

func TestPanicError(t *testing.T) {
	t.Parallel()

	err := &middlewares.PanicError{Value: "boom"}
	require.Equal(t, "panic: boom", err.Error())

	wrapped := fmt.Errorf("dispatch: %w", err)
	require.True(t, middlewares.IsPanicError(wrapped))
	require.False(t, middlewares.IsPanicError(errors.New("boom")))
	require.False(t, middlewares.IsPanicError(nil))
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()

	err := &middlewares.TimeoutError{Duration: 5 * time.Second}
	require.Equal(t, "request timeout after 5s", err.Error())

	wrapped := fmt.Errorf("dispatch: %w", err)
	require.True(t, middlewares.IsTimeoutError(wrapped))
	require.False(t, middlewares.IsTimeoutError(errors.New("slow")))
}
