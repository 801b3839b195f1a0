package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strutkit/strut/internal"
)

func TestHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("message and code", func(t *testing.T) {
		t.Parallel()

		err := internal.NewHTTPError(http.StatusTeapot, "short and stout")
		require.Equal(t, "short and stout", err.Error())
		require.Equal(t, http.StatusTeapot, err.StatusCode())
		require.Equal(t, "I'm a teapot", err.StatusText())
	})

	t.Run("unwraps attached error", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("db down")
		err := internal.ErrInternal("Internal Server Error", internal.WithError(cause))
		require.ErrorIs(t, err, cause)
	})

	t.Run("convenience constructors", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, http.StatusBadRequest, internal.ErrBadRequest("x").Code)
		require.Equal(t, http.StatusNotFound, internal.ErrNotFound("x").Code)
		require.Equal(t, http.StatusMethodNotAllowed, internal.ErrMethodNotAllowed("x").Code)
		require.Equal(t, http.StatusInternalServerError, internal.ErrInternal("x").Code)
	})
}

func TestIsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("direct HTTPError", func(t *testing.T) {
		t.Parallel()
		require.True(t, internal.IsHTTPError(internal.ErrNotFound("not found")))
	})

	t.Run("wrapped HTTPError", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("dispatch: %w", internal.ErrNotFound("not found"))
		require.True(t, internal.IsHTTPError(err))
	})

	t.Run("plain error", func(t *testing.T) {
		t.Parallel()
		require.False(t, internal.IsHTTPError(errors.New("boom")))
	})

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		require.False(t, internal.IsHTTPError(nil))
	})
}

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("extracts from chain", func(t *testing.T) {
		t.Parallel()

		httpErr := internal.ErrMethodNotAllowed("nope")
		err := fmt.Errorf("outer: %w", httpErr)

		got := internal.AsHTTPError(err)
		require.NotNil(t, got)
		require.Equal(t, http.StatusMethodNotAllowed, got.Code)
	})

	t.Run("nil for non-http errors", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, internal.AsHTTPError(errors.New("boom")))
	})
}
