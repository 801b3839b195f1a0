package strut_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strutkit/strut"
)

type pingController struct {
	strut.Base
}

func (ctrl *pingController) Get(c strut.Context) error {
	return c.String(http.StatusOK, "pong lang="+c.Language())
}

type errorController struct {
	strut.Base
}

func (ctrl *errorController) Get(c strut.Context) error {
	httpErr := c.DispatchError()
	return c.String(httpErr.Code, httpErr.StatusText())
}

func TestFacade(t *testing.T) {
	t.Parallel()

	app := strut.New(
		strut.WithRoutes(
			strut.Route{Pattern: "ping", Controller: "Ping"},
		),
		strut.WithController("Ping", func() strut.Controller { return &pingController{} }),
		strut.WithController(strut.ErrorControllerName, func() strut.Controller { return &errorController{} }),
	)

	t.Run("dispatches through the public API", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "pong lang=", rec.Body.String())
	})

	t.Run("error controller renders failures", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "Not Found", rec.Body.String())
	})

	t.Run("405 for unhandled verbs", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/ping", nil))

		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestContextValue(t *testing.T) {
	t.Parallel()

	type tenantKey struct{}

	var got string
	app := strut.New(
		strut.WithRoutes(strut.Route{Pattern: "ping", Controller: "Ping"}),
		strut.WithController("Ping", func() strut.Controller { return &pingController{} }),
		strut.WithPredispatch(func(c strut.Context) error {
			c.Set(tenantKey{}, "acme")
			got = strut.ContextValue[string](c, tenantKey{})
			return nil
		}),
	)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "acme", got)
}

func TestPaths(t *testing.T) {
	t.Parallel()

	app := strut.New(strut.WithRoot("/srv/app"))
	paths := app.Paths()

	require.Equal(t, "/srv/app", paths.Root)
	require.Contains(t, paths.Controllers, "application")
	require.Contains(t, paths.Views, "view")
	require.Contains(t, paths.L10n, "l10n")
}
