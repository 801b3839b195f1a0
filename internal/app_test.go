package internal_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strutkit/strut/internal"
	"github.com/strutkit/strut/pkg/l10n"
)

// echoController writes method, language, and params so tests can assert on
// what the dispatcher resolved.
type echoController struct {
	internal.Base
}

func (ctrl *echoController) Get(c internal.Context) error {
	return c.String(http.StatusOK, "get lang="+c.Language()+" params="+strings.Join(c.Params(), ","))
}

func (ctrl *echoController) Post(c internal.Context) error {
	return c.String(http.StatusOK, "post")
}

// getOnlyController tracks whether its verb method ran.
type getOnlyController struct {
	internal.Base
	invoked *bool
}

func (ctrl *getOnlyController) Get(c internal.Context) error {
	*ctrl.invoked = true
	return c.NoContent(http.StatusOK)
}

// errorPageController renders the dispatch failure.
type errorPageController struct {
	internal.Base
}

func (ctrl *errorPageController) Get(c internal.Context) error {
	httpErr := c.DispatchError()
	if httpErr == nil {
		return c.String(http.StatusInternalServerError, "no dispatch error")
	}
	return c.String(httpErr.Code, "error page: "+httpErr.Message)
}

func echoFactory() internal.Controller { return &echoController{} }

func doRequest(t *testing.T, app *internal.App, method, target string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestDispatch_Basic(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithRoutes(
			internal.Route{Pattern: "", Controller: "Index"},
			internal.Route{Pattern: `users/\d+`, Controller: "Users"},
		),
		internal.WithController("Index", echoFactory),
		internal.WithController("Users", echoFactory),
	)

	t.Run("root path", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, app, http.MethodGet, "/", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "get lang= params=", rec.Body.String())
	})

	t.Run("params are ordered path segments", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, app, http.MethodGet, "/users/42", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "get lang= params=users,42", rec.Body.String())
	})

	t.Run("method selects verb handler", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, app, http.MethodPost, "/users/42", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "post", rec.Body.String())
	})

	t.Run("no route match is 404", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, app, http.MethodGet, "/users/42/edit", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("anchored segment mismatch is 404", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, app, http.MethodGet, "/users/42a", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDispatch_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	invoked := false
	app := internal.New(
		internal.WithRoutes(internal.Route{Pattern: "ping", Controller: "Ping"}),
		internal.WithController("Ping", func() internal.Controller {
			return &getOnlyController{invoked: &invoked}
		}),
	)

	rec := doRequest(t, app, http.MethodDelete, "/ping", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.False(t, invoked)
}

func TestDispatch_UnregisteredController(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithRoutes(internal.Route{Pattern: "ghost", Controller: "Ghost"}),
	)

	rec := doRequest(t, app, http.MethodGet, "/ghost", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDispatch_Language(t *testing.T) {
	t.Parallel()

	locales, err := l10n.New("en", "es", "de")
	require.NoError(t, err)

	app := internal.New(
		internal.WithLocales(locales),
		internal.WithRoutes(
			internal.Route{Pattern: `users`, Controller: "Users"},
			internal.Route{Pattern: `\w+/users`, Controller: "PrefixedUsers"},
		),
		internal.WithController("Users", echoFactory),
		internal.WithController("PrefixedUsers", echoFactory),
	)

	t.Run("supported non-default language is consumed", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, app, http.MethodGet, "/es/users", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "get lang=es params=users", rec.Body.String())
	})

	t.Run("default language segment is not consumed", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, app, http.MethodGet, "/en/users", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "get lang=en params=en,users", rec.Body.String())
	})

	t.Run("unsupported language segment is not consumed", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, app, http.MethodGet, "/fr/users", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "get lang=en params=fr,users", rec.Body.String())
	})
}

func TestDispatch_Modules(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithRoutes(internal.Route{Pattern: "users", Controller: "Users"}),
		internal.WithController("Users", echoFactory),
		internal.WithModuleRoutes("admin",
			internal.Route{Pattern: "users", Controller: "AdminUsers"},
		),
		internal.WithModuleController("admin", "AdminUsers", echoFactory),
	)

	t.Run("module header selects module route table", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, app, http.MethodGet, "/users", map[string]string{
			internal.ModuleHeader: "admin",
		})
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("module without route table is a server error, not 404", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, app, http.MethodGet, "/users", map[string]string{
			internal.ModuleHeader: "shop",
		})
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("module registry does not fall through to global controllers", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithModuleRoutes("admin",
				internal.Route{Pattern: "users", Controller: "Users"},
			),
			internal.WithController("Users", echoFactory),
		)

		rec := doRequest(t, app, http.MethodGet, "/users", map[string]string{
			internal.ModuleHeader: "admin",
		})
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestDispatch_Hooks(t *testing.T) {
	t.Parallel()

	t.Run("bootstrap runs before routing", func(t *testing.T) {
		t.Parallel()

		var order []string
		app := internal.New(
			internal.WithRoutes(internal.Route{Pattern: "users", Controller: "Users"}),
			internal.WithController("Users", func() internal.Controller {
				return &getOnlyController{invoked: new(bool)}
			}),
			internal.WithBootstrap("", func(c internal.Context) error {
				order = append(order, "bootstrap")
				require.Empty(t, c.ControllerName())
				return nil
			}),
			internal.WithPredispatch(func(c internal.Context) error {
				order = append(order, "predispatch")
				require.Equal(t, "Users", c.ControllerName())
				return nil
			}),
		)

		rec := doRequest(t, app, http.MethodGet, "/users", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, []string{"bootstrap", "predispatch"}, order)
	})

	t.Run("bootstrap error stops dispatch", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithRoutes(internal.Route{Pattern: "users", Controller: "Users"}),
			internal.WithController("Users", echoFactory),
			internal.WithBootstrap("", func(c internal.Context) error {
				return errors.New("boom")
			}),
		)

		rec := doRequest(t, app, http.MethodGet, "/users", nil)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("predispatch response short-circuits the controller", func(t *testing.T) {
		t.Parallel()

		invoked := false
		app := internal.New(
			internal.WithRoutes(internal.Route{Pattern: "users", Controller: "Users"}),
			internal.WithController("Users", func() internal.Controller {
				return &getOnlyController{invoked: &invoked}
			}),
			internal.WithPredispatch(func(c internal.Context) error {
				return c.Redirect(http.StatusFound, "/login")
			}),
		)

		rec := doRequest(t, app, http.MethodGet, "/users", nil)
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/login", rec.Header().Get("Location"))
		require.False(t, invoked)
	})
}

func TestDispatch_HTTPSPolicy(t *testing.T) {
	t.Parallel()

	t.Run("enforced redirects insecure requests", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithHTTPSEnforced(),
			internal.WithRoutes(internal.Route{Pattern: "users", Controller: "Users"}),
			internal.WithController("Users", echoFactory),
		)

		rec := doRequest(t, app, http.MethodGet, "/users", nil)
		require.Equal(t, http.StatusMovedPermanently, rec.Code)
		require.Equal(t, "https://example.com/users", rec.Header().Get("Location"))
	})

	t.Run("enforced passes secure requests through", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithHTTPSEnforced(),
			internal.WithRoutes(internal.Route{Pattern: "users", Controller: "Users"}),
			internal.WithController("Users", echoFactory),
		)

		rec := doRequest(t, app, http.MethodGet, "/users", map[string]string{
			"X-Forwarded-Proto": "https",
		})
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("controller in set redirects insecure requests", func(t *testing.T) {
		t.Parallel()

		invoked := false
		app := internal.New(
			internal.WithHTTPSControllers("Secure"),
			internal.WithRoutes(internal.Route{Pattern: "secure", Controller: "Secure"}),
			internal.WithController("Secure", func() internal.Controller {
				return &getOnlyController{invoked: &invoked}
			}),
		)

		rec := doRequest(t, app, http.MethodGet, "/secure", nil)
		require.Equal(t, http.StatusMovedPermanently, rec.Code)
		require.Equal(t, "https://example.com/secure", rec.Header().Get("Location"))
		require.False(t, invoked)
	})

	t.Run("controller not in set downgrades secure requests", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithHTTPSControllers("Secure"),
			internal.WithRoutes(internal.Route{Pattern: "public", Controller: "Public"}),
			internal.WithController("Public", echoFactory),
		)

		rec := doRequest(t, app, http.MethodGet, "/public", map[string]string{
			"X-Forwarded-Proto": "https",
		})
		require.Equal(t, http.StatusMovedPermanently, rec.Code)
		require.Equal(t, "http://example.com/public", rec.Header().Get("Location"))
	})

	t.Run("redirect drops an explicit port", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithHTTPSEnforced(),
			internal.WithRoutes(internal.Route{Pattern: "users", Controller: "Users"}),
			internal.WithController("Users", echoFactory),
		)

		req := httptest.NewRequest(http.MethodGet, "/users?page=2", nil)
		req.Host = "example.com:8080"
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusMovedPermanently, rec.Code)
		require.Equal(t, "https://example.com/users?page=2", rec.Header().Get("Location"))
	})
}

func TestDispatch_ErrorController(t *testing.T) {
	t.Parallel()

	t.Run("renders dispatch failures", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithRoutes(internal.Route{Pattern: "users", Controller: "Users"}),
			internal.WithController("Users", echoFactory),
			internal.WithController(internal.ErrorControllerName, func() internal.Controller {
				return &errorPageController{}
			}),
		)

		rec := doRequest(t, app, http.MethodGet, "/missing", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "error page: Not Found", rec.Body.String())
	})

	t.Run("module error controller wins over global", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithModuleRoutes("admin",
				internal.Route{Pattern: "users", Controller: "Missing"},
			),
			internal.WithController(internal.ErrorControllerName, func() internal.Controller {
				return &errorPageController{}
			}),
			internal.WithModuleController("admin", internal.ErrorControllerName, func() internal.Controller {
				return &errorPageController{}
			}),
		)

		rec := doRequest(t, app, http.MethodGet, "/users", map[string]string{
			internal.ModuleHeader: "admin",
		})
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "error page:")
	})

	t.Run("module dispatch falls back to global error controller", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithModuleRoutes("admin",
				internal.Route{Pattern: "users", Controller: "Missing"},
			),
			internal.WithController(internal.ErrorControllerName, func() internal.Controller {
				return &errorPageController{}
			}),
		)

		rec := doRequest(t, app, http.MethodGet, "/users", map[string]string{
			internal.ModuleHeader: "admin",
		})
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "error page:")
	})

	t.Run("plain text fallback without error controller", func(t *testing.T) {
		t.Parallel()

		app := internal.New()

		rec := doRequest(t, app, http.MethodGet, "/missing", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "Not Found")
	})
}

func TestDispatch_Middleware(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) internal.Middleware {
		return func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				order = append(order, name)
				return next(c)
			}
		}
	}

	app := internal.New(
		internal.WithRoutes(internal.Route{Pattern: "users", Controller: "Users"}),
		internal.WithController("Users", echoFactory),
		internal.WithMiddleware(mw("first"), mw("second")),
	)

	rec := doRequest(t, app, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"first", "second"}, order)
}

func TestNew_PanicsOnBadConfig(t *testing.T) {
	t.Parallel()

	t.Run("invalid route pattern", func(t *testing.T) {
		t.Parallel()
		require.Panics(t, func() {
			internal.New(internal.WithRoutes(internal.Route{Pattern: `users/[`, Controller: "Users"}))
		})
	})

	t.Run("invalid module route pattern", func(t *testing.T) {
		t.Parallel()
		require.Panics(t, func() {
			internal.New(internal.WithModuleRoutes("admin",
				internal.Route{Pattern: `(`, Controller: "Users"},
			))
		})
	})

	t.Run("nil controller factory", func(t *testing.T) {
		t.Parallel()
		require.Panics(t, func() {
			internal.New(internal.WithController("Users", nil))
		})
	})

	t.Run("nil predispatch hook", func(t *testing.T) {
		t.Parallel()
		require.Panics(t, func() {
			internal.New(internal.WithPredispatch(nil))
		})
	})
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithHealthChecks(
			internal.WithReadinessCheck("always", func(ctx context.Context) error { return nil }),
		),
	)

	t.Run("liveness", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, app, http.MethodGet, "/health/live", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "OK", rec.Body.String())
	})

	t.Run("readiness", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, app, http.MethodGet, "/health/ready", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("health paths bypass dispatch", func(t *testing.T) {
		t.Parallel()

		// No routes are registered, so anything reaching the dispatcher 404s.
		rec := doRequest(t, app, http.MethodGet, "/other", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestModuleResolver_Custom(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithModuleResolver(func(r *http.Request) string {
			return "api"
		}),
		internal.WithModuleRoutes("api",
			internal.Route{Pattern: "status", Controller: "Status"},
		),
		internal.WithModuleController("api", "Status", echoFactory),
	)

	rec := doRequest(t, app, http.MethodGet, "/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
