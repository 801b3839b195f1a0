package internal

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/strutkit/strut/pkg/health"
	"github.com/strutkit/strut/pkg/l10n"
	"github.com/strutkit/strut/pkg/logger"
	"github.com/strutkit/strut/pkg/view"
)

// Option configures the application.
type Option func(*App)

// WithRoutes appends routes to the global route table.
// Routes are matched in the order given across all WithRoutes calls.
func WithRoutes(routes ...Route) Option {
	return func(a *App) {
		a.rawRoutes = append(a.rawRoutes, routes...)
	}
}

// WithModuleRoutes appends routes to a module's route table.
// A request resolving to a module without a route table is a fatal
// configuration error at dispatch time, not a 404.
func WithModuleRoutes(module string, routes ...Route) Option {
	return func(a *App) {
		a.rawModuleRoutes[module] = append(a.rawModuleRoutes[module], routes...)
	}
}

// WithController registers a controller factory under a name referenced by
// the global route table.
func WithController(name string, factory Factory) Option {
	return func(a *App) {
		if factory == nil {
			panic(fmt.Errorf("%w: %q", ErrNilControllerFactory, name))
		}
		a.controllers[name] = factory
	}
}

// WithModuleController registers a controller factory in a module's registry.
func WithModuleController(module, name string, factory Factory) Option {
	return func(a *App) {
		if factory == nil {
			panic(fmt.Errorf("%w: %q (module %q)", ErrNilControllerFactory, name, module))
		}
		reg, ok := a.moduleControllers[module]
		if !ok {
			reg = make(map[string]Factory)
			a.moduleControllers[module] = reg
		}
		reg[name] = factory
	}
}

// WithBootstrap registers bootstrap hooks for a module ("" for non-module
// requests). Hooks run in registration order before routing.
func WithBootstrap(module string, hooks ...Hook) Option {
	return func(a *App) {
		for _, h := range hooks {
			if h == nil {
				panic(fmt.Errorf("%w: bootstrap (module %q)", ErrNilHook, module))
			}
		}
		a.bootstraps[module] = append(a.bootstraps[module], hooks...)
	}
}

// WithPredispatch registers hooks that run after the route is matched but
// before the controller is invoked. A hook that writes a response
// short-circuits the dispatch.
func WithPredispatch(hooks ...Hook) Option {
	return func(a *App) {
		for _, h := range hooks {
			if h == nil {
				panic(fmt.Errorf("%w: predispatch", ErrNilHook))
			}
		}
		a.predispatch = append(a.predispatch, hooks...)
	}
}

// WithHTTPSEnforced redirects every plain-HTTP request to HTTPS,
// regardless of the per-controller set.
func WithHTTPSEnforced() Option {
	return func(a *App) {
		a.httpsEnforced = true
	}
}

// WithHTTPSControllers marks controllers that require HTTPS. Requests for
// other controllers arriving over HTTPS are redirected back to HTTP unless
// WithHTTPSEnforced is set.
func WithHTTPSControllers(names ...string) Option {
	return func(a *App) {
		for _, name := range names {
			a.httpsControllers[name] = struct{}{}
		}
	}
}

// WithLocales enables path-based language resolution for dispatch.
func WithLocales(locales *l10n.Locales) Option {
	return func(a *App) {
		a.locales = locales
	}
}

// WithViews sets the view renderer used by Context.Render.
func WithViews(renderer *view.Renderer) Option {
	return func(a *App) {
		a.renderer = renderer
	}
}

// WithRoot sets the application root directory from which the conventional
// folder layout (application/, application/controller/, application/module/,
// application/view/, resource/l10n/) is derived. Default: ".".
func WithRoot(root string) Option {
	return func(a *App) {
		a.paths = NewPaths(root)
	}
}

// WithModuleResolver replaces the default module resolver
// (X-Strut-Module header, then the STRUT_MODULE environment variable).
func WithModuleResolver(resolver ModuleResolver) Option {
	return func(a *App) {
		if resolver != nil {
			a.moduleResolver = resolver
		}
	}
}

// WithMiddleware adds middleware around the dispatch pipeline.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithStaticFiles mounts a static file handler at the given pattern on the
// outer router, ahead of the dispatcher. Directory listings are disabled.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	strut.New(
//	    strut.WithStaticFiles("/static/", assets, "public"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		subFS, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}

		fileServer := http.FileServerFS(subFS)

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}

			w.Header().Set("Cache-Control", "public, max-age=3600")
			w.Header().Set("X-Content-Type-Options", "nosniff")

			fileServer.ServeHTTP(w, r)
		})

		a.staticRoutes = append(a.staticRoutes, staticRoute{handler, pattern})
	}
}

// WithLogger creates a logger with a component name and optional extractors.
// The component name is added to every log entry for easy filtering.
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(extractors...).With("component", component)
	}
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live) always returns OK; readiness (/health/ready) runs
// all configured checks.
//
// Example:
//
//	strut.WithHealthChecks(
//	    strut.WithReadinessCheck("db", db.Healthcheck(pool)),
//	    strut.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			checks:        make(health.Checks),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during readiness probe.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		c.checks[name] = fn
	}
}
