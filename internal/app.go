package internal

import (
	"log/slog"
	"net/http"
	"os"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/strutkit/strut/pkg/health"
	"github.com/strutkit/strut/pkg/l10n"
	"github.com/strutkit/strut/pkg/logger"
	"github.com/strutkit/strut/pkg/view"
)

// Environment and header names consulted by the default module resolver.
const (
	// ModuleEnvVar selects a fixed module for the whole process.
	ModuleEnvVar = "STRUT_MODULE"

	// ModuleHeader selects a module per request, typically set by a
	// fronting web server. It takes precedence over the environment.
	ModuleHeader = "X-Strut-Module"
)

// ModuleResolver derives the module name for a request, or "" for
// non-module requests.
type ModuleResolver func(r *http.Request) string

// App is the front controller. It is explicitly constructed via New and
// immutable afterwards: route tables are compiled, controller registries
// frozen, and hooks validated at construction time.
type App struct {
	mux               chi.Router
	logger            *slog.Logger
	renderer          *view.Renderer
	locales           *l10n.Locales
	moduleResolver    ModuleResolver
	routes            routeSet
	moduleRoutes      map[string]routeSet
	controllers       map[string]Factory
	moduleControllers map[string]map[string]Factory
	bootstraps        map[string][]Hook
	predispatch       []Hook
	httpsControllers  map[string]struct{}
	httpsEnforced     bool
	middlewares       []Middleware
	staticRoutes      []staticRoute
	healthConfig      *healthConfig
	paths             Paths

	// raw route tables kept until New finishes compiling
	rawRoutes       Routes
	rawModuleRoutes map[string]Routes
}

// staticRoute represents a static file handler mount point.
type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates a front controller with the given options.
// Configuration errors (invalid route patterns, nil hooks, nil factories)
// are fatal and panic: the process must not start half-configured.
func New(opts ...Option) *App {
	a := &App{
		mux:               chi.NewRouter(),
		logger:            logger.NewNope(),
		moduleResolver:    defaultModuleResolver(),
		moduleRoutes:      make(map[string]routeSet),
		controllers:       make(map[string]Factory),
		moduleControllers: make(map[string]map[string]Factory),
		bootstraps:        make(map[string][]Hook),
		httpsControllers:  make(map[string]struct{}),
		rawModuleRoutes:   make(map[string]Routes),
		paths:             NewPaths("."),
	}

	for _, opt := range opts {
		opt(a)
	}

	compiled, err := compileRoutes(a.rawRoutes)
	if err != nil {
		panic(err)
	}
	a.routes = compiled
	for module, routes := range a.rawModuleRoutes {
		compiled, err := compileRoutes(routes)
		if err != nil {
			panic(err)
		}
		a.moduleRoutes[module] = compiled
	}
	a.rawRoutes = nil
	a.rawModuleRoutes = nil

	a.setupMux()
	return a
}

// defaultModuleResolver reads the per-request module header, falling back to
// the module fixed by the environment at startup.
func defaultModuleResolver() ModuleResolver {
	envModule := os.Getenv(ModuleEnvVar)
	return func(r *http.Request) string {
		if m := r.Header.Get(ModuleHeader); m != "" {
			return m
		}
		return envModule
	}
}

// setupMux wires the outer chi router: static mounts and health endpoints
// take precedence, everything else falls through to the dispatcher.
func (a *App) setupMux() {
	for _, sr := range a.staticRoutes {
		a.mux.Mount(sr.pattern, sr.handler)
	}

	if a.healthConfig != nil {
		a.mux.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.mux.Get(a.healthConfig.readinessPath, health.ReadinessHandler(a.healthConfig.checks, health.WithLogger(a.logger)))
	}

	a.mux.Handle("/*", http.HandlerFunc(a.serveDispatch))
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// serveDispatch builds the per-request context and runs the middleware-wrapped
// dispatch pipeline, routing any error through the error path.
func (a *App) serveDispatch(w http.ResponseWriter, r *http.Request) {
	c := newContext(w, r, a.logger, a.renderer, a.moduleResolver(r))

	h := a.dispatch
	mw := slices.Clone(a.middlewares)
	slices.Reverse(mw)
	for _, m := range mw {
		h = m(h)
	}

	if err := h(c); err != nil {
		a.handleError(c, err)
	}
}

// handleError maps a dispatch error to an HTTP response. HTTPError outcomes
// (404, 405, handler-raised statuses) keep their code; anything else is a 500.
// A registered Error controller renders the response; a plain-text fallback
// covers the rest.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		return
	}

	httpErr := AsHTTPError(err)
	if httpErr == nil {
		a.logger.ErrorContext(c.Context(), "dispatch failed",
			slog.String("module", c.Module()),
			slog.String("controller", c.ControllerName()),
			slog.String("path", c.Request().URL.Path),
			slog.Any("error", err),
		)
		httpErr = ErrInternal(http.StatusText(http.StatusInternalServerError), WithError(err))
	}

	c.Set(DispatchErrorKey{}, httpErr)

	if factory := a.errorController(c.Module()); factory != nil {
		if ec, ok := factory().(GetHandler); ok {
			if renderErr := ec.Get(c); renderErr != nil {
				a.logger.ErrorContext(c.Context(), "error controller failed", slog.Any("error", renderErr))
			}
			if c.Written() {
				return
			}
		}
	}

	http.Error(c.Response(), httpErr.Message, httpErr.Code)
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Paths returns the application's conventional folder layout.
func (a *App) Paths() Paths {
	return a.paths
}

// Run starts an HTTP server for the app and blocks until shutdown.
//
// Example:
//
//	app := strut.New(
//	    strut.WithRoutes(routes...),
//	    strut.WithController("Users", func() strut.Controller { return &Users{} }),
//	)
//	err := app.Run(":8080", strut.Logger(slog))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	return runServer(runtimeConfig{
		handler:         a.mux,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}
