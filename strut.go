package strut

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/strutkit/strut/internal"
	"github.com/strutkit/strut/pkg/health"
	"github.com/strutkit/strut/pkg/l10n"
	"github.com/strutkit/strut/pkg/logger"
	"github.com/strutkit/strut/pkg/view"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle.
	// It routes requests to controllers and manages graceful shutdown.
	App = internal.App

	// Context provides request/response access and helper methods
	// for controllers and hooks.
	Context = internal.Context

	// Controller is the marker interface all controllers implement.
	// Embed Base and add verb methods (Get, Post, ...) for the
	// HTTP methods the controller serves.
	Controller = internal.Controller

	// Base is embedded in controllers to satisfy the Controller interface.
	Base = internal.Base

	// Factory constructs a fresh controller instance per request.
	Factory = internal.Factory

	// GetHandler is implemented by controllers that serve GET requests.
	GetHandler = internal.GetHandler

	// PostHandler is implemented by controllers that serve POST requests.
	PostHandler = internal.PostHandler

	// PutHandler is implemented by controllers that serve PUT requests.
	PutHandler = internal.PutHandler

	// PatchHandler is implemented by controllers that serve PATCH requests.
	PatchHandler = internal.PatchHandler

	// DeleteHandler is implemented by controllers that serve DELETE requests.
	DeleteHandler = internal.DeleteHandler

	// HeadHandler is implemented by controllers that serve HEAD requests.
	HeadHandler = internal.HeadHandler

	// OptionsHandler is implemented by controllers that serve OPTIONS requests.
	OptionsHandler = internal.OptionsHandler

	// Route maps a path pattern to a controller name.
	// Patterns are slash-separated regular expressions, one per segment.
	Route = internal.Route

	// Routes is an ordered route table. Earlier routes win.
	Routes = internal.Routes

	// HandlerFunc is the signature for dispatched request handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// Hook runs during bootstrap or predispatch.
	Hook = internal.Hook

	// ModuleResolver determines the module name for a request.
	ModuleResolver = internal.ModuleResolver

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HTTPError carries an HTTP status code alongside an error.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// ResponseWriter wraps http.ResponseWriter with write tracking.
	ResponseWriter = internal.ResponseWriter

	// Paths describes the conventional project folder layout.
	Paths = internal.Paths

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor
)

// ErrorControllerName is the controller name resolved when dispatch fails.
const ErrorControllerName = internal.ErrorControllerName

// Module resolution defaults.
const (
	// ModuleHeader is the request header consulted for the module name.
	ModuleHeader = internal.ModuleHeader

	// ModuleEnvVar is the environment variable consulted at startup for a
	// process-wide module name.
	ModuleEnvVar = internal.ModuleEnvVar
)

// Sentinel errors surfaced through the error path.
var (
	ErrNoModuleRoutes          = internal.ErrNoModuleRoutes
	ErrControllerNotRegistered = internal.ErrControllerNotRegistered
	ErrNoRenderer              = internal.ErrNoRenderer
)

// Constructors

// New creates a new application with the given options.
// Route tables are compiled and validated here; invalid configuration
// (malformed route patterns, nil hooks or factories) panics.
//
// Example:
//
//	app := strut.New(
//	    strut.WithRoutes(
//	        strut.Route{Pattern: "", Controller: "Index"}, // root path
//	        strut.Route{Pattern: `users/\d+`, Controller: "User"},
//	    ),
//	    strut.WithController("Index", func() strut.Controller { return &IndexController{} }),
//	    strut.WithController("User", func() strut.Controller { return &UserController{} }),
//	)
//
//	err := app.Run(":8080")
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// App options

// WithRoutes sets the global route table.
// Routes are matched in order; the first match wins.
func WithRoutes(routes ...Route) Option {
	return internal.WithRoutes(routes...)
}

// WithModuleRoutes sets the route table for a module.
// A request resolved to a module without a route table is a server error.
func WithModuleRoutes(module string, routes ...Route) Option {
	return internal.WithModuleRoutes(module, routes...)
}

// WithController registers a controller factory in the global registry.
func WithController(name string, factory Factory) Option {
	return internal.WithController(name, factory)
}

// WithModuleController registers a controller factory in a module's registry.
// Module registries are isolated: a module request never falls through to a
// global controller, except for the Error controller.
func WithModuleController(module, name string, factory Factory) Option {
	return internal.WithModuleController(module, name, factory)
}

// WithBootstrap registers hooks that run before routing for requests
// resolved to the given module. Use an empty module name for hooks that
// run on every request.
func WithBootstrap(module string, hooks ...Hook) Option {
	return internal.WithBootstrap(module, hooks...)
}

// WithPredispatch registers hooks that run after routing but before the
// controller is invoked. A hook that writes a response short-circuits
// dispatch.
func WithPredispatch(hooks ...Hook) Option {
	return internal.WithPredispatch(hooks...)
}

// WithHTTPSEnforced redirects every insecure request to HTTPS.
func WithHTTPSEnforced() Option {
	return internal.WithHTTPSEnforced()
}

// WithHTTPSControllers names controllers that require HTTPS. Insecure
// requests to them redirect to HTTPS; secure requests to controllers not
// in the set redirect back to HTTP.
func WithHTTPSControllers(names ...string) Option {
	return internal.WithHTTPSControllers(names...)
}

// WithLocales enables language resolution from the first path segment.
//
// Example:
//
//	locales, err := l10n.New("en", "en", "es", "de")
//	strut.New(strut.WithLocales(locales))
func WithLocales(locales *l10n.Locales) Option {
	return internal.WithLocales(locales)
}

// WithViews sets the view renderer used by c.Render.
//
// Example:
//
//	renderer, err := view.NewDir("application/view")
//	strut.New(strut.WithViews(renderer))
func WithViews(renderer *view.Renderer) Option {
	return internal.WithViews(renderer)
}

// WithRoot sets the project root for the conventional folder layout
// reported by app.Paths().
func WithRoot(root string) Option {
	return internal.WithRoot(root)
}

// WithModuleResolver replaces the default module resolution, which reads
// the X-Strut-Module header and falls back to the STRUT_MODULE environment
// variable captured at startup.
func WithModuleResolver(resolver ModuleResolver) Option {
	return internal.WithModuleResolver(resolver)
}

// WithMiddleware adds dispatch middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Static routes take precedence over dispatch. Directory listings are
// disabled.
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
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithLogger creates a logger with a component name and optional extractors.
// The component name is added to every log entry for easy filtering.
// Extractors pull values from context (e.g., request_id).
//
// Example:
//
//	strut.New(
//	    strut.WithLogger("web", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
// Use this when you need complete control over logging configuration.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live): Always returns OK if process is running.
// Readiness (/health/ready): Runs all configured checks.
//
// Example:
//
//	strut.WithHealthChecks(
//	    strut.WithReadinessCheck("db", db.Healthcheck(pool)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// Health check options

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during readiness probe.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the runtime logger used for lifecycle messages.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
// This applies to both the HTTP server and shutdown hooks.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function to run during server startup.
// Hooks are called in the order they were registered, after the port is
// bound but before serving requests. If any hook fails, the server stops
// and returns the error.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function to run during shutdown.
// Hooks are called in the order they were registered.
// Each hook receives a context with the shutdown timeout.
//
// Example:
//
//	app.Run(":8080", strut.ShutdownHook(db.Shutdown(pool)))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets a custom base context for signal handling.
// Useful for testing or when integrating with existing context hierarchies.
// Defaults to context.Background() if not set.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// HTTP errors

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// WithError attaches an underlying error to an HTTPError.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// ErrBadRequest creates a 400 error.
func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

// ErrNotFound creates a 404 error.
func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

// ErrMethodNotAllowed creates a 405 error.
func ErrMethodNotAllowed(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrMethodNotAllowed(message, opts...)
}

// ErrInternal creates a 500 error.
func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// IsHTTPError reports whether the error is (or wraps) an HTTPError.
func IsHTTPError(err error) bool {
	return internal.IsHTTPError(err)
}

// AsHTTPError extracts the HTTPError from an error chain, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// Context helpers

// ContextValue retrieves a typed value from the context.
// Returns the zero value of T if the key is not found or type assertion fails.
//
// Example:
//
//	type tenantKey struct{}
//
//	tenant := strut.ContextValue[string](c, tenantKey{})
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}
