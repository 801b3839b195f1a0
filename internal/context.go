package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/strutkit/strut/pkg/view"
)

// DispatchErrorKey is the context key under which the application stores the
// *HTTPError being rendered when it invokes the Error controller.
type DispatchErrorKey struct{}

// Context provides request/response access and helper methods for controllers
// and hooks. It also implements context.Context by delegating to the
// underlying request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the underlying http.ResponseWriter.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Params returns the ordered non-empty path segments of the request,
	// after language resolution. The slice is shared; do not mutate it.
	Params() []string

	// Param returns the path segment at index i, or "" if out of range.
	Param(i int) string

	// Module returns the resolved module name, or "" for non-module requests.
	Module() string

	// ControllerName returns the controller name the route matched.
	// Empty until routing has completed.
	ControllerName() string

	// Language returns the resolved request language, or "" when language
	// resolution is not configured.
	Language() string

	// Method returns the lowercased HTTP method.
	Method() string

	// IsSecure reports whether the request arrived over HTTPS, judged from
	// the TLS state, the X-Forwarded-Proto header, or port 443.
	IsSecure() bool

	// Query returns the query parameter value by name.
	Query(name string) string

	// QueryDefault returns the query parameter value or a default.
	QueryDefault(name, defaultValue string) string

	// Form returns the form value by name.
	Form(name string) string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// HTML writes an HTML response with the given status code.
	HTML(code int, html string) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Redirect redirects to the given URL with the given status code.
	Redirect(code int, url string) error

	// Render renders the named view template with the given status code.
	// Returns ErrNoRenderer when no view renderer is configured.
	Render(code int, name string, data any) error

	// Error creates and returns an HTTPError without writing a response.
	// Return it from the handler to trigger the error path.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// DispatchError returns the HTTPError being rendered, if the Error
	// controller is handling a failed dispatch. Nil otherwise.
	DispatchError() *HTTPError

	// Written returns true if a response has already been written.
	Written() bool

	// Logger returns the request logger.
	Logger() *slog.Logger

	// LogDebug logs a debug message with optional attributes.
	LogDebug(msg string, attrs ...any)

	// LogInfo logs an info message with optional attributes.
	LogInfo(msg string, attrs ...any)

	// LogWarn logs a warning message with optional attributes.
	LogWarn(msg string, attrs ...any)

	// LogError logs an error message with optional attributes.
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key any, value any)

	// Get retrieves a value from the request context.
	// Returns nil if the key is not found.
	Get(key any) any
}

// requestContext is the framework's Context implementation.
// One instance is created per request and discarded after dispatch.
type requestContext struct {
	w          *ResponseWriter
	r          *http.Request
	logger     *slog.Logger
	renderer   *view.Renderer
	params     []string
	module     string
	controller string
	language   string
	method     string
	secure     bool
}

func newContext(w http.ResponseWriter, r *http.Request, logger *slog.Logger, renderer *view.Renderer, module string) *requestContext {
	return &requestContext{
		w:        NewResponseWriter(w),
		r:        r,
		logger:   logger,
		renderer: renderer,
		module:   module,
		method:   strings.ToLower(r.Method),
		secure:   isSecureRequest(r),
	}
}

// isSecureRequest derives the HTTPS flag from transport signals: a live TLS
// connection, a forwarded-proto header set by a terminating proxy, or the
// standard HTTPS port.
func isSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); strings.EqualFold(proto, "https") {
		return true
	}
	if _, port, err := net.SplitHostPort(r.Host); err == nil && port == "443" {
		return true
	}
	return false
}

// context.Context implementation delegates to the request context.

func (c *requestContext) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.r.Context().Done() }
func (c *requestContext) Err() error                  { return c.r.Context().Err() }
func (c *requestContext) Value(key any) any           { return c.r.Context().Value(key) }

func (c *requestContext) Request() *http.Request        { return c.r }
func (c *requestContext) Response() http.ResponseWriter { return c.w }
func (c *requestContext) Context() context.Context      { return c.r.Context() }

func (c *requestContext) Params() []string { return c.params }

func (c *requestContext) Param(i int) string {
	if i < 0 || i >= len(c.params) {
		return ""
	}
	return c.params[i]
}

func (c *requestContext) Module() string         { return c.module }
func (c *requestContext) ControllerName() string { return c.controller }
func (c *requestContext) Language() string       { return c.language }
func (c *requestContext) Method() string         { return c.method }
func (c *requestContext) IsSecure() bool         { return c.secure }

func (c *requestContext) Query(name string) string {
	return c.r.URL.Query().Get(name)
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return defaultValue
}

func (c *requestContext) Form(name string) string {
	return c.r.PostFormValue(name)
}

func (c *requestContext) Header(name string) string {
	return c.r.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.w.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.w.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.w.WriteHeader(code)
	return json.NewEncoder(c.w).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.w.WriteHeader(code)
	_, err := c.w.Write([]byte(s))
	return err
}

func (c *requestContext) HTML(code int, html string) error {
	c.w.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.w.WriteHeader(code)
	_, err := c.w.Write([]byte(html))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.w.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.w, c.r, url, code)
	return nil
}

func (c *requestContext) Render(code int, name string, data any) error {
	if c.renderer == nil {
		return ErrNoRenderer
	}

	// Render into a buffer first so a template error never leaves a
	// half-written response behind.
	var buf bytes.Buffer
	if err := c.renderer.Render(c.r.Context(), &buf, name, data); err != nil {
		return err
	}

	c.w.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.w.WriteHeader(code)
	_, err := c.w.Write(buf.Bytes())
	return err
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) DispatchError() *HTTPError {
	if v, ok := c.Get(DispatchErrorKey{}).(*HTTPError); ok {
		return v
	}
	return nil
}

func (c *requestContext) Written() bool {
	return c.w.Written()
}

func (c *requestContext) Logger() *slog.Logger { return c.logger }

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.r.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.r.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.r.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.r.Context(), msg, attrs...)
}

func (c *requestContext) Set(key any, value any) {
	c.r = c.r.WithContext(context.WithValue(c.r.Context(), key, value))
}

func (c *requestContext) Get(key any) any {
	return c.r.Context().Value(key)
}

// setters used by the dispatcher as resolution progresses

func (c *requestContext) setParams(params []string) { c.params = params }
func (c *requestContext) setLanguage(lang string)   { c.language = lang }
func (c *requestContext) setController(name string) { c.controller = name }
