package internal

import (
	"errors"
	"net/http"
)

// Configuration and dispatch errors. All of them are terminal for the request
// that triggered them and map to a 500 response unless stated otherwise.
var (
	// ErrNoModuleRoutes is returned when a request resolves to a module that
	// has no route table registered. This is a configuration error, distinct
	// from a route lookup miss (which yields 404).
	ErrNoModuleRoutes = errors.New("strut: no route table registered for module")

	// ErrControllerNotRegistered is returned when a matched route names a
	// controller that is absent from the registry.
	ErrControllerNotRegistered = errors.New("strut: controller not registered")

	// ErrNilHook is returned when a nil bootstrap or predispatch hook is
	// registered.
	ErrNilHook = errors.New("strut: nil hook registered")

	// ErrNilControllerFactory is returned when a controller is registered
	// with a nil factory.
	ErrNilControllerFactory = errors.New("strut: nil controller factory")

	// ErrNoRenderer is returned by Context.Render when no view renderer is
	// configured on the application.
	ErrNoRenderer = errors.New("strut: no view renderer configured")
)

// HTTPError represents an HTTP error outcome of a dispatch.
// It implements the error interface and carries the data an Error controller
// needs to render a diagnostic response.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to clients).
	Err error

	// Message is the user-facing error message.
	Message string

	// Code is the HTTP status code (e.g., 404, 500).
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// WithError attaches an underlying error for logging and unwrapping.
func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{
		Code:    code,
		Message: message,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Convenience constructors for the dispatch outcomes the framework produces.

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrMethodNotAllowed(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusMethodNotAllowed, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// IsHTTPError reports whether err is or wraps an *HTTPError.
func IsHTTPError(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr)
}

// AsHTTPError extracts the HTTPError from an error chain.
// Returns nil if the error does not carry one.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}
