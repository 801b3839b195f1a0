package internal

// HandlerFunc is the signature for dispatch handlers: controller verb methods,
// hooks wrapped for middleware, and the dispatcher itself.
// Returning a non-nil error hands control to the application's error path.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns around the
// dispatch pipeline. Middleware can inspect the request, short-circuit
// processing, or wrap the response.
//
// Example:
//
//	func Auth(next strut.HandlerFunc) strut.HandlerFunc {
//	    return func(c strut.Context) error {
//	        if !isAuthenticated(c) {
//	            return c.Redirect(http.StatusFound, "/login")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// Hook is a bootstrap or predispatch callback. Bootstrap hooks run before
// routing for the resolved module; predispatch hooks run after the route is
// matched but before the controller is invoked. A hook that writes a response
// stops the pipeline; a hook that returns an error aborts the request.
type Hook func(c Context) error
