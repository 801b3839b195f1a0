// Package middlewares provides dispatch middleware for strut applications.
//
// Middlewares wrap the dispatcher and run for every request that reaches it,
// before hooks and controllers.
//
// # Request ID
//
// RequestID assigns a unique ID to each request for tracing. It checks
// incoming headers for existing IDs or generates new ones.
//
//	app := strut.New(
//	    strut.WithMiddleware(
//	        middlewares.RequestID(),
//	    ),
//	)
//
// Use RequestIDExtractor() with WithLogger for automatic request_id in logs:
//
//	app := strut.New(
//	    strut.WithLogger("web", middlewares.RequestIDExtractor()),
//	    strut.WithMiddleware(
//	        middlewares.RequestID(),
//	    ),
//	)
//
// # Recover
//
// Recover catches panics from hooks and controllers and converts them to
// typed errors, so a panicking controller produces an error page instead of
// tearing down the connection.
//
// # Timeout
//
// Timeout enforces a per-request deadline and returns a typed TimeoutError.
// The handler goroutine continues after timeout; use context.Done() for
// early termination.
//
// # Logging
//
// Logging writes one structured line per request with method, path, module,
// controller, and duration.
//
// # Recommended Order
//
//	strut.WithMiddleware(
//	    middlewares.RequestID(), // first: assign ID for all subsequent logging
//	    middlewares.Logging(),
//	    middlewares.Recover(),   // catch panics from timeout and handlers
//	    middlewares.Timeout(5*time.Second),
//	)
package middlewares
