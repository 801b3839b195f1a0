// Package logger provides structured logging for strut applications on top
// of log/slog.
//
// It adds three capabilities the framework relies on: per-call context
// attribute extraction (request IDs and similar request-scoped values),
// optional Sentry error reporting with graceful fallback when unconfigured,
// and an optional Postgres persistence handler for logs that must outlive
// the process.
//
// Create a logger with extractors:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "request processed", slog.Int("status", 200))
//
// With Sentry:
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//	    DSN: os.Getenv("SENTRY_DSN"),
//	})
//
// With Postgres persistence:
//
//	log := logger.NewWithStore(pool)
package logger
