// Package health provides liveness and readiness HTTP handlers.
//
// Handlers respond with plain text by default for probe compatibility and
// with JSON when requested via Accept: application/json or ?format=json.
// Readiness checks run in parallel under a shared timeout.
//
// Register endpoints via the framework:
//
//	strut.WithHealthChecks(
//	    strut.WithReadinessCheck("db", db.Healthcheck(pool)),
//	    strut.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
package health
