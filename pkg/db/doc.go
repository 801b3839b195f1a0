// Package db wraps pgx connection management for strut applications: pool
// setup with startup retries, goose migrations, a transaction helper, and
// readiness/shutdown glue for the framework's options.
//
// The package does not abstract the driver; code that needs the database
// works with *pgxpool.Pool directly.
package db
