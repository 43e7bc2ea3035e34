// Package config loads the service configuration and builds the infrastructure it describes.
//
// Load applies, in order: built-in defaults, an optional YAML file, BOOKAPP_* environment
// overrides, and finally Validate. The package also contains factory functions for PostgreSQL
// connections using the supported drivers (pgx.Pool, sql.DB, sqlx.DB) and the OpenTelemetry
// provider setup for traces, metrics, and logs.
//
// This package is part of the shell (infrastructure) layer.
package config
