// Package storage defines the records and errors shared by all storage engines.
//
// Engines live in subpackages:
//   - postgresengine: PostgreSQL via pgx.Pool, sql.DB, or sqlx.DB
//   - memoryengine: in-process maps, for tests and local runs
//
// Both engines return the sentinel errors declared here, so callers can classify
// failures with errors.Is regardless of the engine in use.
package storage
