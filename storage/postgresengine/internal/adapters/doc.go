// Package adapters provides database adapter implementations for the PostgreSQL store.
//
// It supports pgx.Pool, sql.DB, and sqlx.DB behind the common DBAdapter interface,
// so the store can run on any of these connection types.
package adapters
