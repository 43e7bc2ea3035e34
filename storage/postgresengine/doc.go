// Package postgresengine provides a PostgreSQL implementation of the author and book store.
//
// The store can be created from a pgx.Pool, a sql.DB (lib/pq driver), or a sqlx.DB:
//
//	store, err := postgresengine.NewStoreFromPGXPool(pool, postgresengine.WithLogger(logger))
//	if err != nil { ... }
//	if err := store.EnsureSchema(ctx); err != nil { ... }
//
// All statements are built with goqu in the postgres dialect. Each mutation is a single
// statement, so it is atomic on its own. Concurrent Update and Delete of the same record
// resolve as last writer wins, the losing statement affects zero rows and reports storage.ErrNotFound.
//
// Referential integrity is enforced by the database: books.author_id references authors.id
// with ON DELETE RESTRICT. Foreign key violations (SQLSTATE 23503) are classified into
// storage.ErrAuthorNotFound or storage.ErrAuthorReferenced, depending on the statement.
package postgresengine
