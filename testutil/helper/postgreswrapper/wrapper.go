// Package postgreswrapper creates PostgreSQL-backed stores for tests, using the database adapter
// selected by the ADAPTER_TYPE environment variable (pgxpool, sqldb, sqlx; pgxpool when unset).
//
// Tests using it are skipped unless BOOKAPP_TEST_POSTGRES_DSN points to a reachable database.
package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookapp-api/app/shared/shell/config"
	"github.com/AntonStoeckl/bookapp-api/storage/postgresengine"
)

// DSNEnvVar names the environment variable holding the test database DSN.
const DSNEnvVar = "BOOKAPP_TEST_POSTGRES_DSN"

// Adapter type constants
const (
	typePGXPool = "pgxpool"
	typeSQLDB   = "sqldb"
	typeSQLX    = "sqlx"
)

// Wrapper interface to abstract over different adapter types.
type Wrapper interface {
	GetStore() *postgresengine.Store
	Exec(ctx context.Context, query string) error
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing.
type PGXPoolWrapper struct {
	pool  *pgxpool.Pool
	store *postgresengine.Store
}

func (w *PGXPoolWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *PGXPoolWrapper) Exec(ctx context.Context, query string) error {
	_, err := w.pool.Exec(ctx, query)
	return err
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

// SQLDBWrapper wraps sql.DB-based testing.
type SQLDBWrapper struct {
	db    *sql.DB
	store *postgresengine.Store
}

func (w *SQLDBWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *SQLDBWrapper) Exec(ctx context.Context, query string) error {
	_, err := w.db.ExecContext(ctx, query)
	return err
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// SQLXWrapper wraps sqlx.DB-based testing.
type SQLXWrapper struct {
	db    *sqlx.DB
	store *postgresengine.Store
}

func (w *SQLXWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *SQLXWrapper) Exec(ctx context.Context, query string) error {
	_, err := w.db.ExecContext(ctx, query)
	return err
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// TestConfig returns the PostgreSQL settings for tests, or skips the test when no DSN is configured.
func TestConfig(t testing.TB) config.PostgresConfig {
	t.Helper()

	dsn := os.Getenv(DSNEnvVar)
	if dsn == "" {
		t.Skipf("%s is not set, skipping PostgreSQL test", DSNEnvVar)
	}

	cfg := config.Default().Storage.Postgres
	cfg.DSN = dsn
	cfg.MaxConns = 10
	cfg.MinConns = 0

	return cfg
}

// CreateWrapperWithTestConfig creates the wrapper selected by ADAPTER_TYPE, ensures the schema,
// and registers Close and CleanUp with t.Cleanup.
func CreateWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) Wrapper {
	t.Helper()

	cfg := TestConfig(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var wrapper Wrapper
	adapterTypeFromEnv := strings.ToLower(os.Getenv("ADAPTER_TYPE"))

	switch adapterTypeFromEnv {
	case typePGXPool, "":
		pool, err := config.PostgresPGXPool(ctx, cfg)
		require.NoError(t, err, "error connecting to DB pool in test setup")
		store, err := postgresengine.NewStoreFromPGXPool(pool, options...)
		require.NoError(t, err, "error creating store in test setup")
		wrapper = &PGXPoolWrapper{pool: pool, store: store}

	case typeSQLDB:
		db, err := config.PostgresSQLDB(cfg)
		require.NoError(t, err, "error opening DB in test setup")
		store, err := postgresengine.NewStoreFromSQLDB(db, options...)
		require.NoError(t, err, "error creating store in test setup")
		wrapper = &SQLDBWrapper{db: db, store: store}

	case typeSQLX:
		db, err := config.PostgresSQLX(cfg)
		require.NoError(t, err, "error opening DB in test setup")
		store, err := postgresengine.NewStoreFromSQLX(db, options...)
		require.NoError(t, err, "error creating store in test setup")
		wrapper = &SQLXWrapper{db: db, store: store}

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", adapterTypeFromEnv))
	}

	t.Cleanup(wrapper.Close)

	// CleanUp always truncates the default tables, so they must exist even when options rename the tables.
	require.NoError(t, ensureDefaultSchema(ctx, wrapper), "error ensuring default schema in test setup")
	require.NoError(t, wrapper.GetStore().EnsureSchema(ctx), "error ensuring schema in test setup")
	CleanUp(t, wrapper)

	return wrapper
}

// CleanUp removes all rows from the default books and authors tables.
func CleanUp(t testing.TB, wrapper Wrapper) {
	t.Helper()

	err := wrapper.Exec(context.Background(), "TRUNCATE TABLE books, authors RESTART IDENTITY")
	require.NoError(t, err, "error cleaning up the tables")
}

func ensureDefaultSchema(ctx context.Context, wrapper Wrapper) error {
	var store *postgresengine.Store
	var err error

	switch w := wrapper.(type) {
	case *PGXPoolWrapper:
		store, err = postgresengine.NewStoreFromPGXPool(w.pool)
	case *SQLDBWrapper:
		store, err = postgresengine.NewStoreFromSQLDB(w.db)
	case *SQLXWrapper:
		store, err = postgresengine.NewStoreFromSQLX(w.db)
	default:
		panic(fmt.Sprintf("unsupported wrapper type: %T", w))
	}

	if err != nil {
		return err
	}

	return store.EnsureSchema(ctx)
}
