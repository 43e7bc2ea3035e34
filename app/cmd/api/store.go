package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AntonStoeckl/bookapp-api/app/httpapi"
	"github.com/AntonStoeckl/bookapp-api/app/shared/service"
	"github.com/AntonStoeckl/bookapp-api/app/shared/shell"
	"github.com/AntonStoeckl/bookapp-api/app/shared/shell/config"
	"github.com/AntonStoeckl/bookapp-api/storage/memoryengine"
	"github.com/AntonStoeckl/bookapp-api/storage/postgresengine"
)

const (
	retryOperationPing = "store_ping"
	logMsgSchemaReady  = "database schema ensured"
	logAttrDriver      = "driver"
)

// appStore is the method set the services and the health check need from a storage engine.
type appStore interface {
	service.AuthorStore
	service.BookStore
	httpapi.Pinger
}

func initializeStore(
	ctx context.Context,
	cfg config.Config,
	logger *slog.Logger,
	telemetry *observability,
) (appStore, func(), error) {

	if cfg.Storage.Engine == config.EngineMemory {
		return memoryengine.NewStore(), func() {}, nil
	}

	pgCfg := cfg.Storage.Postgres
	options := []postgresengine.Option{
		postgresengine.WithAuthorsTableName(pgCfg.AuthorsTable),
		postgresengine.WithBooksTableName(pgCfg.BooksTable),
		postgresengine.WithLogger(logger),
	}

	store, closeDB, err := newPostgresStore(ctx, pgCfg, options)
	if err != nil {
		return nil, nil, err
	}

	retryOptions := []shell.RetryOption{shell.WithLogger(logger)}
	if telemetry.metricsCollector != nil {
		retryOptions = append(retryOptions, shell.WithMetrics(telemetry.metricsCollector, retryOperationPing))
	}

	if err := shell.RetryWithExponentialBackoff(ctx, store.Ping, retryOptions...); err != nil {
		closeDB()
		return nil, nil, err
	}

	if pgCfg.EnsureSchema {
		if err := store.EnsureSchema(ctx); err != nil {
			closeDB()
			return nil, nil, err
		}

		logger.Info(logMsgSchemaReady, logAttrDriver, pgCfg.Driver)
	}

	return store, closeDB, nil
}

func newPostgresStore(
	ctx context.Context,
	cfg config.PostgresConfig,
	options []postgresengine.Option,
) (*postgresengine.Store, func(), error) {

	switch cfg.Driver {
	case config.DriverPGXPool:
		pool, err := config.PostgresPGXPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewStoreFromPGXPool(pool, options...)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}

		return store, pool.Close, nil

	case config.DriverSQLDB:
		db, err := config.PostgresSQLDB(cfg)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewStoreFromSQLDB(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	case config.DriverSQLX:
		db, err := config.PostgresSQLX(cfg)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewStoreFromSQLX(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported postgres driver %q", cfg.Driver)
	}
}
