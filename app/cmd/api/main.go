// Command api serves the book catalog HTTP API.
//
// Usage:
//
//	api -config config.yaml
//
// Every setting can be overridden with BOOKAPP_* environment variables, see package config.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/AntonStoeckl/bookapp-api/app/features"
	"github.com/AntonStoeckl/bookapp-api/app/httpapi"
	"github.com/AntonStoeckl/bookapp-api/app/shared/service"
	"github.com/AntonStoeckl/bookapp-api/app/shared/shell"
	"github.com/AntonStoeckl/bookapp-api/app/shared/shell/config"
	"github.com/AntonStoeckl/bookapp-api/mediator"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

const (
	logMsgStarting         = "starting bookapp api"
	logMsgHandlersReady    = "handlers registered"
	logMsgListening        = "http server listening"
	logMsgShuttingDown     = "shutting down http server"
	logMsgStopped          = "bookapp api stopped"
	logAttrVersion         = "version"
	logAttrEngine          = "engine"
	logAttrAddr            = "addr"
	logAttrMessageTypes    = "message_types"
	logAttrObservabilityOn = "observability_enabled"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("bookapp api failed: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", envOrDefault("BOOKAPP_CONFIG", "config.yaml"), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := shell.NewLogger(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info(logMsgStarting,
		logAttrVersion, version,
		logAttrEngine, cfg.Storage.Engine,
		logAttrObservabilityOn, cfg.Observability.Enabled)

	telemetry, err := initializeObservability(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer telemetry.shutdown(logger, cfg.HTTP.ShutdownTimeout)

	store, closeStore, err := initializeStore(ctx, cfg, logger, telemetry)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer closeStore()

	dispatcher, err := initializeDispatcher(store, logger, telemetry)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      httpapi.NewRouter(dispatcher, store, logger),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return serve(ctx, server, logger, cfg.HTTP)
}

func initializeDispatcher(store appStore, logger *slog.Logger, telemetry *observability) (*mediator.Dispatcher, error) {
	registry, err := features.NewRegistry(service.NewAuthorService(store), service.NewBookService(store))
	if err != nil {
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}

	logger.Info(logMsgHandlersReady, logAttrMessageTypes, registry.MessageTypes())

	options := []mediator.Option{
		mediator.WithLogger(logger),
		mediator.WithContextualLogger(telemetry.contextualLogger),
	}

	if telemetry.metricsCollector != nil {
		options = append(options, mediator.WithMetrics(telemetry.metricsCollector))
	}

	if telemetry.tracingCollector != nil {
		options = append(options, mediator.WithTracing(telemetry.tracingCollector))
	}

	return mediator.NewDispatcher(registry, options...)
}

func serve(ctx context.Context, server *http.Server, logger *slog.Logger, cfg config.HTTPConfig) error {
	serverErr := make(chan error, 1)

	go func() {
		logger.Info(logMsgListening, logAttrAddr, server.Addr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("http server failed: %w", err)

	case <-ctx.Done():
		logger.Info(logMsgShuttingDown)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info(logMsgStopped)

	return nil
}

func envOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}
