package main

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/bookapp-api/app/shared/shell/config"
	"github.com/AntonStoeckl/bookapp-api/mediator"
	"github.com/AntonStoeckl/bookapp-api/mediator/oteladapters"
)

const logMsgTelemetryShutdownFailed = "failed to shut down telemetry providers"

// observability bundles the collectors handed to the dispatcher and the startup retry.
// The metrics and tracing collectors stay nil when observability is disabled.
type observability struct {
	providers        *config.ObservabilityProviders
	contextualLogger mediator.ContextualLogger
	metricsCollector mediator.MetricsCollector
	tracingCollector mediator.TracingCollector
}

func initializeObservability(ctx context.Context, cfg config.Config, logger *slog.Logger) (*observability, error) {
	if !cfg.Observability.Enabled {
		return &observability{
			contextualLogger: oteladapters.NewSlogBridgeLoggerWithHandler(logger.Handler()),
		}, nil
	}

	providers, err := config.NewObservabilityProviders(ctx, cfg.Observability, version)
	if err != nil {
		return nil, err
	}

	name := cfg.Observability.ServiceName

	return &observability{
		providers:        providers,
		contextualLogger: oteladapters.NewSlogBridgeLogger(name),
		metricsCollector: oteladapters.NewMetricsCollector(otel.Meter(name)),
		tracingCollector: oteladapters.NewTracingCollector(otel.Tracer(name)),
	}, nil
}

func (o *observability) shutdown(logger *slog.Logger, timeout time.Duration) {
	if o.providers == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := o.providers.Shutdown(ctx); err != nil {
		logger.Error(logMsgTelemetryShutdownFailed, "error", err.Error())
	}
}
