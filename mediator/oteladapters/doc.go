// Package oteladapters provides OpenTelemetry implementations of the mediator observability interfaces.
//
// The Dispatcher only depends on the small interfaces declared in package mediator.
// These adapters plug an OpenTelemetry MeterProvider, TracerProvider, and LoggerProvider into them:
//
//	dispatcher, err := mediator.NewDispatcher(
//		registry,
//		mediator.WithMetrics(oteladapters.NewMetricsCollector(otel.Meter("bookapp"))),
//		mediator.WithTracing(oteladapters.NewTracingCollector(otel.Tracer("bookapp"))),
//		mediator.WithContextualLogger(oteladapters.NewSlogBridgeLogger("bookapp")),
//	)
package oteladapters
