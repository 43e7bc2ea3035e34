package mediator

import (
	"context"
	"time"
)

const (
	// DispatchDurationMetric tracks dispatch duration (OpenTelemetry-compatible).
	DispatchDurationMetric = "mediator_dispatch_duration_seconds"

	// DispatchCallsMetric tracks total dispatch calls.
	DispatchCallsMetric = "mediator_dispatch_calls_total"

	// StatusSuccess indicates the handler returned a successful Result.
	StatusSuccess = "success"

	// StatusFailed indicates a business failure, either Fail(reason) or a *DomainError.
	StatusFailed = "failed"

	// StatusError indicates an unclassified error propagated to the caller.
	StatusError = "error"

	// StatusNoHandler indicates that no handler was registered for the message type.
	StatusNoHandler = "no_handler"

	// SpanNameDispatch is the tracing span name for dispatching.
	SpanNameDispatch = "mediator.dispatch"

	// LogMsgDispatchStarted is logged when dispatching begins.
	LogMsgDispatchStarted = "dispatch started"

	// LogMsgDispatchCompleted is logged when the handler returned a successful Result.
	LogMsgDispatchCompleted = "dispatch completed"

	// LogMsgDispatchFailed is logged when the handler reported a business failure.
	LogMsgDispatchFailed = "dispatch failed"

	// LogMsgDispatchError is logged when an error is propagated to the caller.
	LogMsgDispatchError = "dispatch error"

	// LogAttrMessageType identifies the message type in logs, metrics and spans.
	LogAttrMessageType = "message_type"

	// LogAttrMessageKind identifies the message kind in logs, metrics and spans.
	LogAttrMessageKind = "message_kind"

	// LogAttrStatus indicates the dispatch status.
	LogAttrStatus = "status"

	// LogAttrDurationMS indicates the dispatch duration in milliseconds.
	LogAttrDurationMS = "duration_ms"

	// LogAttrReason contains the failure reason of a Fail result.
	LogAttrReason = "reason"

	// LogAttrError contains error details.
	LogAttrError = "error"
)

// Logger interface for basic logging. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger interface for context-aware logging with automatic trace correlation.
// *slog.Logger satisfies it as well, the oteladapters package offers an OpenTelemetry bridge.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// MetricsCollector interface for collecting dispatch metrics.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// ContextualMetricsCollector extends MetricsCollector with context-aware methods for trace correlation.
// The Dispatcher uses the context-aware methods when available.
type ContextualMetricsCollector interface {
	MetricsCollector
	RecordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string)
	IncrementCounterContext(ctx context.Context, metric string, labels map[string]string)
	RecordValueContext(ctx context.Context, metric string, value float64, labels map[string]string)
}

// SpanContext represents an active tracing span.
type SpanContext interface {
	SetStatus(status string)
	AddAttribute(key, value string)
}

// TracingCollector interface for distributed tracing of dispatches.
type TracingCollector interface {
	StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext)
	FinishSpan(spanCtx SpanContext, status string, attrs map[string]string)
}

// buildDispatchLabels creates the standard metric labels for a dispatch.
func buildDispatchLabels(msg Message, status string) map[string]string {
	return map[string]string{
		LogAttrMessageType: msg.MessageType(),
		LogAttrMessageKind: string(msg.MessageKind()),
		LogAttrStatus:      status,
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with precision.
func toMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
