package mediator

import (
	"context"
	"errors"
	"time"
)

// Dispatcher routes each Message to the handler bound in its Registry.
// It holds no mutable state and is safe for concurrent use.
type Dispatcher struct {
	registry         *Registry
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
}

// Option defines a functional option for configuring a Dispatcher.
type Option func(*Dispatcher) error

// WithLogger sets the basic logger for the Dispatcher.
func WithLogger(logger Logger) Option {
	return func(d *Dispatcher) error {
		d.logger = logger
		return nil
	}
}

// WithContextualLogger sets the context-aware logger for the Dispatcher.
// It is used instead of the basic logger when both are set.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(d *Dispatcher) error {
		d.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Dispatcher.
func WithMetrics(collector MetricsCollector) Option {
	return func(d *Dispatcher) error {
		d.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Dispatcher.
func WithTracing(collector TracingCollector) Option {
	return func(d *Dispatcher) error {
		d.tracingCollector = collector
		return nil
	}
}

// NewDispatcher creates a Dispatcher over an already built Registry.
func NewDispatcher(registry *Registry, options ...Option) (*Dispatcher, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}

	d := &Dispatcher{registry: registry}

	for _, option := range options {
		if err := option(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Dispatch resolves the handler for msg and invokes it exactly once.
//
//   - No handler registered: returns a *NoHandlerRegisteredError (configuration defect).
//   - Handler returned a *DomainError: returns Fail(reason) and a nil error.
//   - Handler returned any other error: returns that error unchanged.
//   - Otherwise: returns the handler's Result.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) (Result, error) {
	if msg == nil {
		return Result{}, ErrNilMessage
	}

	start := time.Now()
	ctx, span := d.startSpan(ctx, msg)
	d.logDebug(ctx, LogMsgDispatchStarted, LogAttrMessageType, msg.MessageType(), LogAttrMessageKind, string(msg.MessageKind()))

	handler, err := d.registry.Resolve(msg.MessageType())
	if err != nil {
		d.recordError(ctx, msg, StatusNoHandler, err, time.Since(start), span)
		return Result{}, err
	}

	result, err := handler(ctx, msg)
	if err != nil {
		var domainErr *DomainError
		if errors.As(err, &domainErr) {
			failed := Fail(domainErr.Reason)
			d.recordFailure(ctx, msg, failed, time.Since(start), span)

			return failed, nil
		}

		d.recordError(ctx, msg, StatusError, err, time.Since(start), span)

		return Result{}, err
	}

	if !result.IsSuccess() {
		d.recordFailure(ctx, msg, result, time.Since(start), span)
		return result, nil
	}

	d.recordSuccess(ctx, msg, time.Since(start), span)

	return result, nil
}

/*** Observability helper methods ***/

func (d *Dispatcher) startSpan(ctx context.Context, msg Message) (context.Context, SpanContext) {
	if d.tracingCollector == nil {
		return ctx, nil
	}

	return d.tracingCollector.StartSpan(ctx, SpanNameDispatch, map[string]string{
		LogAttrMessageType: msg.MessageType(),
		LogAttrMessageKind: string(msg.MessageKind()),
	})
}

func (d *Dispatcher) finishSpan(span SpanContext, status string, attrs map[string]string) {
	if d.tracingCollector == nil || span == nil {
		return
	}

	d.tracingCollector.FinishSpan(span, status, attrs)
}

func (d *Dispatcher) recordSuccess(ctx context.Context, msg Message, duration time.Duration, span SpanContext) {
	d.recordMetrics(ctx, msg, StatusSuccess, duration)
	d.finishSpan(span, StatusSuccess, nil)
	d.logInfo(ctx, LogMsgDispatchCompleted,
		LogAttrMessageType, msg.MessageType(),
		LogAttrStatus, StatusSuccess,
		LogAttrDurationMS, toMilliseconds(duration))
}

func (d *Dispatcher) recordFailure(ctx context.Context, msg Message, result Result, duration time.Duration, span SpanContext) {
	d.recordMetrics(ctx, msg, StatusFailed, duration)
	d.finishSpan(span, StatusFailed, map[string]string{LogAttrReason: result.Reason()})
	d.logInfo(ctx, LogMsgDispatchFailed,
		LogAttrMessageType, msg.MessageType(),
		LogAttrStatus, StatusFailed,
		LogAttrReason, result.Reason(),
		LogAttrDurationMS, toMilliseconds(duration))
}

func (d *Dispatcher) recordError(ctx context.Context, msg Message, status string, err error, duration time.Duration, span SpanContext) {
	d.recordMetrics(ctx, msg, status, duration)
	d.finishSpan(span, StatusError, map[string]string{LogAttrError: err.Error()})
	d.logError(ctx, LogMsgDispatchError,
		LogAttrMessageType, msg.MessageType(),
		LogAttrStatus, status,
		LogAttrError, err.Error(),
		LogAttrDurationMS, toMilliseconds(duration))
}

func (d *Dispatcher) recordMetrics(ctx context.Context, msg Message, status string, duration time.Duration) {
	if d.metricsCollector == nil {
		return
	}

	labels := buildDispatchLabels(msg, status)

	if contextualCollector, ok := d.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, DispatchDurationMetric, duration, labels)
		contextualCollector.IncrementCounterContext(ctx, DispatchCallsMetric, labels)

		return
	}

	d.metricsCollector.RecordDuration(DispatchDurationMetric, duration, labels)
	d.metricsCollector.IncrementCounter(DispatchCallsMetric, labels)
}

func (d *Dispatcher) logDebug(ctx context.Context, msg string, args ...any) {
	if d.contextualLogger != nil {
		d.contextualLogger.DebugContext(ctx, msg, args...)
		return
	}

	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}

func (d *Dispatcher) logInfo(ctx context.Context, msg string, args ...any) {
	if d.contextualLogger != nil {
		d.contextualLogger.InfoContext(ctx, msg, args...)
		return
	}

	if d.logger != nil {
		d.logger.Info(msg, args...)
	}
}

func (d *Dispatcher) logError(ctx context.Context, msg string, args ...any) {
	if d.contextualLogger != nil {
		d.contextualLogger.ErrorContext(ctx, msg, args...)
		return
	}

	if d.logger != nil {
		d.logger.Error(msg, args...)
	}
}
