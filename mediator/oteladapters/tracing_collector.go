package oteladapters

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/bookapp-api/mediator"
)

// TracingCollector implements mediator.TracingCollector using the OpenTelemetry tracing API.
type TracingCollector struct {
	tracer trace.Tracer
}

// NewTracingCollector creates a new OpenTelemetry tracing collector.
func NewTracingCollector(tracer trace.Tracer) *TracingCollector {
	return &TracingCollector{tracer: tracer}
}

// StartSpan starts an internal span with the given attributes and returns the derived context.
func (t *TracingCollector) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, mediator.SpanContext) {
	spanCtx, span := t.tracer.Start(
		ctx,
		name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(toAttributes(attrs)...),
	)

	return spanCtx, &OTelSpanContext{span: span}
}

// FinishSpan adds the final attributes, maps the status, and ends the span.
// Span contexts that were not created by this collector are ignored.
func (t *TracingCollector) FinishSpan(spanCtx mediator.SpanContext, status string, attrs map[string]string) {
	otelSpanCtx, ok := spanCtx.(*OTelSpanContext)
	if !ok {
		return
	}

	otelSpanCtx.span.SetAttributes(toAttributes(attrs)...)
	otelSpanCtx.setSpanStatus(status)
	otelSpanCtx.span.End()
}

var _ mediator.TracingCollector = (*TracingCollector)(nil)

// OTelSpanContext implements mediator.SpanContext by wrapping an OpenTelemetry span.
type OTelSpanContext struct {
	span trace.Span
}

// SetStatus maps a dispatch status to an OpenTelemetry status code.
func (s *OTelSpanContext) SetStatus(status string) {
	s.setSpanStatus(status)
}

// AddAttribute adds a string attribute to the span.
func (s *OTelSpanContext) AddAttribute(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}

// setSpanStatus maps dispatch statuses to span status codes.
// A business failure is an expected outcome, so it keeps the Unset code and is only recorded as attribute.
func (s *OTelSpanContext) setSpanStatus(status string) {
	switch status {
	case mediator.StatusSuccess:
		s.span.SetStatus(codes.Ok, "")
	case mediator.StatusFailed:
		s.span.SetAttributes(attribute.String(mediator.LogAttrStatus, status))
	case mediator.StatusError:
		s.span.SetStatus(codes.Error, "dispatch error")
	case mediator.StatusNoHandler:
		s.span.SetStatus(codes.Error, "no handler registered")
	default:
		s.span.SetAttributes(attribute.String(mediator.LogAttrStatus, status))
	}
}

var _ mediator.SpanContext = (*OTelSpanContext)(nil)
