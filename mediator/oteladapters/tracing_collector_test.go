package oteladapters_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/bookapp-api/mediator"
	"github.com/AntonStoeckl/bookapp-api/mediator/oteladapters"
	. "github.com/AntonStoeckl/bookapp-api/testutil/helper" //nolint:revive
)

func newInMemoryTracer() (*tracetest.InMemoryExporter, trace.Tracer) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	return exporter, provider.Tracer("test")
}

func Test_TracingCollector_StartAndFinishSpan(t *testing.T) {
	// arrange
	exporter, tracer := newInMemoryTracer()
	collector := oteladapters.NewTracingCollector(tracer)

	// act
	ctx, spanCtx := collector.StartSpan(context.Background(), mediator.SpanNameDispatch, map[string]string{
		mediator.LogAttrMessageType: "GetBookQuery",
		mediator.LogAttrMessageKind: "query",
	})
	collector.FinishSpan(spanCtx, mediator.StatusSuccess, nil)

	// assert
	assert.True(t, trace.SpanContextFromContext(ctx).IsValid(), "context should carry the span")
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, mediator.SpanNameDispatch, span.Name)
	assert.Equal(t, trace.SpanKindInternal, span.SpanKind)
	assert.Equal(t, codes.Ok, span.Status.Code)
	assertSpanHasAttribute(t, span, mediator.LogAttrMessageType, "GetBookQuery")
	assertSpanHasAttribute(t, span, mediator.LogAttrMessageKind, "query")
}

func Test_TracingCollector_StatusMapping(t *testing.T) {
	tests := []struct {
		status       string
		expectedCode codes.Code
	}{
		{status: mediator.StatusSuccess, expectedCode: codes.Ok},
		{status: mediator.StatusFailed, expectedCode: codes.Unset},
		{status: mediator.StatusError, expectedCode: codes.Error},
		{status: mediator.StatusNoHandler, expectedCode: codes.Error},
		{status: "something_else", expectedCode: codes.Unset},
	}

	for _, tc := range tests {
		t.Run(tc.status, func(t *testing.T) {
			// arrange
			exporter, tracer := newInMemoryTracer()
			collector := oteladapters.NewTracingCollector(tracer)

			// act
			_, spanCtx := collector.StartSpan(context.Background(), "test-span", nil)
			collector.FinishSpan(spanCtx, tc.status, map[string]string{"detail": "x"})

			// assert
			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tc.expectedCode, spans[0].Status.Code)
			assertSpanHasAttribute(t, spans[0], "detail", "x")
		})
	}
}

func Test_TracingCollector_FinishSpan_IgnoresForeignSpanContext(t *testing.T) {
	// arrange
	exporter, tracer := newInMemoryTracer()
	collector := oteladapters.NewTracingCollector(tracer)

	// act
	assert.NotPanics(t, func() {
		collector.FinishSpan(&SpySpanContext{}, mediator.StatusSuccess, nil)
	})

	// assert
	assert.Empty(t, exporter.GetSpans())
}

func Test_OTelSpanContext_SetStatusAndAddAttribute(t *testing.T) {
	// arrange
	exporter, tracer := newInMemoryTracer()
	collector := oteladapters.NewTracingCollector(tracer)
	_, spanCtx := collector.StartSpan(context.Background(), "test-span", nil)

	// act
	spanCtx.AddAttribute("test_key", "test_value")
	spanCtx.SetStatus(mediator.StatusSuccess)
	collector.FinishSpan(spanCtx, mediator.StatusSuccess, nil)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assertSpanHasAttribute(t, spans[0], "test_key", "test_value")
}

func Test_Dispatcher_WithOTelAdapters_RecordsDispatchSpan(t *testing.T) {
	// arrange
	exporter, tracer := newInMemoryTracer()
	reader, meter := newManualMeter()
	logHandler := NewLogHandlerSpy(false)

	builder := mediator.NewRegistryBuilder()
	require.NoError(t, builder.Register("DeleteBookCommand", func(_ context.Context, _ mediator.Message) (mediator.Result, error) {
		return mediator.Result{}, errors.New("connection reset")
	}))

	dispatcher, err := mediator.NewDispatcher(
		builder.Build(),
		mediator.WithTracing(oteladapters.NewTracingCollector(tracer)),
		mediator.WithMetrics(oteladapters.NewMetricsCollector(meter)),
		mediator.WithContextualLogger(oteladapters.NewSlogBridgeLoggerWithHandler(logHandler)),
	)
	require.NoError(t, err)

	// act
	_, dispatchErr := dispatcher.Dispatch(context.Background(), deleteBookCommand{})

	// assert
	assert.Error(t, dispatchErr)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assertSpanHasAttribute(t, spans[0], mediator.LogAttrError, "connection reset")

	counter := findCounterMetric(t, collect(t, reader), mediator.DispatchCallsMetric)
	require.Len(t, counter.DataPoints, 1)
	status, ok := counter.DataPoints[0].Attributes.Value(attribute.Key(mediator.LogAttrStatus))
	require.True(t, ok)
	assert.Equal(t, mediator.StatusError, status.AsString())

	assert.True(t, logHandler.HasLogWithLevelAndMessage(slog.LevelError, mediator.LogMsgDispatchError).Assert())
}

type deleteBookCommand struct{}

func (c deleteBookCommand) MessageType() string {
	return "DeleteBookCommand"
}

func (c deleteBookCommand) MessageKind() mediator.Kind {
	return mediator.KindCommand
}

func assertSpanHasAttribute(t *testing.T, span tracetest.SpanStub, key, expectedValue string) {
	t.Helper()
	found := false
	for _, attr := range span.Attributes {
		if attr.Key == attribute.Key(key) && attr.Value.AsString() == expectedValue {
			found = true
			break
		}
	}
	assert.True(t, found, "span should have attribute %s=%s", key, expectedValue)
}
