package mediator_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookapp-api/mediator"
	. "github.com/AntonStoeckl/bookapp-api/testutil/helper" //nolint:revive
)

func buildDispatcher(t *testing.T, register func(b *mediator.RegistryBuilder), options ...mediator.Option) *mediator.Dispatcher {
	t.Helper()

	builder := mediator.NewRegistryBuilder()
	register(builder)

	dispatcher, err := mediator.NewDispatcher(builder.Build(), options...)
	require.NoError(t, err)

	return dispatcher
}

func Test_NewDispatcher_FailsWithoutRegistry(t *testing.T) {
	// act
	dispatcher, err := mediator.NewDispatcher(nil)

	// assert
	assert.Nil(t, dispatcher)
	assert.ErrorIs(t, err, mediator.ErrNilRegistry)
}

func Test_Dispatcher_Dispatch_ReturnsHandlerResult(t *testing.T) {
	// arrange
	dispatcher := buildDispatcher(t, func(b *mediator.RegistryBuilder) {
		require.NoError(t, b.Register("PingCommand", okHandler("some-id")))
	})

	// act
	result, err := dispatcher.Dispatch(context.Background(), pingCommand{})

	// assert
	require.NoError(t, err)
	assert.True(t, result.IsSuccess())
	assert.Equal(t, "some-id", result.Payload())
}

func Test_Dispatcher_Dispatch_InvokesHandlerExactlyOnce(t *testing.T) {
	// arrange
	calls := 0
	dispatcher := buildDispatcher(t, func(b *mediator.RegistryBuilder) {
		require.NoError(t, b.Register("PingCommand", func(_ context.Context, _ mediator.Message) (mediator.Result, error) {
			calls++
			return mediator.Fail("nope"), nil
		}))
	})

	// act
	_, err := dispatcher.Dispatch(context.Background(), pingCommand{})

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func Test_Dispatcher_Dispatch_PassesFailResultThrough(t *testing.T) {
	// arrange
	dispatcher := buildDispatcher(t, func(b *mediator.RegistryBuilder) {
		require.NoError(t, b.Register("PingCommand", func(_ context.Context, _ mediator.Message) (mediator.Result, error) {
			return mediator.Fail("not found"), nil
		}))
	})

	// act
	result, err := dispatcher.Dispatch(context.Background(), pingCommand{})

	// assert
	require.NoError(t, err)
	assert.False(t, result.IsSuccess())
	assert.Equal(t, "not found", result.Reason())
}

func Test_Dispatcher_Dispatch_ConvertsDomainErrorIntoFail(t *testing.T) {
	// arrange
	dispatcher := buildDispatcher(t, func(b *mediator.RegistryBuilder) {
		require.NoError(t, b.Register("PingCommand", func(_ context.Context, _ mediator.Message) (mediator.Result, error) {
			return mediator.Result{}, fmt.Errorf("loading author: %w", mediator.NewDomainError("author not found"))
		}))
	})

	// act
	result, err := dispatcher.Dispatch(context.Background(), pingCommand{})

	// assert
	require.NoError(t, err)
	assert.False(t, result.IsSuccess())
	assert.Equal(t, "author not found", result.Reason())
}

func Test_Dispatcher_Dispatch_PropagatesOtherErrorsUnchanged(t *testing.T) {
	// arrange
	storeErr := errors.New("connection refused")
	dispatcher := buildDispatcher(t, func(b *mediator.RegistryBuilder) {
		require.NoError(t, b.Register("PingCommand", func(_ context.Context, _ mediator.Message) (mediator.Result, error) {
			return mediator.Result{}, storeErr
		}))
	})

	// act
	result, err := dispatcher.Dispatch(context.Background(), pingCommand{})

	// assert
	assert.Same(t, storeErr, err)
	assert.False(t, result.IsSuccess())
	assert.Empty(t, result.Reason())
}

func Test_Dispatcher_Dispatch_FailsForUnregisteredMessage(t *testing.T) {
	// arrange
	dispatcher := buildDispatcher(t, func(b *mediator.RegistryBuilder) {
		require.NoError(t, b.Register("PingCommand", okHandler(nil)))
	})

	// act
	_, err := dispatcher.Dispatch(context.Background(), pongQuery{})

	// assert
	assert.ErrorIs(t, err, mediator.ErrNoHandlerRegistered)
}

func Test_Dispatcher_Dispatch_FailsForNilMessage(t *testing.T) {
	// arrange
	dispatcher := buildDispatcher(t, func(_ *mediator.RegistryBuilder) {})

	// act
	_, err := dispatcher.Dispatch(context.Background(), nil)

	// assert
	assert.ErrorIs(t, err, mediator.ErrNilMessage)
}

func Test_Dispatcher_Dispatch_IsSafeForConcurrentUse(t *testing.T) {
	// arrange
	dispatcher := buildDispatcher(t, func(b *mediator.RegistryBuilder) {
		require.NoError(t, mediator.Register(b, func(_ context.Context, cmd pingCommand) (mediator.Result, error) {
			return mediator.Ok(cmd.Value), nil
		}))
	})

	const workers = 50
	results := make([]mediator.Result, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup

	// act
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = dispatcher.Dispatch(context.Background(), pingCommand{Value: fmt.Sprint(i)})
		}(i)
	}
	wg.Wait()

	// assert
	for i := 0; i < workers; i++ {
		assert.NoError(t, errs[i])
		assert.Equal(t, fmt.Sprint(i), results[i].Payload())
	}
}

func Test_Dispatcher_WithLogger_LogsDispatchLifecycle(t *testing.T) {
	// arrange
	logHandler := NewLogHandlerSpy(false)
	dispatcher := buildDispatcher(t, func(b *mediator.RegistryBuilder) {
		require.NoError(t, b.Register("PingCommand", okHandler(nil)))
	}, mediator.WithLogger(slog.New(logHandler)))

	// act
	_, err := dispatcher.Dispatch(context.Background(), pingCommand{})

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, logHandler.GetRecordCount())
	assert.True(t,
		logHandler.HasDebugLogWithMessage(mediator.LogMsgDispatchStarted).
			WithAttribute(mediator.LogAttrMessageType, "PingCommand").
			WithAttribute(mediator.LogAttrMessageKind, "command").
			Assert(), "should log the start of the dispatch",
	)
	assert.True(t,
		logHandler.HasInfoLogWithMessage(mediator.LogMsgDispatchCompleted).
			WithAttribute(mediator.LogAttrStatus, mediator.StatusSuccess).
			WithDurationMS().
			Assert(), "should log the completion with duration",
	)
}

func Test_Dispatcher_WithLogger_LogsDomainFailureAtInfo(t *testing.T) {
	// arrange
	logHandler := NewLogHandlerSpy(false)
	dispatcher := buildDispatcher(t, func(b *mediator.RegistryBuilder) {
		require.NoError(t, b.Register("PingCommand", func(_ context.Context, _ mediator.Message) (mediator.Result, error) {
			return mediator.Result{}, mediator.NewDomainError("not found")
		}))
	}, mediator.WithLogger(slog.New(logHandler)))

	// act
	_, err := dispatcher.Dispatch(context.Background(), pingCommand{})

	// assert
	require.NoError(t, err)
	assert.True(t,
		logHandler.HasInfoLogWithMessage(mediator.LogMsgDispatchFailed).
			WithAttribute(mediator.LogAttrReason, "not found").
			WithAttribute(mediator.LogAttrStatus, mediator.StatusFailed).
			Assert(), "should log the business failure with its reason",
	)
}

func Test_Dispatcher_WithContextualLogger_IsPreferredOverLogger(t *testing.T) {
	// arrange
	plainHandler := NewLogHandlerSpy(false)
	contextualHandler := NewLogHandlerSpy(false)
	dispatcher := buildDispatcher(t, func(b *mediator.RegistryBuilder) {
		require.NoError(t, b.Register("PingCommand", func(_ context.Context, _ mediator.Message) (mediator.Result, error) {
			return mediator.Result{}, errors.New("boom")
		}))
	},
		mediator.WithLogger(slog.New(plainHandler)),
		mediator.WithContextualLogger(slog.New(contextualHandler)),
	)

	// act
	_, err := dispatcher.Dispatch(context.Background(), pingCommand{})

	// assert
	assert.Error(t, err)
	assert.Equal(t, 0, plainHandler.GetRecordCount())
	assert.True(t,
		contextualHandler.HasErrorLogWithMessage(mediator.LogMsgDispatchError).
			WithAttribute(mediator.LogAttrError, "boom").
			WithAttribute(mediator.LogAttrStatus, mediator.StatusError).
			Assert(), "should log the error through the contextual logger",
	)
}

func Test_Dispatcher_WithMetrics_RecordsStatusLabels(t *testing.T) {
	tests := []struct {
		name           string
		msg            mediator.Message
		handler        mediator.HandlerFunc
		expectedStatus string
	}{
		{
			name:           "success",
			msg:            pingCommand{},
			handler:        okHandler(nil),
			expectedStatus: mediator.StatusSuccess,
		},
		{
			name: "fail_result",
			msg:  pingCommand{},
			handler: func(_ context.Context, _ mediator.Message) (mediator.Result, error) {
				return mediator.Fail("not found"), nil
			},
			expectedStatus: mediator.StatusFailed,
		},
		{
			name: "domain_error",
			msg:  pingCommand{},
			handler: func(_ context.Context, _ mediator.Message) (mediator.Result, error) {
				return mediator.Result{}, mediator.NewDomainError("author has books")
			},
			expectedStatus: mediator.StatusFailed,
		},
		{
			name: "other_error",
			msg:  pingCommand{},
			handler: func(_ context.Context, _ mediator.Message) (mediator.Result, error) {
				return mediator.Result{}, errors.New("boom")
			},
			expectedStatus: mediator.StatusError,
		},
		{
			name:           "no_handler",
			msg:            pongQuery{},
			handler:        okHandler(nil),
			expectedStatus: mediator.StatusNoHandler,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			metrics := NewMetricsCollectorSpy(true)
			dispatcher := buildDispatcher(t, func(b *mediator.RegistryBuilder) {
				require.NoError(t, b.Register("PingCommand", tc.handler))
			}, mediator.WithMetrics(metrics))

			// act
			_, _ = dispatcher.Dispatch(context.Background(), tc.msg)

			// assert
			assert.Equal(t, 1, metrics.GetDurationRecordCount())
			assert.Equal(t, 1, metrics.GetCounterRecordCount())
			assert.True(t, metrics.HasDurationRecord(mediator.DispatchDurationMetric, tc.expectedStatus))
			assert.True(t, metrics.HasCounterRecord(mediator.DispatchCallsMetric, tc.expectedStatus))

			labels := metrics.GetCounterRecords()[0].Labels
			assert.Equal(t, tc.msg.MessageType(), labels[mediator.LogAttrMessageType])
			assert.Equal(t, string(tc.msg.MessageKind()), labels[mediator.LogAttrMessageKind])
		})
	}
}

func Test_Dispatcher_WithMetrics_PrefersContextualCollector(t *testing.T) {
	// arrange
	metrics := NewContextualMetricsCollectorSpy()
	dispatcher := buildDispatcher(t, func(b *mediator.RegistryBuilder) {
		require.NoError(t, b.Register("PingCommand", okHandler(nil)))
	}, mediator.WithMetrics(metrics))

	// act
	_, err := dispatcher.Dispatch(context.Background(), pingCommand{})

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, metrics.GetContextCallCount())
	assert.Equal(t, 1, metrics.GetDurationRecordCount())
	assert.Equal(t, 1, metrics.GetCounterRecordCount())
}

func Test_Dispatcher_WithTracing_RecordsSpan(t *testing.T) {
	// arrange
	tracing := NewTracingCollectorSpy(true)
	dispatcher := buildDispatcher(t, func(b *mediator.RegistryBuilder) {
		require.NoError(t, b.Register("PingCommand", func(_ context.Context, _ mediator.Message) (mediator.Result, error) {
			return mediator.Result{}, mediator.NewDomainError("not found")
		}))
	}, mediator.WithTracing(tracing))

	// act
	_, err := dispatcher.Dispatch(context.Background(), pingCommand{})

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, tracing.GetSpanRecordCount())
	assert.True(t,
		tracing.HasSpanRecordForName(mediator.SpanNameDispatch).
			WithStartAttribute(mediator.LogAttrMessageType, "PingCommand").
			WithStartAttribute(mediator.LogAttrMessageKind, "command").
			WithStatus(mediator.StatusFailed).
			WithEndAttribute(mediator.LogAttrReason, "not found").
			Assert(), "should record the dispatch span with failure status and reason",
	)
}

func Test_Dispatcher_WithTracing_RecordsErrorSpanForMissingHandler(t *testing.T) {
	// arrange
	tracing := NewTracingCollectorSpy(true)
	dispatcher := buildDispatcher(t, func(_ *mediator.RegistryBuilder) {}, mediator.WithTracing(tracing))

	// act
	_, err := dispatcher.Dispatch(context.Background(), pongQuery{})

	// assert
	assert.ErrorIs(t, err, mediator.ErrNoHandlerRegistered)
	assert.True(t,
		tracing.HasSpanRecordForName(mediator.SpanNameDispatch).
			WithStatus(mediator.StatusError).
			Assert(), "should finish the span with error status",
	)
}

func Test_Dispatcher_ContextualLogger_ReceivesSpanContext(t *testing.T) {
	// arrange
	contextualLogger := NewContextualLoggerSpy(true)
	tracing := NewTracingCollectorSpy(true)
	dispatcher := buildDispatcher(t, func(b *mediator.RegistryBuilder) {
		require.NoError(t, b.Register("PingCommand", okHandler("id")))
	},
		mediator.WithContextualLogger(contextualLogger),
		mediator.WithTracing(tracing),
	)

	// act
	_, err := dispatcher.Dispatch(context.Background(), pingCommand{})

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, contextualLogger.GetTotalRecordCount())
	assert.True(t, contextualLogger.HasLog("debug", mediator.LogMsgDispatchStarted))

	record, found := contextualLogger.FindLog("info", mediator.LogMsgDispatchCompleted)
	require.True(t, found)
	span, hasSpan := SpySpanFromContext(record.Context)
	require.True(t, hasSpan, "log calls must carry the dispatch span")
	assert.Same(t, tracing.GetSpanRecords()[0].SpanContext, span)
}
