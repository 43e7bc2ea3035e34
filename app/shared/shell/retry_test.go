package shell_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/bookapp-api/app/shared/shell"
	"github.com/AntonStoeckl/bookapp-api/storage"
	. "github.com/AntonStoeckl/bookapp-api/testutil/helper" //nolint:revive
)

func Test_RetryWithExponentialBackoff_Success_NoRetries(t *testing.T) {
	// arrange
	callCount := 0
	fn := func(_ context.Context) error {
		callCount++
		return nil
	}

	// act
	err := shell.RetryWithExponentialBackoff(context.Background(), fn)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, callCount)
}

func Test_RetryWithExponentialBackoff_RetriesWhileStoreIsUnavailable(t *testing.T) {
	// arrange
	callCount := 0
	fn := func(_ context.Context) error {
		callCount++
		if callCount < 3 {
			return errors.Join(storage.ErrPingFailed, errors.New("connection refused"))
		}
		return nil
	}

	// act
	err := shell.RetryWithExponentialBackoff(context.Background(), fn, shell.WithBaseDelay(time.Millisecond))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 3, callCount)
}

func Test_RetryWithExponentialBackoff_NonRetryableError_FailsFast(t *testing.T) {
	// arrange
	permanent := errors.New("authentication failed")
	callCount := 0
	fn := func(_ context.Context) error {
		callCount++
		return permanent
	}

	// act
	err := shell.RetryWithExponentialBackoff(context.Background(), fn, shell.WithBaseDelay(time.Millisecond))

	// assert
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, callCount)
}

func Test_RetryWithExponentialBackoff_MaxAttemptsReached_ReturnsLastError(t *testing.T) {
	// arrange
	callCount := 0
	fn := func(_ context.Context) error {
		callCount++
		return storage.ErrPingFailed
	}

	// act
	err := shell.RetryWithExponentialBackoff(context.Background(), fn,
		shell.WithMaxAttempts(3),
		shell.WithBaseDelay(time.Millisecond),
		shell.WithJitterFactor(0),
	)

	// assert
	assert.ErrorIs(t, err, storage.ErrPingFailed)
	assert.Equal(t, 3, callCount)
}

func Test_RetryWithExponentialBackoff_CustomRetryableErrors(t *testing.T) {
	// arrange
	errTransient := errors.New("transient")
	callCount := 0
	fn := func(_ context.Context) error {
		callCount++
		if callCount == 1 {
			return errTransient
		}
		return nil
	}

	// act
	err := shell.RetryWithExponentialBackoff(context.Background(), fn,
		shell.WithRetryableErrors(errTransient),
		shell.WithBaseDelay(time.Millisecond),
	)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 2, callCount)
}

func Test_RetryWithExponentialBackoff_ContextCanceledDuringBackoff(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	fn := func(_ context.Context) error {
		cancel()
		return storage.ErrPingFailed
	}

	// act
	err := shell.RetryWithExponentialBackoff(ctx, fn, shell.WithBaseDelay(time.Hour))

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}

func Test_RetryWithExponentialBackoff_RecordsMetricsAndLogs(t *testing.T) {
	// arrange
	metricsCollector := NewMetricsCollectorSpy(true)
	logHandler := NewLogHandlerSpy(false)
	fn := func(_ context.Context) error {
		return storage.ErrPingFailed
	}

	// act
	err := shell.RetryWithExponentialBackoff(context.Background(), fn,
		shell.WithMaxAttempts(3),
		shell.WithBaseDelay(time.Millisecond),
		shell.WithMetrics(metricsCollector, "store_ping"),
		shell.WithLogger(slog.New(logHandler)),
	)

	// assert
	assert.ErrorIs(t, err, storage.ErrPingFailed)
	assert.Equal(t, 2, metricsCollector.GetDurationRecordCount(), "one delay per retry")

	retries := 0
	exhausted := 0
	for _, record := range metricsCollector.GetCounterRecords() {
		assert.Equal(t, "store_ping", record.Labels["operation"])
		switch record.Metric {
		case shell.RetryAttemptsMetric:
			retries++
			assert.Equal(t, "store_unavailable", record.Labels["error_type"])
		case shell.RetryExhaustedMetric:
			exhausted++
			assert.Equal(t, "store_unavailable", record.Labels["final_error_type"])
		}
	}
	assert.Equal(t, 2, retries)
	assert.Equal(t, 1, exhausted)

	assert.True(t, logHandler.HasWarnLogWithMessage("operation failed, retrying").
		WithAttribute("operation", "store_ping").
		WithAttributeKey("delay_ms").
		Assert())
}

func Test_RetryWithExponentialBackoff_InvalidOptions(t *testing.T) {
	ctx := context.Background()
	fn := func(_ context.Context) error { return nil }

	tests := []struct {
		name    string
		option  shell.RetryOption
		wantErr error
	}{
		{name: "zero max attempts", option: shell.WithMaxAttempts(0), wantErr: shell.ErrInvalidMaxAttempts},
		{name: "negative base delay", option: shell.WithBaseDelay(-1 * time.Second), wantErr: shell.ErrNegativeBaseDelay},
		{name: "jitter above one", option: shell.WithJitterFactor(1.5), wantErr: shell.ErrInvalidJitterFactor},
		{name: "nil metrics collector", option: shell.WithMetrics(nil, "store_ping"), wantErr: shell.ErrNilMetricsCollector},
		{name: "empty operation", option: shell.WithMetrics(NewMetricsCollectorSpy(false), ""), wantErr: shell.ErrEmptyOperation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// act
			err := shell.RetryWithExponentialBackoff(ctx, fn, tc.option)

			// assert
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
