package shell

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/AntonStoeckl/bookapp-api/mediator"
	"github.com/AntonStoeckl/bookapp-api/storage"
)

const (
	defaultMaxAttempts  = 6
	defaultBaseDelay    = 100 * time.Millisecond
	defaultJitterFactor = 0.3

	// RetryAttemptsMetric counts retries by operation, attempt number, and error type.
	RetryAttemptsMetric = "startup_retries_total"

	// RetryDelayMetric tracks the backoff delay before each retry.
	RetryDelayMetric = "startup_retry_delay_seconds"

	// RetryExhaustedMetric counts operations that failed after all attempts.
	RetryExhaustedMetric = "startup_retries_exhausted_total"

	logMsgRetrying       = "operation failed, retrying"
	logAttrOperation     = "operation"
	logAttrAttempt       = "attempt"
	logAttrDelayMS       = "delay_ms"
	logAttrError         = "error"
	labelOperation       = "operation"
	labelAttemptNumber   = "attempt_number"
	labelErrorType       = "error_type"
	labelFinalErrorType  = "final_error_type"
	errorTypeNone        = "none"
	errorTypeUnavailable = "store_unavailable"
	errorTypeCanceled    = "context_canceled"
	errorTypeDeadline    = "context_deadline_exceeded"
	errorTypeOther       = "other"
)

var (
	// ErrNilMetricsCollector is returned when a nil metrics collector is provided to WithMetrics.
	ErrNilMetricsCollector = errors.New("metrics collector must not be nil")

	// ErrEmptyOperation is returned when an empty operation name is provided to WithMetrics.
	ErrEmptyOperation = errors.New("operation must not be empty")

	// ErrInvalidMaxAttempts is returned when max attempts are not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrNegativeBaseDelay is returned when the base delay is negative.
	ErrNegativeBaseDelay = errors.New("base delay must not be negative")

	// ErrInvalidJitterFactor is returned when the jitter factor is not between 0.0 and 1.0.
	ErrInvalidJitterFactor = errors.New("jitter factor must be between 0.0 and 1.0")
)

// RetryableFunc represents a function that can be retried.
type RetryableFunc func(ctx context.Context) error

// retryConfig holds configuration for exponential backoff retry logic.
type retryConfig struct {
	maxAttempts      int
	baseDelay        time.Duration
	jitterFactor     float64
	retryableErrors  []error
	metricsCollector mediator.MetricsCollector
	operation        string
	logger           mediator.Logger
}

// RetryWithExponentialBackoff executes fn until it succeeds, fails with a non-retryable error,
// or maxAttempts is reached.
//
// Retry Schedule (default): 0 ms, 100 ms, 200 ms, 400 ms, 800 ms, 1600 ms (with 30% jitter)
// Use Case: waiting for the database during process startup
//
// By default only storage.ErrPingFailed is retried, all other errors fail fast.
func RetryWithExponentialBackoff(
	ctx context.Context,
	fn RetryableFunc,
	options ...RetryOption,
) error {
	config := &retryConfig{
		maxAttempts:     defaultMaxAttempts,
		baseDelay:       defaultBaseDelay,
		jitterFactor:    defaultJitterFactor,
		retryableErrors: []error{storage.ErrPingFailed},
	}

	for _, option := range options {
		if err := option(config); err != nil {
			return err
		}
	}

	var lastErr error

	for attempt := 0; attempt < config.maxAttempts; attempt++ {
		if attempt > 0 {
			// Exponential backoff: baseDelay * 2^(attempt-1)
			delay := config.baseDelay * time.Duration(1<<(attempt-1))

			jitter := rand.Float64() * float64(delay) * config.jitterFactor //nolint:gosec //math/rand is sufficient for jitter
			backoffDelay := delay + time.Duration(jitter)

			recordRetryDelay(ctx, config, attempt, backoffDelay, lastErr)

			select {
			case <-time.After(backoffDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if !config.isRetryable(lastErr) {
			return lastErr
		}

		recordRetryAttempt(ctx, config, attempt, lastErr)
	}

	recordRetriesExhausted(ctx, config, lastErr)

	return lastErr
}

func (c *retryConfig) isRetryable(err error) bool {
	for _, retryable := range c.retryableErrors {
		if errors.Is(err, retryable) {
			return true
		}
	}

	return false
}

func recordRetryDelay(ctx context.Context, config *retryConfig, attempt int, backoffDelay time.Duration, lastErr error) {
	if config.logger != nil {
		config.logger.Warn(logMsgRetrying,
			logAttrOperation, config.operation,
			logAttrAttempt, attempt+1,
			logAttrDelayMS, backoffDelay.Milliseconds(),
			logAttrError, lastErr.Error())
	}

	if config.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		labelOperation:     config.operation,
		labelAttemptNumber: fmt.Sprintf("%d", attempt),
	}

	if contextualCollector, ok := config.metricsCollector.(mediator.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, RetryDelayMetric, backoffDelay, labels)
		return
	}

	config.metricsCollector.RecordDuration(RetryDelayMetric, backoffDelay, labels)
}

// recordRetryAttempt only counts attempts that will actually be retried.
func recordRetryAttempt(ctx context.Context, config *retryConfig, attempt int, lastErr error) {
	if attempt >= config.maxAttempts-1 || config.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		labelOperation:     config.operation,
		labelAttemptNumber: fmt.Sprintf("%d", attempt+1),
		labelErrorType:     getErrorType(lastErr),
	}

	if contextualCollector, ok := config.metricsCollector.(mediator.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, RetryAttemptsMetric, labels)
		return
	}

	config.metricsCollector.IncrementCounter(RetryAttemptsMetric, labels)
}

func recordRetriesExhausted(ctx context.Context, config *retryConfig, lastErr error) {
	if config.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		labelOperation:      config.operation,
		labelFinalErrorType: getErrorType(lastErr),
	}

	if contextualCollector, ok := config.metricsCollector.(mediator.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, RetryExhaustedMetric, labels)
		return
	}

	config.metricsCollector.IncrementCounter(RetryExhaustedMetric, labels)
}

// getErrorType extracts a string representation of the error type for metrics labeling.
func getErrorType(err error) string {
	switch {
	case err == nil:
		return errorTypeNone
	case errors.Is(err, storage.ErrPingFailed):
		return errorTypeUnavailable
	case errors.Is(err, context.Canceled):
		return errorTypeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return errorTypeDeadline
	default:
		return errorTypeOther
	}
}

// RetryOption configures retry behavior using the functional options pattern.
type RetryOption func(*retryConfig) error

// WithMaxAttempts sets the maximum number of attempts, including the first one.
func WithMaxAttempts(attempts int) RetryOption {
	return func(config *retryConfig) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}

		config.maxAttempts = attempts

		return nil
	}
}

// WithBaseDelay sets the base delay for exponential backoff.
// Actual delays: baseDelay, baseDelay*2, baseDelay*4, baseDelay*8, etc.
func WithBaseDelay(delay time.Duration) RetryOption {
	return func(config *retryConfig) error {
		if delay < 0 {
			return ErrNegativeBaseDelay
		}

		config.baseDelay = delay

		return nil
	}
}

// WithJitterFactor sets the jitter as a fraction of the calculated backoff delay.
// Valid range: 0.0 (no jitter) to 1.0 (100% jitter).
func WithJitterFactor(factor float64) RetryOption {
	return func(config *retryConfig) error {
		if factor < 0.0 || factor > 1.0 {
			return ErrInvalidJitterFactor
		}

		config.jitterFactor = factor

		return nil
	}
}

// WithRetryableErrors replaces the set of errors that are retried, matched with errors.Is.
func WithRetryableErrors(errs ...error) RetryOption {
	return func(config *retryConfig) error {
		config.retryableErrors = errs
		return nil
	}
}

// WithLogger logs a warning before each retry.
func WithLogger(logger mediator.Logger) RetryOption {
	return func(config *retryConfig) error {
		config.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for retry instrumentation.
// Requires the operation name to label metrics.
func WithMetrics(collector mediator.MetricsCollector, operation string) RetryOption {
	return func(config *retryConfig) error {
		if collector == nil {
			return ErrNilMetricsCollector
		}

		if operation == "" {
			return ErrEmptyOperation
		}

		config.metricsCollector = collector
		config.operation = operation

		return nil
	}
}
