package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/fortify/bulkhead"
	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/retry"
	"github.com/recodelabs/recode/internal/domain"
)

// ResilientExecutor wraps an Executor with resilience patterns from
// fortify. Per-case failures are ordinary results and never retried; the
// wrapper only guards against infrastructure failures (docker daemon
// hiccups, interpreter startup races).
type ResilientExecutor struct {
	executor       Executor
	circuitBreaker circuitbreaker.CircuitBreaker[[]domain.CaseResult]
	retrier        retry.Retry[[]domain.CaseResult]
	bulkhead       bulkhead.Bulkhead[[]domain.CaseResult]
	logger         *slog.Logger
}

// ResilientConfig holds configuration for the resilient executor wrapper.
type ResilientConfig struct {
	// EnableCircuitBreaker trips after repeated backend failures
	EnableCircuitBreaker bool

	// EnableRetry retries transient infrastructure errors with backoff
	EnableRetry bool

	// EnableBulkhead limits concurrent runs
	EnableBulkhead bool

	// MaxConcurrent for bulkhead (default: 2)
	MaxConcurrent int

	// Logger for resilience events
	Logger *slog.Logger
}

// DefaultResilientConfig returns sensible defaults for run resilience.
func DefaultResilientConfig() ResilientConfig {
	return ResilientConfig{
		EnableCircuitBreaker: true,
		EnableRetry:          true,
		EnableBulkhead:       true,
		MaxConcurrent:        2,
	}
}

// NewResilientExecutor wraps an executor with resilience patterns using fortify.
func NewResilientExecutor(executor Executor, cfg ResilientConfig) *ResilientExecutor {
	re := &ResilientExecutor{
		executor: executor,
		logger:   cfg.Logger,
	}

	if cfg.EnableCircuitBreaker {
		re.circuitBreaker = circuitbreaker.New[[]domain.CaseResult](circuitbreaker.Config{
			MaxRequests: 1,
			Interval:    10 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			OnStateChange: func(from, to circuitbreaker.State) {
				if re.logger != nil {
					re.logger.Warn("runner circuit breaker state change",
						"from", from.String(),
						"to", to.String())
				}
			},
		})
	}

	if cfg.EnableRetry {
		re.retrier = retry.New[[]domain.CaseResult](retry.Config{
			MaxAttempts:   2,
			InitialDelay:  500 * time.Millisecond,
			MaxDelay:      5 * time.Second,
			Multiplier:    2.0,
			BackoffPolicy: retry.BackoffExponential,
			Jitter:        true,
		})
	}

	if cfg.EnableBulkhead {
		maxConcurrent := cfg.MaxConcurrent
		if maxConcurrent <= 0 {
			maxConcurrent = 2
		}
		re.bulkhead = bulkhead.New[[]domain.CaseResult](bulkhead.Config{
			MaxConcurrent: maxConcurrent,
			MaxQueue:      maxConcurrent * 2,
			QueueTimeout:  30 * time.Second,
		})
	}

	return re
}

func (r *ResilientExecutor) RunCases(ctx context.Context, snippet, entry string, cases []domain.TestCase) ([]domain.CaseResult, error) {
	operation := func(ctx context.Context) ([]domain.CaseResult, error) {
		return r.executor.RunCases(ctx, snippet, entry, cases)
	}

	if r.bulkhead != nil {
		inner := operation
		operation = func(ctx context.Context) ([]domain.CaseResult, error) {
			return r.bulkhead.Execute(ctx, inner)
		}
	}

	if r.circuitBreaker != nil && r.retrier != nil {
		return r.circuitBreaker.Execute(ctx, func(ctx context.Context) ([]domain.CaseResult, error) {
			return r.retrier.Do(ctx, operation)
		})
	}
	if r.circuitBreaker != nil {
		return r.circuitBreaker.Execute(ctx, operation)
	}
	if r.retrier != nil {
		return r.retrier.Do(ctx, operation)
	}
	return operation(ctx)
}
