// Package retry runs a function again after transient failures, with backoff.
package retry

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/cockroachdb/errors"

	errUtils "github.com/cloudposse/tfmatrix/errors"
	log "github.com/cloudposse/tfmatrix/pkg/logger"
	"github.com/cloudposse/tfmatrix/pkg/schema"
)

// Func represents a function that can be retried.
type Func func() error

// Executor handles the retry logic.
type Executor struct {
	config schema.RetryConfig
	rand   *rand.Rand
	sleep  func(ctx context.Context, d time.Duration) error
}

// New creates a new retry executor with the given config.
func New(config schema.RetryConfig) *Executor {
	return &Executor{
		config: config,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:  sleepContext,
	}
}

// Execute runs the function with retry logic, retrying every error.
func (e *Executor) Execute(ctx context.Context, fn Func) error {
	return e.ExecuteWithPredicate(ctx, fn, RetryOnAnyError)
}

// ExecuteWithPredicate runs fn until it succeeds, shouldRetry rejects its
// error, attempts run out, the elapsed time budget runs out or ctx is done.
func (e *Executor) ExecuteWithPredicate(ctx context.Context, fn Func, shouldRetry func(error) bool) error {
	startTime := time.Now()
	maxAttempts := max(e.config.MaxAttempts, 1)

	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !shouldRetry(err) {
			return err
		}
		if attempt >= maxAttempts {
			if maxAttempts == 1 {
				return err
			}
			return errors.Wrapf(err, "max attempts (%d) exceeded", maxAttempts)
		}
		if e.config.MaxElapsedTime > 0 && time.Since(startTime) > e.config.MaxElapsedTime {
			return errUtils.Build(errUtils.ErrMaxElapsedTime).
				WithCause(err).
				WithContext("max_elapsed_time", e.config.MaxElapsedTime.String()).
				Err()
		}

		delay := e.calculateDelay(attempt)
		log.Debug("Retrying after error", "attempt", attempt, "delay", delay, "err", err)
		if err := e.sleep(ctx, delay); err != nil {
			return errors.Wrap(err, "context cancelled during retry")
		}
	}
}

const jitterFlipChance = 0.5

// calculateDelay calculates the delay for the next retry attempt.
func (e *Executor) calculateDelay(attempt int) time.Duration {
	var delay time.Duration

	switch e.config.BackoffStrategy {
	case schema.BackoffLinear:
		delay = time.Duration(float64(e.config.InitialDelay) * float64(attempt))
	case schema.BackoffExponential:
		multiplier := e.config.Multiplier
		if multiplier <= 0 {
			multiplier = 2
		}
		delay = time.Duration(float64(e.config.InitialDelay) * math.Pow(multiplier, float64(attempt-1)))
	default:
		delay = e.config.InitialDelay
	}

	if e.config.MaxDelay > 0 && delay > e.config.MaxDelay {
		delay = e.config.MaxDelay
	}

	if e.config.RandomJitter {
		jitter := time.Duration(e.rand.Float64() * float64(delay) * 0.1) // 10% jitter
		if e.rand.Float64() < jitterFlipChance {
			delay += jitter
		} else {
			delay -= jitter
		}
		if delay < 0 {
			delay = 0
		}
	}

	return delay
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// WithPredicate runs fn under config, retrying only the errors shouldRetry accepts.
// A nil config means DefaultConfig.
func WithPredicate(ctx context.Context, config *schema.RetryConfig, fn Func, shouldRetry func(error) bool) error {
	if config == nil {
		temp := DefaultConfig()
		config = &temp
	}
	return New(*config).ExecuteWithPredicate(ctx, fn, shouldRetry)
}

const (
	defaultMaxAttempts    = 3
	defaultInitialDelay   = 500 * time.Millisecond
	defaultMaxDelay       = 5 * time.Second
	defaultMaxElapsedTime = time.Minute
)

// DefaultConfig returns the retry settings used for GitHub API calls.
func DefaultConfig() schema.RetryConfig {
	return schema.RetryConfig{
		MaxAttempts:     defaultMaxAttempts,
		BackoffStrategy: schema.BackoffExponential,
		InitialDelay:    defaultInitialDelay,
		MaxDelay:        defaultMaxDelay,
		RandomJitter:    true,
		Multiplier:      2.0,
		MaxElapsedTime:  defaultMaxElapsedTime,
	}
}

// RetryOnAnyError retries on any error.
var RetryOnAnyError = func(error) bool { return true }
