package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/cloudposse/tfmatrix/errors"
	"github.com/cloudposse/tfmatrix/pkg/schema"
)

// newTestExecutor records delays instead of sleeping.
func newTestExecutor(config schema.RetryConfig) (*Executor, *[]time.Duration) {
	var delays []time.Duration
	e := New(config)
	e.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return ctx.Err()
	}
	return e, &delays
}

func TestExecuteSucceedsAfterRetry(t *testing.T) {
	e, delays := newTestExecutor(schema.RetryConfig{
		MaxAttempts:     3,
		BackoffStrategy: schema.BackoffConstant,
		InitialDelay:    10 * time.Millisecond,
	})

	attempts := 0
	err := e.Execute(context.Background(), func() error {
		attempts++
		if attempts < 2 {
			return errors.New("temporary error")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, []time.Duration{10 * time.Millisecond}, *delays)
}

func TestExecuteMaxAttemptsExceeded(t *testing.T) {
	e, _ := newTestExecutor(schema.RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond})
	cause := errors.New("persistent error")

	attempts := 0
	err := e.Execute(context.Background(), func() error {
		attempts++
		return cause
	})

	require.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "max attempts (3) exceeded")
}

func TestExecuteSingleAttempt(t *testing.T) {
	for _, attempts := range []int{0, 1} {
		e, delays := newTestExecutor(schema.RetryConfig{MaxAttempts: attempts})
		cause := errors.New("boom")

		calls := 0
		err := e.Execute(context.Background(), func() error {
			calls++
			return cause
		})
		assert.Equal(t, cause, err)
		assert.Equal(t, 1, calls)
		assert.Empty(t, *delays)
	}
}

func TestExecuteContextCancelled(t *testing.T) {
	e, _ := newTestExecutor(schema.RetryConfig{MaxAttempts: 5, InitialDelay: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := e.Execute(ctx, func() error {
		attempts++
		return errors.New("temporary error")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestExecuteMaxElapsedTime(t *testing.T) {
	e, _ := newTestExecutor(schema.RetryConfig{MaxAttempts: 10, MaxElapsedTime: time.Nanosecond})

	err := e.Execute(context.Background(), func() error {
		time.Sleep(time.Millisecond)
		return errors.New("slow")
	})
	assert.ErrorIs(t, err, errUtils.ErrMaxElapsedTime)
}

func TestWithPredicate(t *testing.T) {
	retryable := errors.New("retryable")
	fatal := errors.New("fatal")
	config := schema.RetryConfig{MaxAttempts: 5}

	attempts := 0
	err := WithPredicate(context.Background(), &config, func() error {
		attempts++
		if attempts < 3 {
			return retryable
		}
		return fatal
	}, func(err error) bool { return errors.Is(err, retryable) })

	assert.Equal(t, fatal, err)
	assert.Equal(t, 3, attempts)
}

func TestCalculateDelay(t *testing.T) {
	tests := []struct {
		name     string
		config   schema.RetryConfig
		expected []time.Duration
	}{
		{
			name:     "constant",
			config:   schema.RetryConfig{BackoffStrategy: schema.BackoffConstant, InitialDelay: 100 * time.Millisecond},
			expected: []time.Duration{100 * time.Millisecond, 100 * time.Millisecond, 100 * time.Millisecond},
		},
		{
			name:     "linear",
			config:   schema.RetryConfig{BackoffStrategy: schema.BackoffLinear, InitialDelay: 100 * time.Millisecond},
			expected: []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond},
		},
		{
			name:     "exponential",
			config:   schema.RetryConfig{BackoffStrategy: schema.BackoffExponential, InitialDelay: 100 * time.Millisecond, Multiplier: 3},
			expected: []time.Duration{100 * time.Millisecond, 300 * time.Millisecond, 900 * time.Millisecond},
		},
		{
			name: "capped by max delay",
			config: schema.RetryConfig{
				BackoffStrategy: schema.BackoffExponential,
				InitialDelay:    time.Second,
				Multiplier:      10,
				MaxDelay:        5 * time.Second,
			},
			expected: []time.Duration{time.Second, 5 * time.Second, 5 * time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(tt.config)
			for i, want := range tt.expected {
				assert.Equal(t, want, e.calculateDelay(i+1), "attempt %d", i+1)
			}
		})
	}
}

func TestCalculateDelayJitter(t *testing.T) {
	e := New(schema.RetryConfig{InitialDelay: time.Second, RandomJitter: true})
	for i := 0; i < 50; i++ {
		d := e.calculateDelay(1)
		assert.InDelta(t, float64(time.Second), float64(d), float64(100*time.Millisecond))
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, 3, config.MaxAttempts)
	assert.Equal(t, schema.BackoffExponential, config.BackoffStrategy)
	assert.True(t, config.RandomJitter)
}
