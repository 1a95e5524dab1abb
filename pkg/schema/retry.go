package schema

import "time"

// BackoffStrategy selects how the delay between attempts grows.
type BackoffStrategy string

const (
	BackoffConstant    BackoffStrategy = "constant"
	BackoffLinear      BackoffStrategy = "linear"
	BackoffExponential BackoffStrategy = "exponential"
)

// RetryConfig configures retries of remote calls.
type RetryConfig struct {
	// MaxAttempts counts the first call. 1 disables retries.
	MaxAttempts     int             `yaml:"max_attempts" json:"max_attempts" mapstructure:"max_attempts" validate:"min=0"`
	BackoffStrategy BackoffStrategy `yaml:"backoff_strategy" json:"backoff_strategy" mapstructure:"backoff_strategy" validate:"omitempty,oneof=constant linear exponential"`
	InitialDelay    time.Duration   `yaml:"initial_delay" json:"initial_delay" mapstructure:"initial_delay"`
	MaxDelay        time.Duration   `yaml:"max_delay" json:"max_delay" mapstructure:"max_delay"`
	RandomJitter    bool            `yaml:"random_jitter" json:"random_jitter" mapstructure:"random_jitter"`
	Multiplier      float64         `yaml:"multiplier" json:"multiplier" mapstructure:"multiplier"`
	MaxElapsedTime  time.Duration   `yaml:"max_elapsed_time" json:"max_elapsed_time" mapstructure:"max_elapsed_time"`
}

// GitHub configures the GitHub change source.
type GitHub struct {
	Retry RetryConfig `yaml:"retry" json:"retry" mapstructure:"retry"`
}
