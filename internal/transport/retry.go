package transport

import (
	"fmt"
	"time"
)

// RetryConfig configures the retry policy for transient failures.
// Delays are deterministic: no jitter is applied.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts including the first
	// (default: 3).
	MaxAttempts int

	// InitialBackoff is the delay before the second attempt (default: 1s).
	InitialBackoff time.Duration

	// MaxBackoff caps the delay between attempts (default: 3s).
	MaxBackoff time.Duration

	// BackoffFactor is the exponential multiplier (default: 2.0).
	BackoffFactor float64
}

// DefaultRetryConfig returns the default retry policy.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 1 * time.Second,
		MaxBackoff:     3 * time.Second,
		BackoffFactor:  2.0,
	}
}

// Validate checks if the retry configuration is valid.
func (c *RetryConfig) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1, got %d", c.MaxAttempts)
	}
	if c.InitialBackoff < 0 {
		return fmt.Errorf("initial_backoff must be non-negative, got %v", c.InitialBackoff)
	}
	if c.MaxBackoff < c.InitialBackoff {
		return fmt.Errorf("max_backoff (%v) must be >= initial_backoff (%v)", c.MaxBackoff, c.InitialBackoff)
	}
	if c.BackoffFactor < 1.0 {
		return fmt.Errorf("backoff_factor must be >= 1.0, got %f", c.BackoffFactor)
	}
	return nil
}

// backoff returns the delay before attempt n (n >= 2):
// min(MaxBackoff, InitialBackoff * BackoffFactor^(n-2)).
func (c *RetryConfig) backoff(attempt int) time.Duration {
	delay := float64(c.InitialBackoff) * pow(c.BackoffFactor, attempt-2)
	if delay > float64(c.MaxBackoff) {
		delay = float64(c.MaxBackoff)
	}
	return time.Duration(delay)
}

// pow calculates base^exp for integer exponents.
func pow(base float64, exp int) float64 {
	result := 1.0
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}
