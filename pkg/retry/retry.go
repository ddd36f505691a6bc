// Package retry runs an operation again after transient failures, with
// exponential backoff and jitter between attempts.
package retry

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

const defaultBaseDelay = 100 * time.Millisecond

type Backoff func(attempt int) time.Duration

type RetryConfig struct {
	// MaxAttempts of 0 means a single attempt.
	MaxAttempts int
	Backoff     Backoff

	// ShouldRetry filters retryable errors; nil retries everything.
	ShouldRetry func(error) bool
}

func (c *RetryConfig) normalize() {
	if c.MaxAttempts < 1 {
		c.MaxAttempts = 1
	}
	if c.Backoff == nil {
		c.Backoff = ExponentialBackoff(defaultBaseDelay)
	}
	if c.ShouldRetry == nil {
		c.ShouldRetry = func(error) bool { return true }
	}
}

// ExponentialBackoff doubles the delay each attempt and adds up to half the
// current delay as jitter.
func ExponentialBackoff(base time.Duration) Backoff {
	return func(attempt int) time.Duration {
		d := base << (attempt - 1)
		return d + rand.N(d/2+1)
	}
}

func ConstantBackoff(delay time.Duration) Backoff {
	return func(int) time.Duration { return delay }
}

// Do runs fn until it succeeds, the attempts are exhausted, the error is not
// retryable or ctx is cancelled. The last error is returned.
func Do(ctx context.Context, c RetryConfig, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.normalize()

	var err error
	for attempt := 1; attempt <= c.MaxAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if !c.ShouldRetry(err) || attempt == c.MaxAttempts {
			return err
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ctx.Err(), err)
		case <-time.After(c.Backoff(attempt)):
		}
	}
	return err
}
