package agents

import (
	"context"
	"time"

	"minerva/internal/adapters/ai"
)

// RetryPolicy retries a blocking operation on retryable failures with
// exponential backoff between attempts. The delay doubles from MinBackoff up
// to MaxBackoff. When every attempt fails, the error from the final attempt
// is returned unchanged.
type RetryPolicy struct {
	MaxAttempts int
	MinBackoff  time.Duration
	MaxBackoff  time.Duration
	Multiplier  float64

	// Retryable reports whether an error is worth another attempt. Defaults
	// to ai.IsTransient (model connectivity failures only).
	Retryable func(error) bool

	// OnRetry is invoked before each re-attempt with the attempt number just
	// failed (1-based) and its error. Used for progress reporting and
	// metrics.
	OnRetry func(attempt int, err error)
}

// DefaultRetryPolicy matches the model-call contract: 3 attempts total,
// exponential backoff starting at 4s capped at 10s, transient connectivity
// failures only.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		MinBackoff:  4 * time.Second,
		MaxBackoff:  10 * time.Second,
		Multiplier:  2,
	}
}

// Do runs fn until it succeeds, exhausts the attempt budget, the error is
// not retryable, or the context is cancelled.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	retryable := p.Retryable
	if retryable == nil {
		retryable = ai.IsTransient
	}

	multiplier := p.Multiplier
	if multiplier <= 1 {
		multiplier = 2
	}

	backoff := p.MinBackoff
	var err error

	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}

		if !retryable(err) || attempt == attempts {
			return err
		}

		if p.OnRetry != nil {
			p.OnRetry(attempt, err)
		}

		if backoff > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		backoff = time.Duration(float64(backoff) * multiplier)
		if p.MaxBackoff > 0 && backoff > p.MaxBackoff {
			backoff = p.MaxBackoff
		}
	}

	return err
}
