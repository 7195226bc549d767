package resilience

import (
	"context"
	"time"

	perr "sahayak/internal/platform/errors"
)

// sleep is a seam so tests can observe backoff without waiting
var sleep = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RetryPolicy bounds a retry loop
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultRetry is the policy applied to remote capability calls unless a
// module overrides it from config
var DefaultRetry = RetryPolicy{MaxAttempts: 3, BaseDelay: 200 * time.Millisecond}

// Retry invokes op up to p.MaxAttempts times total, waiting BaseDelay * 2^i
// between attempt i and i+1. Only errors perr.Retryable classifies as
// transient are retried; validation errors surface immediately. When every
// attempt fails the last error is returned wrapped as Exhausted so callers
// can pick a fallback
func Retry(ctx context.Context, p RetryPolicy, op func(ctx context.Context) error) error {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = 100 * time.Millisecond
	}

	var last error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, p.BaseDelay<<(attempt-1)); err != nil {
				return perr.Wrap(err, perr.ErrorCodeTimeout, "retry wait cancelled")
			}
		}
		last = op(ctx)
		if last == nil {
			return nil
		}
		if !perr.Retryable(last) {
			return last
		}
	}
	return perr.Wrapf(last, perr.ErrorCodeExhausted, "retries exhausted after %d attempts", p.MaxAttempts)
}
