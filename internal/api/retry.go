package api

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Retrier re-runs a failed operation with exponential backoff. It never
// renders anything itself; user-visible error presentation belongs to the
// caller.
type Retrier struct {
	// MaxRetries is the number of re-attempts after the initial try.
	MaxRetries int
	// BaseDelay is the unit of the 2^attempt backoff curve.
	BaseDelay time.Duration
	// Sleep is swappable for tests; nil means a context-aware time.Sleep.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetrier matches the documented policy: three retries, delays of
// 1s, 2s, 4s.
func DefaultRetrier() Retrier {
	return Retrier{MaxRetries: 3, BaseDelay: time.Second}
}

// Do runs op, retrying failures up to MaxRetries times. On success the error
// is nil regardless of earlier failures. After exhausting retries it returns
// a single aggregated error covering every attempt.
func (r Retrier) Do(ctx context.Context, op func(ctx context.Context) error) error {
	maxRetries := r.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	base := r.BaseDelay
	if base <= 0 {
		base = time.Second
	}
	sleep := r.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var failures []error
	attempts := 0
	for attempt := 0; attempt <= maxRetries; attempt++ {
		attempts++
		err := op(ctx)
		if err == nil {
			return nil
		}
		failures = append(failures, fmt.Errorf("attempt %d: %w", attempt+1, err))
		if attempt == maxRetries {
			break
		}
		if err := sleep(ctx, base<<attempt); err != nil {
			failures = append(failures, err)
			break
		}
	}
	return fmt.Errorf("request failed after %d attempts: %w", attempts, errors.Join(failures...))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
