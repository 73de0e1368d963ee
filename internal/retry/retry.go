// Package retry runs an operation under a bounded exponential backoff policy.
package retry

import (
	"context"
	"math"
	"time"
)

const (
	DefaultMaxAttempts  = 10
	DefaultInitialDelay = 2 * time.Second
	DefaultMultiplier   = 5
	DefaultMaxDelay     = 3 * time.Minute
)

// Policy describes when and how long to wait before trying again. The zero
// value makes a single attempt.
type Policy struct {
	// MaxAttempts counts the first call; values below 1 mean one attempt.
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration

	// Retryable classifies errors. A nil Retryable never retries.
	Retryable func(error) bool

	// Sleep waits between attempts. Nil uses a timer that stops early when
	// ctx is done.
	Sleep func(ctx context.Context, d time.Duration) error

	// OnRetry is called before each backoff with the failed attempt number
	// (starting at 1), the delay about to be applied and the error.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// Default returns the provider call policy: 10 attempts, 2s initial delay,
// multiplier 5, capped at 3 minutes.
func Default(retryable func(error) bool) Policy {
	return Policy{
		MaxAttempts:  DefaultMaxAttempts,
		InitialDelay: DefaultInitialDelay,
		Multiplier:   DefaultMultiplier,
		MaxDelay:     DefaultMaxDelay,
		Retryable:    retryable,
	}
}

// Delay returns the wait applied after the n-th failed attempt (n >= 1).
func (p Policy) Delay(n int) time.Duration {
	if n < 1 || p.InitialDelay <= 0 {
		return 0
	}
	mult := p.Multiplier
	if mult < 1 {
		mult = 1
	}
	d := float64(p.InitialDelay) * math.Pow(mult, float64(n-1))
	if p.MaxDelay > 0 && d > float64(p.MaxDelay) {
		return p.MaxDelay
	}
	if d > math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(d)
}

func (p Policy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// Do calls fn until it succeeds, returns an error the policy does not retry,
// or the attempts run out. The last error from fn is returned unchanged. If
// ctx ends while waiting, ctx.Err() is returned.
func Do[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	limit := p.attempts()
	for attempt := 1; ; attempt++ {
		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}
		if attempt >= limit || p.Retryable == nil || !p.Retryable(err) {
			return zero, err
		}

		delay := p.Delay(attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt, delay, err)
		}
		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
