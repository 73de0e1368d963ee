package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient")

func isTransient(err error) bool { return errors.Is(err, errTransient) }

type recorder struct {
	delays []time.Duration
}

func (r *recorder) sleep(ctx context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return ctx.Err()
}

func TestDelay_DefaultSchedule(t *testing.T) {
	p := Default(isTransient)

	want := []time.Duration{
		2 * time.Second,
		10 * time.Second,
		50 * time.Second,
		3 * time.Minute, // 250s capped
		3 * time.Minute,
	}
	for i, w := range want {
		assert.Equal(t, w, p.Delay(i+1), "delay after attempt %d", i+1)
	}
	assert.Equal(t, time.Duration(0), p.Delay(0))
}

func TestDelay_LargeAttemptStaysCapped(t *testing.T) {
	p := Default(isTransient)
	assert.Equal(t, DefaultMaxDelay, p.Delay(500))
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	rec := &recorder{}
	p := Default(isTransient)
	p.Sleep = rec.sleep

	calls := 0
	out, err := Do(context.Background(), p, func(ctx context.Context) (string, error) {
		calls++
		if calls <= 3 {
			return "", errTransient
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 4, calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 10 * time.Second, 50 * time.Second}, rec.delays)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	rec := &recorder{}
	p := Default(isTransient)
	p.Sleep = rec.sleep

	calls := 0
	var last error
	_, err := Do(context.Background(), p, func(ctx context.Context) (int, error) {
		calls++
		last = errors.Join(errTransient, errors.New("attempt"))
		return 0, last
	})
	require.Error(t, err)
	assert.Same(t, last, err)
	assert.Equal(t, DefaultMaxAttempts, calls)
	assert.Len(t, rec.delays, DefaultMaxAttempts-1)
}

func TestDo_NonRetryableFailsImmediately(t *testing.T) {
	rec := &recorder{}
	p := Default(isTransient)
	p.Sleep = rec.sleep

	permanent := errors.New("bad request")
	calls := 0
	_, err := Do(context.Background(), p, func(ctx context.Context) (int, error) {
		calls++
		return 0, permanent
	})
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
	assert.Empty(t, rec.delays)
}

func TestDo_ZeroPolicyMakesOneAttempt(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), Policy{}, func(ctx context.Context) (int, error) {
		calls++
		return 0, errTransient
	})
	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 1, calls)
}

func TestDo_OnRetryReportsAttempts(t *testing.T) {
	p := Default(isTransient)
	p.MaxAttempts = 3
	p.Sleep = (&recorder{}).sleep

	var attempts []int
	p.OnRetry = func(attempt int, delay time.Duration, err error) {
		attempts = append(attempts, attempt)
		assert.Equal(t, p.Delay(attempt), delay)
		assert.ErrorIs(t, err, errTransient)
	}

	_, _ = Do(context.Background(), p, func(ctx context.Context) (int, error) {
		return 0, errTransient
	})
	assert.Equal(t, []int{1, 2}, attempts)
}

func TestDo_ContextCanceledDuringBackoff(t *testing.T) {
	p := Default(isTransient)
	p.InitialDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	done := make(chan error, 1)
	go func() {
		_, err := Do(ctx, p, func(ctx context.Context) (int, error) {
			calls++
			return 0, errTransient
		})
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	case <-time.After(5 * time.Second):
		t.Fatal("Do did not return after cancel")
	}
}
