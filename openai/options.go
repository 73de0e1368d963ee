package openai

import (
	"context"
	"log/slog"
	"reflect"
	"time"

	ai "github.com/bitop-dev/go-ai"
	"github.com/bitop-dev/go-ai/internal/retry"
	"golang.org/x/time/rate"
)

// RetryConfig tunes the backoff applied to retryable provider errors. Zero
// fields take the defaults: 10 attempts, 2s initial backoff, multiplier 5,
// 3 minute cap.
type RetryConfig struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	Multiplier     float64
	MaxBackoff     time.Duration
}

type Option func(*options)

type options struct {
	logger     *slog.Logger
	retry      RetryConfig
	limiter    *rate.Limiter
	includeRaw bool
	embedding  EmbeddingOptions

	sleep func(ctx context.Context, d time.Duration) error
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithRetry(rc RetryConfig) Option {
	return func(o *options) { o.retry = rc }
}

// WithRateLimiter makes every attempt wait for l before reaching the provider.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(o *options) { o.limiter = l }
}

// WithEmbeddingOptions sets the options sent with every embeddings request.
// Options passed in a request's ProviderOptions override the non-zero fields.
func WithEmbeddingOptions(eo EmbeddingOptions) Option {
	return func(o *options) { o.embedding = eo }
}

// WithRawResponse attaches the go-openai response to each ChatResponse.
func WithRawResponse() Option {
	return func(o *options) { o.includeRaw = true }
}

func newOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func (o options) policy() retry.Policy {
	p := retry.Default(ai.IsRetryable)
	if o.retry.MaxAttempts != 0 {
		p.MaxAttempts = o.retry.MaxAttempts
	}
	if o.retry.InitialBackoff != 0 {
		p.InitialDelay = o.retry.InitialBackoff
	}
	if o.retry.Multiplier != 0 {
		p.Multiplier = o.retry.Multiplier
	}
	if o.retry.MaxBackoff != 0 {
		p.MaxDelay = o.retry.MaxBackoff
	}
	p.Sleep = o.sleep

	logger := o.logger
	p.OnRetry = func(attempt int, delay time.Duration, err error) {
		logger.Warn("retrying provider call",
			"provider", ProviderName,
			"attempt", attempt,
			"delay", delay,
			"error", err)
	}
	return p
}

func waitLimiter(ctx context.Context, l *rate.Limiter) error {
	if l == nil {
		return nil
	}
	return l.Wait(ctx)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
