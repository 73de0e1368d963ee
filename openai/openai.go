package openai

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	ai "github.com/bitop-dev/go-ai"
	"github.com/bitop-dev/go-ai/internal/retry"
	goopenai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

const ProviderName = "openai"

type Config struct {
	APIKey       string
	BaseURL      string
	APIPrefix    string
	Organization string
	HTTPClient   *http.Client

	MaxAttempts       int
	InitialBackoff    time.Duration
	BackoffMultiplier float64
	MaxBackoff        time.Duration

	// RequestsPerSecond enables a client-side limiter shared by every adapter
	// created from the client. Zero disables it.
	RequestsPerSecond float64
	Burst             int

	Logger *slog.Logger
}

// Client owns one go-openai client and hands out adapters bound to it.
type Client struct {
	cfg     Config
	api     *goopenai.Client
	limiter *rate.Limiter
}

func NewClient(cfg Config) *Client {
	cfg = normalizeConfig(cfg)

	apiCfg := goopenai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/") + strings.TrimRight(cfg.APIPrefix, "/")
	apiCfg.OrgID = cfg.Organization
	apiCfg.HTTPClient = cfg.HTTPClient

	c := &Client{cfg: cfg, api: goopenai.NewClientWithConfig(apiCfg)}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
	}
	return c
}

func (c *Client) Config() Config { return c.cfg }

// API exposes the underlying go-openai client.
func (c *Client) API() *goopenai.Client { return c.api }

// EmbeddingClient returns an embedding adapter using the client's retry,
// limiter and logger settings. Later opts override them.
func (c *Client) EmbeddingClient(model string, mode ai.MetadataMode, opts ...Option) (*EmbeddingClient, error) {
	return NewEmbeddingClient(c.api, model, mode, append(c.baseOptions(), opts...)...)
}

func (c *Client) ChatClient(model string, opts ...Option) (*ChatClient, error) {
	return NewChatClient(c.api, model, append(c.baseOptions(), opts...)...)
}

func (c *Client) baseOptions() []Option {
	opts := []Option{
		WithRetry(RetryConfig{
			MaxAttempts:    c.cfg.MaxAttempts,
			InitialBackoff: c.cfg.InitialBackoff,
			Multiplier:     c.cfg.BackoffMultiplier,
			MaxBackoff:     c.cfg.MaxBackoff,
		}),
		WithLogger(c.cfg.Logger),
	}
	if c.limiter != nil {
		opts = append(opts, WithRateLimiter(c.limiter))
	}
	return opts
}

func normalizeConfig(cfg Config) Config {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com"
	}
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/v1"
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = retry.DefaultMaxAttempts
	}
	if cfg.InitialBackoff == 0 {
		cfg.InitialBackoff = retry.DefaultInitialDelay
	}
	if cfg.BackoffMultiplier == 0 {
		cfg.BackoffMultiplier = retry.DefaultMultiplier
	}
	if cfg.MaxBackoff == 0 {
		cfg.MaxBackoff = retry.DefaultMaxDelay
	}
	if cfg.RequestsPerSecond > 0 && cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}
