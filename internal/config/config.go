// Package config loads client configuration from a YAML file, an optional
// .env file and environment variables, in that order of precedence (later
// sources win).
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	ai "github.com/bitop-dev/go-ai"
	"github.com/bitop-dev/go-ai/openai"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	envAPIKey         = "OPENAI_API_KEY"
	envBaseURL        = "OPENAI_BASE_URL"
	envAPIPrefix      = "OPENAI_API_PREFIX"
	envOrganization   = "OPENAI_ORGANIZATION"
	envEmbeddingModel = "OPENAI_EMBEDDING_MODEL"
	envChatModel      = "OPENAI_CHAT_MODEL"
	envMetadataMode   = "AI_METADATA_MODE"
	envMaxAttempts    = "AI_RETRY_MAX_ATTEMPTS"
	envLogLevel       = "AI_LOG_LEVEL"
	envLogFormat      = "AI_LOG_FORMAT"
)

type Config struct {
	OpenAI    OpenAI    `yaml:"openai"`
	Embedding Embedding `yaml:"embedding"`
	Chat      Chat      `yaml:"chat"`
	Retry     Retry     `yaml:"retry"`
	RateLimit RateLimit `yaml:"rate_limit"`
	Log       Log       `yaml:"log"`
}

type OpenAI struct {
	APIKey       string `yaml:"api_key"`
	BaseURL      string `yaml:"base_url"`
	APIPrefix    string `yaml:"api_prefix"`
	Organization string `yaml:"organization"`
}

type Embedding struct {
	Model        string `yaml:"model"`
	MetadataMode string `yaml:"metadata_mode"`
	Dimensions   int    `yaml:"dimensions"`
}

type Chat struct {
	Model string `yaml:"model"`
}

type Retry struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	Multiplier     float64       `yaml:"multiplier"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

type RateLimit struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

func Default() Config {
	return Config{
		Embedding: Embedding{
			Model:        openai.DefaultEmbeddingModel,
			MetadataMode: string(ai.MetadataModeEmbed),
		},
		Chat: Chat{Model: openai.DefaultChatModel},
		Log:  Log{Level: "info", Format: "text"},
	}
}

// Load reads path (optional), then .env, then the process environment, and
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.OpenAI.APIKey, envAPIKey)
	setString(&c.OpenAI.BaseURL, envBaseURL)
	setString(&c.OpenAI.APIPrefix, envAPIPrefix)
	setString(&c.OpenAI.Organization, envOrganization)
	setString(&c.Embedding.Model, envEmbeddingModel)
	setString(&c.Chat.Model, envChatModel)
	setString(&c.Embedding.MetadataMode, envMetadataMode)
	setString(&c.Log.Level, envLogLevel)
	setString(&c.Log.Format, envLogFormat)

	if v := os.Getenv(envMaxAttempts); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envMaxAttempts, err)
		}
		c.Retry.MaxAttempts = n
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate rejects configurations an adapter could not be built from.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Embedding.Model) == "" {
		errs = append(errs, errors.New("embedding.model is required"))
	}
	if strings.TrimSpace(c.Chat.Model) == "" {
		errs = append(errs, errors.New("chat.model is required"))
	}
	if _, err := ai.ParseMetadataMode(c.Embedding.MetadataMode); err != nil {
		errs = append(errs, fmt.Errorf("embedding.metadata_mode: %w", err))
	}
	if c.Retry.MaxAttempts < 0 {
		errs = append(errs, errors.New("retry.max_attempts must not be negative"))
	}
	if c.Retry.Multiplier != 0 && c.Retry.Multiplier < 1 {
		errs = append(errs, errors.New("retry.multiplier must be at least 1"))
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("rate_limit.requests_per_second must not be negative"))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not supported", c.Log.Format))
	}
	return errors.Join(errs...)
}

func (c Config) MetadataMode() ai.MetadataMode {
	m, _ := ai.ParseMetadataMode(c.Embedding.MetadataMode)
	return m
}

// OpenAIConfig builds the provider client configuration.
func (c Config) OpenAIConfig(logger *slog.Logger) openai.Config {
	return openai.Config{
		APIKey:            c.OpenAI.APIKey,
		BaseURL:           c.OpenAI.BaseURL,
		APIPrefix:         c.OpenAI.APIPrefix,
		Organization:      c.OpenAI.Organization,
		MaxAttempts:       c.Retry.MaxAttempts,
		InitialBackoff:    c.Retry.InitialBackoff,
		BackoffMultiplier: c.Retry.Multiplier,
		MaxBackoff:        c.Retry.MaxBackoff,
		RequestsPerSecond: c.RateLimit.RequestsPerSecond,
		Burst:             c.RateLimit.Burst,
		Logger:            logger,
	}
}

func (c Config) Logger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log.level %q is not supported", s)
}
