// Package config loads application settings for the picko binaries.
//
// Settings are layered: built-in defaults, then an optional YAML file, then
// PICKO_* environment variables. Nested keys map to env names by joining the
// section and the field with an underscore, e.g. ai.api_key is PICKO_AI_API_KEY.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/picko-ai/picko/ai"
	"github.com/picko-ai/picko/recommend"
)

// Storage backends.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

// ErrInvalidConfig is returned when loaded settings are unusable.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete application configuration.
type Config struct {
	Storage   StorageConfig   `koanf:"storage"`
	AI        AIConfig        `koanf:"ai"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// StorageConfig selects and locates the tool store.
type StorageConfig struct {
	// Backend is "badger" or "sqlite".
	Backend string `koanf:"backend"`
	// Path is the badger directory or the sqlite file.
	Path string `koanf:"path"`
	// InMemory keeps everything in memory; Path is ignored.
	InMemory bool `koanf:"in_memory"`
}

// AIConfig mirrors ai.Config. With Enabled false no model is consulted.
type AIConfig struct {
	Enabled         bool          `koanf:"enabled"`
	Provider        string        `koanf:"provider"`
	Host            string        `koanf:"host"`
	Model           string        `koanf:"model"`
	APIKey          string        `koanf:"api_key"`
	Temperature     float64       `koanf:"temperature"`
	MaxAttempts     int           `koanf:"max_attempts"`
	RetryDelay      time.Duration `koanf:"retry_delay"`
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// RecommendConfig mirrors the limits of recommend.Config.
type RecommendConfig struct {
	KeywordLimit    int `koanf:"keyword_limit"`
	PerKeywordLimit int `koanf:"per_keyword_limit"`
	BroadenLimit    int `koanf:"broaden_limit"`
	RerankLimit     int `koanf:"rerank_limit"`
	ResultLimit     int `koanf:"result_limit"`
	PoolSize        int `koanf:"pool_size"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr              string        `koanf:"addr"`
	RequestTimeout    time.Duration `koanf:"request_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `koanf:"level"`
}

// Default returns the built-in settings.
func Default() *Config {
	aiDefaults := ai.DefaultConfig()
	limits := recommend.DefaultConfig()

	return &Config{
		Storage: StorageConfig{
			Backend: BackendBadger,
			Path:    "./data/picko",
		},
		AI: AIConfig{
			Enabled:         true,
			Provider:        aiDefaults.Provider,
			Host:            aiDefaults.Host,
			Model:           aiDefaults.Model,
			APIKey:          aiDefaults.APIKey,
			Temperature:     aiDefaults.Temperature,
			MaxAttempts:     aiDefaults.MaxAttempts,
			RetryDelay:      aiDefaults.RetryDelay,
			BreakerFailures: aiDefaults.BreakerFailures,
			BreakerTimeout:  aiDefaults.BreakerTimeout,
		},
		Recommend: RecommendConfig{
			KeywordLimit:    limits.KeywordLimit,
			PerKeywordLimit: limits.PerKeywordLimit,
			BroadenLimit:    limits.BroadenLimit,
			RerankLimit:     limits.RerankLimit,
			ResultLimit:     limits.ResultLimit,
			PoolSize:        limits.PoolSize,
		},
		Server: ServerConfig{
			Addr:              ":8080",
			RequestTimeout:    60 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			CORSOrigins:       []string{},
			RateLimitRequests: 60,
			RateLimitWindow:   time.Minute,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	switch c.Storage.Backend {
	case BackendBadger, BackendSQLite:
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, c.Storage.Backend)
	}
	if !c.Storage.InMemory && c.Storage.Path == "" {
		return fmt.Errorf("%w: storage path is required", ErrInvalidConfig)
	}

	if c.AI.Enabled {
		if err := c.AI.Config().Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	if err := c.Recommend.Config().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server addr is required", ErrInvalidConfig)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("%w: server request_timeout must be positive", ErrInvalidConfig)
	}
	if c.Server.RateLimitRequests < 0 {
		return fmt.Errorf("%w: server rate_limit_requests cannot be negative", ErrInvalidConfig)
	}
	if c.Server.RateLimitRequests > 0 && c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("%w: server rate_limit_window must be positive", ErrInvalidConfig)
	}

	if _, err := c.Logging.SlogLevel(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Config converts the section into an ai.Config.
func (a AIConfig) Config() *ai.Config {
	return ai.NewConfig(
		ai.WithProvider(a.Provider),
		ai.WithHost(a.Host),
		ai.WithModel(a.Model),
		ai.WithAPIKey(a.APIKey),
		ai.WithTemperature(a.Temperature),
		ai.WithRetry(a.MaxAttempts, a.RetryDelay),
		ai.WithBreaker(a.BreakerFailures, a.BreakerTimeout),
	)
}

// Config converts the section into a recommend.Config with the default search fields.
func (r RecommendConfig) Config() recommend.Config {
	cfg := recommend.DefaultConfig()
	cfg.KeywordLimit = r.KeywordLimit
	cfg.PerKeywordLimit = r.PerKeywordLimit
	cfg.BroadenLimit = r.BroadenLimit
	cfg.RerankLimit = r.RerankLimit
	cfg.ResultLimit = r.ResultLimit
	cfg.PoolSize = r.PoolSize
	return cfg
}

// SlogLevel parses Level.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", l.Level)
	}
	return level, nil
}
