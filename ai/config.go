// Copyright 2025 The Picko Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ai

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Supported generative backends.
const (
	ProviderOpenAI = "openai"
	ProviderGoogle = "googleai"
)

// Config holds configuration for the generative model used by the pipeline.
type Config struct {
	// Provider selects the backend: "openai" for any OpenAI-compatible server,
	// "googleai" for Gemini.
	Provider string

	// Host is the base URL of an OpenAI-compatible API. Ignored for googleai.
	// Example: "http://localhost:11434/v1"
	Host string

	// Model is the model identifier.
	// Example: "gemini-2.0-flash", "qwen2.5:3b"
	Model string

	// APIKey authenticates against the backend. Local servers accept any value.
	APIKey string

	// Temperature is the sampling temperature for every request.
	// Default: 0.3
	Temperature float64

	// MaxAttempts is the number of tries per logical call before the stage falls back.
	// Default: 2
	MaxAttempts int

	// RetryDelay is the base delay of the exponential backoff between attempts.
	// Default: 500ms
	RetryDelay time.Duration

	// BreakerFailures is the number of consecutive failed calls that opens the circuit.
	// Default: 5
	BreakerFailures uint32

	// BreakerTimeout is how long the circuit stays open before probing again.
	// Default: 30s
	BreakerTimeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithProvider sets the backend.
func WithProvider(provider string) ConfigOption {
	return func(c *Config) {
		c.Provider = provider
	}
}

// WithHost sets the OpenAI-compatible host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(temperature float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = temperature
	}
}

// WithRetry sets the attempt count and base backoff delay.
func WithRetry(maxAttempts int, delay time.Duration) ConfigOption {
	return func(c *Config) {
		c.MaxAttempts = maxAttempts
		c.RetryDelay = delay
	}
}

// WithBreaker sets the circuit breaker trip threshold and open timeout.
func WithBreaker(failures uint32, timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.BreakerFailures = failures
		c.BreakerTimeout = timeout
	}
}

// DefaultConfig returns a Config for a local OpenAI-compatible server.
func DefaultConfig() *Config {
	return &Config{
		Provider:        ProviderOpenAI,
		Host:            "http://localhost:11434/v1",
		Model:           "qwen2.5:3b",
		APIKey:          "none",
		Temperature:     0.3,
		MaxAttempts:     2,
		RetryDelay:      500 * time.Millisecond,
		BreakerFailures: 5,
		BreakerTimeout:  30 * time.Second,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithProvider(ProviderGoogle),
//	    WithModel("gemini-2.0-flash"),
//	    WithAPIKey(os.Getenv("GEMINI_API_KEY")),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// OpenAI-compatible hosts get a /v1 suffix, which Ollama, LocalAI and vLLM require.
func (c *Config) Normalize() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == ProviderOpenAI && c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/") + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration first.
func (c *Config) Validate() error {
	c.Normalize()

	switch c.Provider {
	case ProviderOpenAI:
		if c.Host == "" {
			return errors.New("ai config: Host is required for the openai provider")
		}
	case ProviderGoogle:
		if c.APIKey == "" {
			return errors.New("ai config: APIKey is required for the googleai provider")
		}
	default:
		return fmt.Errorf("ai config: unknown provider %q", c.Provider)
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	if c.MaxAttempts < 1 {
		return errors.New("ai config: MaxAttempts must be at least 1")
	}
	if c.RetryDelay < 0 {
		return errors.New("ai config: RetryDelay cannot be negative")
	}
	if c.BreakerFailures < 1 {
		return errors.New("ai config: BreakerFailures must be at least 1")
	}
	return nil
}
