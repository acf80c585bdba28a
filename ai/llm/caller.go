package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/picko-ai/picko/ai"
	"github.com/picko-ai/picko/metrics"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/tmc/langchaingo/llms"
)

const breakerName = "llm"

// caller sends single-prompt requests through a circuit breaker and a bounded retry.
// It is shared by the extractor and the ranker so both see the same breaker state.
type caller struct {
	model       llms.Model
	modelName   string
	temperature float64
	maxAttempts int
	retryDelay  time.Duration
	breaker     *gobreaker.CircuitBreaker[string]
	logger      *slog.Logger
}

func newCaller(model llms.Model, config *ai.Config) *caller {
	c := &caller{
		model:       model,
		modelName:   config.Model,
		temperature: config.Temperature,
		maxAttempts: config.MaxAttempts,
		retryDelay:  config.RetryDelay,
		logger:      slog.Default().With("component", "llm-caller"),
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	c.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.BreakerFailures
		},
		// A caller abandoning the request says nothing about model health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state change", "breaker", name, "from", stateToString(from), "to", stateToString(to))
			metrics.RecordBreakerTransition(name, stateToString(from), stateToString(to), stateToFloat(to))
		},
	})

	return c
}

// generate sends prompt as one human message and returns the first choice's text.
// Returns an error wrapping ai.ErrUnavailable when the breaker rejects the call.
func (c *caller) generate(ctx context.Context, operation, prompt string) (string, error) {
	start := time.Now()
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	text, err := c.breaker.Execute(func() (string, error) {
		var text string
		err := retryWithBackoff(ctx, func() error {
			response, err := c.model.GenerateContent(ctx, content,
				llms.WithModel(c.modelName),
				llms.WithTemperature(c.temperature),
				llms.WithJSONMode(),
			)
			if err != nil {
				return err
			}
			if len(response.Choices) < 1 {
				return ai.ErrEmptyResponse
			}
			text = response.Choices[0].Content
			return nil
		}, c.maxAttempts, c.retryDelay, c.logger)
		return text, err
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordLLMCall(operation, "rejected", time.Since(start))
			return "", fmt.Errorf("%w: %w", ai.ErrUnavailable, err)
		}
		metrics.RecordLLMCall(operation, "failure", time.Since(start))
		c.logger.Error("model call failed", "operation", operation, "err", err)
		return "", err
	}

	metrics.RecordLLMCall(operation, "success", time.Since(start))
	return text, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
