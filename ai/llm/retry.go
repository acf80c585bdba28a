package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

var errInvalidMaxAttempts = errors.New("maxAttempts must be positive")

// retryWithBackoff retries operation with exponential backoff.
// It stops early when ctx is done, and never sleeps after the last attempt.
func retryWithBackoff(ctx context.Context, operation func() error, maxAttempts int, baseDelay time.Duration, logger *slog.Logger) error {
	if maxAttempts <= 0 {
		return errInvalidMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = operation()
		if lastErr == nil {
			if attempt > 1 {
				logger.Debug("model call succeeded after retry", "attempt", attempt)
			}
			return nil
		}

		// The caller gave up; another attempt cannot succeed
		if errors.Is(lastErr, context.Canceled) || errors.Is(lastErr, context.DeadlineExceeded) {
			return lastErr
		}

		logger.Debug("model call failed", "attempt", attempt, "maxAttempts", maxAttempts, "err", lastErr)

		if attempt == maxAttempts {
			break
		}

		// baseDelay * 2^(attempt-1)
		delay := baseDelay << (attempt - 1)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return lastErr
}
