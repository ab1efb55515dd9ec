package retry

import (
	"context"
	"time"

	"tokomart-be/internal/logger"

	"go.uber.org/zap"
)

// Defaults match the platform-wide retry budget: 2 retries on top of the
// first attempt, exponential backoff starting at 100ms, capped at 1s.
const (
	DefaultRetries    = 2
	DefaultMinTimeout = 100 * time.Millisecond
	DefaultFactor     = 2
	DefaultMaxTimeout = 1 * time.Second
)

// Do re-invokes fn until it succeeds or the retry budget is exhausted,
// returning the last error. It is meant for I/O calls only; validation
// failures must be surfaced before entering Do so they are never retried.
func Do[T any](ctx context.Context, name string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	delay := DefaultMinTimeout
	attempts := DefaultRetries + 1

	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		retriesLeft := attempts - attempt
		logger.FromCtx(ctx).Warn("retryable operation failed",
			zap.String("operation", name),
			zap.Int("attempt", attempt),
			zap.Int("retries_left", retriesLeft),
			zap.Error(err),
		)

		if retriesLeft == 0 {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}

		delay *= DefaultFactor
		if delay > DefaultMaxTimeout {
			delay = DefaultMaxTimeout
		}
	}

	return zero, lastErr
}
