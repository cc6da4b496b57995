package service

import (
	"context"
	"log/slog"
	"time"
)

// RetryConfig controls retry behavior for projection and event publishing.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   200 * time.Millisecond,
		MaxDelay:    2 * time.Second,
	}
}

func withRetry(ctx context.Context, cfg RetryConfig, op string, fn func(ctx context.Context) error) error {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	var err error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == cfg.MaxAttempts {
			break
		}
		slog.Warn("operation failed, retrying", "op", op, "attempt", attempt, "max_attempts", cfg.MaxAttempts, "error", err)
		if serr := sleepBackoff(ctx, attempt, cfg.BaseDelay, cfg.MaxDelay); serr != nil {
			return err
		}
	}
	return err
}

func sleepBackoff(ctx context.Context, attempt int, base, max time.Duration) error {
	sleep := base * time.Duration(1<<(attempt-1))
	if sleep > max {
		sleep = max
	}
	if sleep <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(sleep)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
