package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithRetry(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	t.Run("SucceedsAfterFailures", func(t *testing.T) {
		calls := 0
		err := withRetry(context.Background(), cfg, "test", func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("ReturnsLastError", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")
		err := withRetry(context.Background(), cfg, "test", func(ctx context.Context) error {
			calls++
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 3, calls)
	})

	t.Run("StopsOnCancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		calls := 0
		slow := RetryConfig{MaxAttempts: 5, BaseDelay: time.Hour, MaxDelay: time.Hour}
		err := withRetry(ctx, slow, "test", func(ctx context.Context) error {
			calls++
			return errors.New("transient")
		})
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestSleepBackoff_Capped(t *testing.T) {
	start := time.Now()
	assert.NoError(t, sleepBackoff(context.Background(), 10, time.Millisecond, 5*time.Millisecond))
	assert.Less(t, time.Since(start), time.Second)
}
