package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		for _, key := range []string{"HTTP_ADDR", "KAFKA_BROKER", "STORE_TIMEOUT", "PROJECTION_ATTEMPTS", "WEBHOOK_ENDPOINT_SECRET"} {
			t.Setenv(key, "")
		}

		cfg := Load()
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
		assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
		assert.Equal(t, 3, cfg.ProjectionAttempts)
		assert.Equal(t, "purchases", cfg.PurchaseTopic)
		assert.Empty(t, cfg.WebhookSecret)
	})

	t.Run("FromEnv", func(t *testing.T) {
		t.Setenv("HTTP_ADDR", ":9000")
		t.Setenv("KAFKA_BROKER", "k1:9092, k2:9092,")
		t.Setenv("STORE_TIMEOUT", "250ms")
		t.Setenv("PROJECTION_ATTEMPTS", "7")
		t.Setenv("WEBHOOK_ENDPOINT_SECRET", "whsec_test")

		cfg := Load()
		assert.Equal(t, ":9000", cfg.HTTPAddr)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
		assert.Equal(t, 250*time.Millisecond, cfg.StoreTimeout)
		assert.Equal(t, 7, cfg.ProjectionAttempts)
		assert.Equal(t, "whsec_test", cfg.WebhookSecret)
	})

	t.Run("InvalidValuesFallBack", func(t *testing.T) {
		t.Setenv("STORE_TIMEOUT", "soon")
		t.Setenv("PROJECTION_ATTEMPTS", "-2")

		cfg := Load()
		assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
		assert.Equal(t, 3, cfg.ProjectionAttempts)
	})
}
