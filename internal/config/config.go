package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName        string
	HTTPAddr           string
	PostgresDSN        string
	RedisAddr          string
	KafkaBrokers       []string
	PurchaseTopic      string
	KafkaGroupID       string
	JWTSecret          string
	WebhookSecret      string
	WebhookTolerance   time.Duration
	StoreTimeout       time.Duration
	ProjectionAttempts int
	SweepInterval      time.Duration
	SweepBatchSize     int
	CourseCacheTTL     time.Duration
	OTLPEndpoint       string
	LogLevel           string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn("failed to load .env file, using default values", "error", err)
	}

	cfg := &Config{
		ServiceName:        envString("SERVICE_NAME", "course-purchase-service"),
		HTTPAddr:           envString("HTTP_ADDR", ":8080"),
		PostgresDSN:        envString("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=lms sslmode=disable"),
		RedisAddr:          envString("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:       envList("KAFKA_BROKER", []string{"localhost:9092"}),
		PurchaseTopic:      envString("KAFKA_PURCHASE_TOPIC", "purchases"),
		KafkaGroupID:       envString("KAFKA_GROUP_ID", "course-purchase-projector"),
		JWTSecret:          envString("JWT_SECRET", "supersecret"),
		WebhookSecret:      os.Getenv("WEBHOOK_ENDPOINT_SECRET"),
		WebhookTolerance:   envDuration("WEBHOOK_TOLERANCE", 5*time.Minute),
		StoreTimeout:       envDuration("STORE_TIMEOUT", 5*time.Second),
		ProjectionAttempts: envInt("PROJECTION_ATTEMPTS", 3),
		SweepInterval:      envDuration("SWEEP_INTERVAL", time.Minute),
		SweepBatchSize:     envInt("SWEEP_BATCH_SIZE", 100),
		CourseCacheTTL:     envDuration("COURSE_CACHE_TTL", 10*time.Minute),
		OTLPEndpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		LogLevel:           envString("LOG_LEVEL", "info"),
	}

	if cfg.WebhookSecret == "" {
		slog.Warn("WEBHOOK_ENDPOINT_SECRET is empty, gateway events will be rejected")
	}

	slog.Info("config loaded",
		"http_addr", cfg.HTTPAddr,
		"redis_addr", cfg.RedisAddr,
		"kafka_brokers", cfg.KafkaBrokers,
		"purchase_topic", cfg.PurchaseTopic,
		"store_timeout", cfg.StoreTimeout,
		"projection_attempts", cfg.ProjectionAttempts,
		"sweep_interval", cfg.SweepInterval)
	return cfg
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envList(key string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		slog.Warn("invalid integer in env, using default", "key", key, "value", raw, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration in env, using default", "key", key, "value", raw, "default", def)
		return def
	}
	return d
}
