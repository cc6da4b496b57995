package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestWithContext_AddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	WithContext(ctx, "event_id", "evt_1").Info("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "evt_1", entry["event_id"])
	assert.Equal(t, span.SpanContext().TraceID().String(), entry["trace_id"])
}

func TestInitMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	InitMetrics(reg)

	WebhookEvents.WithLabelValues("replay").Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(WebhookEvents.WithLabelValues("replay")))
}

func TestInitTracing_NoEndpoint(t *testing.T) {
	shutdown := InitTracing(context.Background(), "test", "")
	assert.NoError(t, shutdown(context.Background()))
}
