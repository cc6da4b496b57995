package observability

import (
	"context"
	"net/http"

	"github.com/honeynil/course-purchase-service/internal/config"
	"github.com/honeynil/course-purchase-service/internal/infrastructure/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(ctx context.Context, cfg *config.Config) (func(context.Context) error, http.Handler) {
	observability.InitLogger(cfg.LogLevel)
	observability.InitMetrics(prometheus.DefaultRegisterer)
	tracerShutdown := observability.InitTracing(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	return tracerShutdown, promhttp.Handler()
}
