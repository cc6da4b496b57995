package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Счётчик вызовов методов репозитория
	RepositoryCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repository_calls_total",
			Help: "Total number of repository method calls",
		},
		[]string{"method", "status"},
	)

	// Гистограмма времени выполнения запросов
	RepositoryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "repository_duration_seconds",
			Help:    "Duration of repository method calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	WebhookEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Gateway events by reconciliation outcome",
		},
		[]string{"outcome"},
	)

	ProjectionRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projection_runs_total",
			Help: "Enrollment projection attempts by result",
		},
		[]string{"status"},
	)

	PurchasesCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchases_completed_total",
			Help: "Ledger entries that reached completed, by entry path",
		},
		[]string{"source"},
	)
)

var registerOnce sync.Once

func InitMetrics(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(RepositoryCalls, RepositoryDuration, WebhookEvents, ProjectionRuns, PurchasesCompleted)
	})
}
