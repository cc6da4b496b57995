package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/honeynil/course-purchase-service/internal/infrastructure/kafka"
	"github.com/honeynil/course-purchase-service/internal/infrastructure/observability"
	"github.com/honeynil/course-purchase-service/internal/models"
)

// PurchaseFinalizer runs everything that follows a ledger entry reaching
// completed: the purchase_completed event and the enrollment projection.
// Neither can undo the purchase; failures are logged and re-driven by the
// consumer and the sweeper.
type PurchaseFinalizer struct {
	producer  kafka.KafkaProducer
	topic     string
	projector EnrollmentProjector
	publish   RetryConfig
	timeout   time.Duration
}

func NewPurchaseFinalizer(producer kafka.KafkaProducer, topic string, projector EnrollmentProjector, publish RetryConfig, timeout time.Duration) *PurchaseFinalizer {
	return &PurchaseFinalizer{
		producer:  producer,
		topic:     topic,
		projector: projector,
		publish:   publish,
		timeout:   timeout,
	}
}

func (f *PurchaseFinalizer) Finalize(ctx context.Context, rec *models.PurchaseRecord, source string) {
	ctx = context.WithoutCancel(ctx)
	observability.PurchasesCompleted.WithLabelValues(source).Inc()

	f.publishCompleted(ctx, rec, source)

	if err := f.projector.ProjectWithRetry(ctx, rec); err != nil {
		slog.Error("enrollment projection deferred",
			"purchase_id", rec.ID,
			"buyer_id", rec.BuyerID,
			"course_id", rec.CourseID,
			"source", source,
			"error", err)
	}
}

func (f *PurchaseFinalizer) publishCompleted(ctx context.Context, rec *models.PurchaseRecord, source string) {
	if f.producer == nil {
		return
	}

	event := models.PurchaseEvent{
		EventType:  models.PurchaseEventCompleted,
		PurchaseID: rec.ID,
		BuyerID:    rec.BuyerID,
		CourseID:   rec.CourseID,
		Amount:     rec.Amount,
		Source:     source,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	eventBytes, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal purchase event", "purchase_id", rec.ID, "error", err)
		return
	}

	err = withRetry(ctx, f.publish, "publish", func(ctx context.Context) error {
		sctx, cancel := storeContext(ctx, f.timeout)
		defer cancel()
		return f.producer.Send(sctx, f.topic, rec.ID, eventBytes)
	})
	if err != nil {
		slog.Error("failed to send purchase event after retries", "purchase_id", rec.ID, "error", err)
		return
	}
	slog.Info("purchase event sent", "purchase_id", rec.ID, "source", source)
}
