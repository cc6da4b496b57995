package kafka

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/honeynil/course-purchase-service/internal/models"
	"github.com/honeynil/course-purchase-service/internal/repository"
	pkgerrors "github.com/honeynil/course-purchase-service/pkg/errors"
	"github.com/segmentio/kafka-go"
)

// Projector re-applies the enrollment side effects of a completed purchase.
type Projector interface {
	Project(ctx context.Context, p *models.PurchaseRecord) error
}

// Consumer drives enrollment projection from the purchases topic. It is one
// of the re-drive paths for purchases whose synchronous projection did not
// converge; projection is idempotent so redelivered events are harmless.
type Consumer struct {
	reader    *kafka.Reader
	purchases repository.PurchaseRepository
	projector Projector
}

func NewConsumer(brokers []string, topic, groupID string, purchases repository.PurchaseRepository, projector Projector) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 10e3,
			MaxBytes: 10e6,
		}),
		purchases: purchases,
		projector: projector,
	}
}

func (c *Consumer) Consume(ctx context.Context) {
	topic := c.reader.Config().Topic
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				slog.Info("Kafka consumer stopped", "topic", topic)
				return
			}
			slog.Error("failed to read Kafka message", "topic", topic, "error", err)
			continue
		}

		slog.Info("Kafka message received", "topic", msg.Topic, "key", string(msg.Key), "offset", msg.Offset)

		if err := c.handleMessage(ctx, msg.Value); err != nil {
			// the sweeper picks up anything left unprojected
			slog.Error("failed to handle purchase event", "topic", msg.Topic, "offset", msg.Offset, "error", err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			slog.Error("failed to commit Kafka message", "topic", msg.Topic, "offset", msg.Offset, "error", err)
		}
	}
}

func (c *Consumer) handleMessage(ctx context.Context, value []byte) error {
	var event models.PurchaseEvent
	if err := json.Unmarshal(value, &event); err != nil {
		slog.Error("failed to unmarshal purchase event", "error", err)
		return nil
	}

	if event.EventType != models.PurchaseEventCompleted {
		slog.Debug("ignoring purchase event", "event_type", event.EventType)
		return nil
	}
	if event.PurchaseID == 0 {
		slog.Error("invalid purchase event: missing purchase_id")
		return nil
	}

	purchase, err := c.purchases.FindByID(ctx, event.PurchaseID)
	if stderrors.Is(err, pkgerrors.ErrPurchaseNotFound) {
		slog.Warn("purchase from event not found", "purchase_id", event.PurchaseID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load purchase %d: %w", event.PurchaseID, err)
	}

	if purchase.ProjectedAt != nil {
		slog.Debug("purchase already projected", "purchase_id", purchase.ID)
		return nil
	}

	if err := c.projector.Project(ctx, purchase); err != nil {
		return err
	}

	slog.Info("purchase projected from event", "purchase_id", purchase.ID, "buyer_id", purchase.BuyerID, "course_id", purchase.CourseID, "source", event.Source)
	return nil
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
