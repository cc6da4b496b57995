package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/honeynil/course-purchase-service/internal/infrastructure/gateway"
	"github.com/honeynil/course-purchase-service/internal/infrastructure/observability"
	"github.com/honeynil/course-purchase-service/internal/models"
	"github.com/honeynil/course-purchase-service/internal/repository"
	pkgerrors "github.com/honeynil/course-purchase-service/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Outcome string

const (
	// OutcomeIgnored: event type this service does not act on.
	OutcomeIgnored Outcome = "ignored"
	// OutcomeUnmatched: no ledger entry carries the session reference.
	OutcomeUnmatched Outcome = "unmatched"
	// OutcomeReplay: the entry was already completed.
	OutcomeReplay Outcome = "replay"
	// OutcomeCompleted: this event moved the entry to completed.
	OutcomeCompleted Outcome = "completed"
	// OutcomeTerminal: the entry is failed and can no longer be completed.
	OutcomeTerminal Outcome = "terminal"
)

type ReconcileResult struct {
	Outcome    Outcome
	PurchaseID int64
	EventID    string
}

//go:generate mockgen -source=webhook_reconciler.go -destination=mocks/webhook_reconciler_mock.go -package=mocks

type WebhookReconciler interface {
	// HandleGatewayEvent verifies and applies one gateway notification. A
	// nil error means the event must be acknowledged.
	HandleGatewayEvent(ctx context.Context, rawPayload []byte, signatureHeader string) (*ReconcileResult, error)
}

type webhookReconciler struct {
	gateway      gateway.Gateway
	purchases    repository.PurchaseRepository
	finalizer    *PurchaseFinalizer
	storeTimeout time.Duration
}

func NewWebhookReconciler(gw gateway.Gateway, purchases repository.PurchaseRepository, finalizer *PurchaseFinalizer, storeTimeout time.Duration) *webhookReconciler {
	return &webhookReconciler{
		gateway:      gw,
		purchases:    purchases,
		finalizer:    finalizer,
		storeTimeout: storeTimeout,
	}
}

func (r *webhookReconciler) HandleGatewayEvent(ctx context.Context, rawPayload []byte, signatureHeader string) (*ReconcileResult, error) {
	tracer := otel.Tracer("webhook-reconciler")
	ctx, span := tracer.Start(ctx, "HandleGatewayEvent")
	defer span.End()

	if err := r.gateway.VerifySignature(rawPayload, signatureHeader); err != nil {
		observability.WebhookEvents.WithLabelValues("rejected").Inc()
		span.SetStatus(codes.Error, "invalid signature")
		slog.Warn("gateway event rejected", "reason", "signature")
		return nil, pkgerrors.ErrInvalidSignature
	}

	event, err := r.gateway.ParseEvent(rawPayload)
	if err != nil {
		observability.WebhookEvents.WithLabelValues("rejected").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid payload")
		slog.Warn("gateway event rejected", "reason", "payload", "error", err)
		if !stderrors.Is(err, pkgerrors.ErrInvalidPayload) {
			err = fmt.Errorf("%w: %v", pkgerrors.ErrInvalidPayload, err)
		}
		return nil, err
	}
	span.SetAttributes(attribute.String("event.id", event.ID), attribute.String("event.type", event.Type))

	logger := observability.WithContext(ctx, "event_id", event.ID)
	result := &ReconcileResult{EventID: event.ID}

	if !event.IsPaymentCompleted() {
		logger.Info("ignoring gateway event", "type", event.Type)
		return r.done(result, OutcomeIgnored), nil
	}

	rec, err := r.findByReference(ctx, event.SessionID)
	if stderrors.Is(err, pkgerrors.ErrPurchaseNotFound) {
		logger.Warn("no purchase for gateway session", "session_id", event.SessionID)
		return r.done(result, OutcomeUnmatched), nil
	}
	if err != nil {
		observability.WebhookEvents.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "ledger lookup failed")
		logger.Error("failed to look up purchase for gateway session", "session_id", event.SessionID, "error", err)
		return nil, fmt.Errorf("failed to look up purchase: %w", err)
	}
	result.PurchaseID = rec.ID

	if rec.IsCompleted() {
		logger.Info("gateway event replayed", "purchase_id", rec.ID)
		return r.done(result, OutcomeReplay), nil
	}

	if rec.Status == models.StatusFailed {
		logger.Warn("gateway completion for failed purchase", "purchase_id", rec.ID)
		return r.done(result, OutcomeTerminal), nil
	}

	completed, changed, err := r.markCompleted(ctx, rec.ID, event.AmountTotal)
	if stderrors.Is(err, pkgerrors.ErrInvalidStatusTransition) {
		logger.Warn("purchase left pending before completion", "purchase_id", rec.ID, "error", err)
		return r.done(result, OutcomeTerminal), nil
	}
	if err != nil {
		observability.WebhookEvents.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "mark completed failed")
		logger.Error("failed to complete purchase", "purchase_id", rec.ID, "error", err)
		return nil, fmt.Errorf("failed to complete purchase: %w", err)
	}
	if !changed {
		logger.Info("purchase completed concurrently", "purchase_id", rec.ID)
		return r.done(result, OutcomeReplay), nil
	}

	logger.Info("purchase completed by gateway",
		"purchase_id", completed.ID,
		"buyer_id", completed.BuyerID,
		"course_id", completed.CourseID,
		"amount", completed.Amount)

	r.finalizer.Finalize(ctx, completed, models.SourceWebhook)

	return r.done(result, OutcomeCompleted), nil
}

func (r *webhookReconciler) done(result *ReconcileResult, outcome Outcome) *ReconcileResult {
	observability.WebhookEvents.WithLabelValues(string(outcome)).Inc()
	result.Outcome = outcome
	return result
}

func (r *webhookReconciler) findByReference(ctx context.Context, ref string) (*models.PurchaseRecord, error) {
	sctx, cancel := storeContext(ctx, r.storeTimeout)
	defer cancel()
	return r.purchases.FindByExternalReference(sctx, ref)
}

func (r *webhookReconciler) markCompleted(ctx context.Context, id, amount int64) (*models.PurchaseRecord, bool, error) {
	sctx, cancel := storeContext(ctx, r.storeTimeout)
	defer cancel()
	return r.purchases.MarkCompleted(sctx, id, amount)
}
