package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/honeynil/course-purchase-service/internal/infrastructure/redis"
	"github.com/honeynil/course-purchase-service/internal/models"
	"github.com/honeynil/course-purchase-service/internal/repository"
	pkgerrors "github.com/honeynil/course-purchase-service/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const purchaseSuccessMessage = "Course purchased successfully"

//go:generate mockgen -source=purchase_service.go -destination=mocks/purchase_service_mock.go -package=mocks

type PurchaseService interface {
	Purchase(ctx context.Context, buyerID, courseID string) (*PurchaseResult, error)
	StartCheckout(ctx context.Context, buyerID, courseID string) (*CheckoutResult, error)
}

type PurchaseResult struct {
	CourseID string
	Message  string
}

type CheckoutResult struct {
	PurchaseID int64
	SessionID  string
	Amount     int64
	Status     models.StatusType
}

type purchaseService struct {
	purchases    repository.PurchaseRepository
	courses      *courseCache
	finalizer    *PurchaseFinalizer
	storeTimeout time.Duration
}

func NewPurchaseService(
	purchases repository.PurchaseRepository,
	courses repository.CourseRepository,
	redisClient redis.RedisClient,
	finalizer *PurchaseFinalizer,
	courseCacheTTL time.Duration,
	storeTimeout time.Duration,
) *purchaseService {
	return &purchaseService{
		purchases: purchases,
		courses: &courseCache{
			courses:      courses,
			redis:        redisClient,
			ttl:          courseCacheTTL,
			storeTimeout: storeTimeout,
		},
		finalizer:    finalizer,
		storeTimeout: storeTimeout,
	}
}

func (s *purchaseService) Purchase(ctx context.Context, buyerID, courseID string) (*PurchaseResult, error) {
	tracer := otel.Tracer("purchase-service")
	ctx, span := tracer.Start(ctx, "Purchase")
	defer span.End()

	buyerID, courseID = strings.TrimSpace(buyerID), strings.TrimSpace(courseID)
	if buyerID == "" || courseID == "" {
		span.SetStatus(codes.Error, "empty buyer or course id")
		return nil, fmt.Errorf("%w: buyer and course id are required", pkgerrors.ErrInvalidInput)
	}
	span.SetAttributes(attribute.String("buyer.id", buyerID), attribute.String("course.id", courseID))

	course, err := s.courses.get(ctx, courseID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "course lookup failed")
		slog.Error("failed to get course", "course_id", courseID, "error", err)
		return nil, err
	}

	existing, err := s.findExisting(ctx, buyerID, courseID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "purchase lookup failed")
		return nil, err
	}
	if existing != nil {
		if existing.IsCompleted() {
			slog.Warn("course already purchased", "buyer_id", buyerID, "course_id", courseID, "purchase_id", existing.ID)
			span.SetStatus(codes.Error, "already purchased")
			return nil, pkgerrors.ErrAlreadyPurchased
		}
		slog.Warn("purchase already in progress", "buyer_id", buyerID, "course_id", courseID, "purchase_id", existing.ID)
		span.SetStatus(codes.Error, "purchase in progress")
		return nil, pkgerrors.ErrDuplicatePurchase
	}

	rec, err := s.create(ctx, &models.PurchaseRecord{
		BuyerID:           buyerID,
		CourseID:          courseID,
		ExternalReference: "direct_" + uuid.NewString(),
		Amount:            course.Price,
		Status:            models.StatusCompleted,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "purchase create failed")
		return nil, err
	}

	slog.Info("course purchased",
		"purchase_id", rec.ID,
		"buyer_id", buyerID,
		"course_id", courseID,
		"amount", rec.Amount)

	s.finalizer.Finalize(ctx, rec, models.SourceDirect)

	return &PurchaseResult{CourseID: courseID, Message: purchaseSuccessMessage}, nil
}

func (s *purchaseService) StartCheckout(ctx context.Context, buyerID, courseID string) (*CheckoutResult, error) {
	tracer := otel.Tracer("purchase-service")
	ctx, span := tracer.Start(ctx, "StartCheckout")
	defer span.End()

	buyerID, courseID = strings.TrimSpace(buyerID), strings.TrimSpace(courseID)
	if buyerID == "" || courseID == "" {
		span.SetStatus(codes.Error, "empty buyer or course id")
		return nil, fmt.Errorf("%w: buyer and course id are required", pkgerrors.ErrInvalidInput)
	}

	course, err := s.courses.get(ctx, courseID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "course lookup failed")
		slog.Error("failed to get course", "course_id", courseID, "error", err)
		return nil, err
	}

	existing, err := s.findExisting(ctx, buyerID, courseID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if existing != nil {
		if existing.IsCompleted() {
			span.SetStatus(codes.Error, "already purchased")
			return nil, pkgerrors.ErrAlreadyPurchased
		}
		slog.Info("reusing pending checkout", "purchase_id", existing.ID, "session_id", existing.ExternalReference)
		return checkoutResult(existing), nil
	}

	rec, err := s.create(ctx, &models.PurchaseRecord{
		BuyerID:           buyerID,
		CourseID:          courseID,
		ExternalReference: "cs_" + uuid.NewString(),
		Amount:            course.Price,
		Status:            models.StatusPending,
	})
	if stderrors.Is(err, pkgerrors.ErrDuplicatePurchase) {
		// lost the race to a concurrent checkout for the same pair
		winner, ferr := s.findExisting(ctx, buyerID, courseID)
		if ferr == nil && winner != nil && !winner.IsCompleted() {
			return checkoutResult(winner), nil
		}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "checkout create failed")
		return nil, err
	}

	slog.Info("checkout started",
		"purchase_id", rec.ID,
		"buyer_id", buyerID,
		"course_id", courseID,
		"session_id", rec.ExternalReference)
	return checkoutResult(rec), nil
}

func checkoutResult(rec *models.PurchaseRecord) *CheckoutResult {
	return &CheckoutResult{
		PurchaseID: rec.ID,
		SessionID:  rec.ExternalReference,
		Amount:     rec.Amount,
		Status:     rec.Status,
	}
}

// findExisting returns nil, nil when the pair has no live ledger entry.
func (s *purchaseService) findExisting(ctx context.Context, buyerID, courseID string) (*models.PurchaseRecord, error) {
	sctx, cancel := storeContext(ctx, s.storeTimeout)
	defer cancel()

	rec, err := s.purchases.FindByBuyerAndCourse(sctx, buyerID, courseID)
	if stderrors.Is(err, pkgerrors.ErrPurchaseNotFound) {
		return nil, nil
	}
	if err != nil {
		slog.Error("failed to look up purchase", "buyer_id", buyerID, "course_id", courseID, "error", err)
		return nil, fmt.Errorf("failed to look up purchase: %w", err)
	}
	return rec, nil
}

// create maps a store-level uniqueness conflict to the state of the entry
// that won it.
func (s *purchaseService) create(ctx context.Context, rec *models.PurchaseRecord) (*models.PurchaseRecord, error) {
	sctx, cancel := storeContext(ctx, s.storeTimeout)
	created, err := s.purchases.Create(sctx, rec)
	cancel()
	if err == nil {
		return created, nil
	}

	if !stderrors.Is(err, pkgerrors.ErrDuplicatePurchase) {
		slog.Error("failed to create purchase", "buyer_id", rec.BuyerID, "course_id", rec.CourseID, "error", err)
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}

	winner, ferr := s.findExisting(ctx, rec.BuyerID, rec.CourseID)
	if ferr == nil && winner.IsCompleted() {
		return nil, pkgerrors.ErrAlreadyPurchased
	}
	slog.Warn("concurrent purchase for the same course", "buyer_id", rec.BuyerID, "course_id", rec.CourseID)
	return nil, pkgerrors.ErrDuplicatePurchase
}
