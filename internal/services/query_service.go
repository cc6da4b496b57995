package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/honeynil/course-purchase-service/internal/infrastructure/redis"
	"github.com/honeynil/course-purchase-service/internal/models"
	"github.com/honeynil/course-purchase-service/internal/repository"
	pkgerrors "github.com/honeynil/course-purchase-service/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=query_service.go -destination=mocks/query_service_mock.go -package=mocks

type QueryService interface {
	GetCourseWithPurchaseStatus(ctx context.Context, buyerID, courseID string) (*models.CourseDetails, error)
	ListCompletedPurchases(ctx context.Context) ([]models.PurchaseWithCourse, error)
	ListBuyerCourses(ctx context.Context, buyerID string) ([]models.PurchaseWithCourse, error)
}

type queryService struct {
	purchases    repository.PurchaseRepository
	courses      *courseCache
	storeTimeout time.Duration
}

func NewQueryService(
	purchases repository.PurchaseRepository,
	courses repository.CourseRepository,
	redisClient redis.RedisClient,
	courseCacheTTL time.Duration,
	storeTimeout time.Duration,
) *queryService {
	return &queryService{
		purchases: purchases,
		courses: &courseCache{
			courses:      courses,
			redis:        redisClient,
			ttl:          courseCacheTTL,
			storeTimeout: storeTimeout,
		},
		storeTimeout: storeTimeout,
	}
}

func (s *queryService) GetCourseWithPurchaseStatus(ctx context.Context, buyerID, courseID string) (*models.CourseDetails, error) {
	tracer := otel.Tracer("query-service")
	ctx, span := tracer.Start(ctx, "GetCourseWithPurchaseStatus")
	defer span.End()

	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		span.SetStatus(codes.Error, "empty course id")
		return nil, fmt.Errorf("%w: course id is required", pkgerrors.ErrInvalidInput)
	}

	course, err := s.courses.get(ctx, courseID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "course lookup failed")
		slog.Error("failed to get course", "course_id", courseID, "error", err)
		return nil, err
	}

	details := &models.CourseDetails{Course: course}
	if buyerID == "" {
		return details, nil
	}

	sctx, cancel := storeContext(ctx, s.storeTimeout)
	defer cancel()
	rec, err := s.purchases.FindByBuyerAndCourse(sctx, buyerID, courseID)
	switch {
	case stderrors.Is(err, pkgerrors.ErrPurchaseNotFound):
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, "purchase lookup failed")
		slog.Error("failed to look up purchase", "buyer_id", buyerID, "course_id", courseID, "error", err)
		return nil, fmt.Errorf("failed to look up purchase: %w", err)
	default:
		details.Purchased = rec.IsCompleted()
	}

	return details, nil
}

func (s *queryService) ListCompletedPurchases(ctx context.Context) ([]models.PurchaseWithCourse, error) {
	tracer := otel.Tracer("query-service")
	ctx, span := tracer.Start(ctx, "ListCompletedPurchases")
	defer span.End()

	sctx, cancel := storeContext(ctx, s.storeTimeout)
	defer cancel()
	purchases, err := s.purchases.ListCompleted(sctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list failed")
		slog.Error("failed to list completed purchases", "error", err)
		return nil, fmt.Errorf("failed to list completed purchases: %w", err)
	}

	slog.Info("completed purchases retrieved", "count", len(purchases))
	return purchases, nil
}

func (s *queryService) ListBuyerCourses(ctx context.Context, buyerID string) ([]models.PurchaseWithCourse, error) {
	tracer := otel.Tracer("query-service")
	ctx, span := tracer.Start(ctx, "ListBuyerCourses")
	defer span.End()

	if strings.TrimSpace(buyerID) == "" {
		return nil, fmt.Errorf("%w: buyer id is required", pkgerrors.ErrInvalidInput)
	}

	sctx, cancel := storeContext(ctx, s.storeTimeout)
	defer cancel()
	purchases, err := s.purchases.ListCompletedByBuyer(sctx, buyerID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list failed")
		slog.Error("failed to list buyer courses", "buyer_id", buyerID, "error", err)
		return nil, fmt.Errorf("failed to list buyer courses: %w", err)
	}

	slog.Info("buyer courses retrieved", "buyer_id", buyerID, "count", len(purchases))
	return purchases, nil
}
