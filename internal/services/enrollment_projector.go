package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/honeynil/course-purchase-service/internal/infrastructure/observability"
	"github.com/honeynil/course-purchase-service/internal/infrastructure/redis"
	"github.com/honeynil/course-purchase-service/internal/models"
	"github.com/honeynil/course-purchase-service/internal/repository"
	pkgerrors "github.com/honeynil/course-purchase-service/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ProjectionError collects the enrollment sub-updates that failed for one
// purchase. It matches ErrProjectionFailure and every underlying cause.
type ProjectionError struct {
	PurchaseID int64
	Err        error
}

func (e *ProjectionError) Error() string {
	return fmt.Sprintf("%v for purchase %d: %v", pkgerrors.ErrProjectionFailure, e.PurchaseID, e.Err)
}

func (e *ProjectionError) Unwrap() []error {
	return []error{pkgerrors.ErrProjectionFailure, e.Err}
}

type EnrollmentProjector interface {
	// Project applies the buyer, course and lecture side effects of a
	// completed purchase. It is idempotent.
	Project(ctx context.Context, p *models.PurchaseRecord) error
	ProjectWithRetry(ctx context.Context, p *models.PurchaseRecord) error
}

type enrollmentProjector struct {
	users        repository.UserRepository
	courses      repository.CourseRepository
	lectures     repository.LectureRepository
	purchases    repository.PurchaseRepository
	redisClient  redis.RedisClient
	storeTimeout time.Duration
	retry        RetryConfig
}

func NewEnrollmentProjector(
	users repository.UserRepository,
	courses repository.CourseRepository,
	lectures repository.LectureRepository,
	purchases repository.PurchaseRepository,
	redisClient redis.RedisClient,
	storeTimeout time.Duration,
	retry RetryConfig,
) *enrollmentProjector {
	return &enrollmentProjector{
		users:        users,
		courses:      courses,
		lectures:     lectures,
		purchases:    purchases,
		redisClient:  redisClient,
		storeTimeout: storeTimeout,
		retry:        retry,
	}
}

func (p *enrollmentProjector) Project(ctx context.Context, rec *models.PurchaseRecord) error {
	tracer := otel.Tracer("enrollment-projector")
	ctx, span := tracer.Start(ctx, "Project")
	defer span.End()

	if rec == nil {
		span.SetStatus(codes.Error, "nil purchase")
		return pkgerrors.ErrNilPurchase
	}
	span.SetAttributes(attribute.Int64("purchase.id", rec.ID), attribute.String("course.id", rec.CourseID))
	if !rec.IsCompleted() {
		span.SetStatus(codes.Error, "purchase not completed")
		return fmt.Errorf("%w: purchase %d is %s", pkgerrors.ErrNotCompleted, rec.ID, rec.Status)
	}

	var errs []error

	if err := p.step(ctx, func(ctx context.Context) error {
		return p.users.AddEnrolledCourse(ctx, rec.BuyerID, rec.CourseID)
	}); err != nil {
		errs = append(errs, fmt.Errorf("enroll buyer: %w", err))
	}

	if err := p.step(ctx, func(ctx context.Context) error {
		return p.courses.AddEnrolledBuyer(ctx, rec.CourseID, rec.BuyerID)
	}); err != nil {
		errs = append(errs, fmt.Errorf("add buyer to course: %w", err))
	}

	// every lecture of a purchased course becomes previewable
	if err := p.step(ctx, func(ctx context.Context) error {
		course, err := p.courses.GetByID(ctx, rec.CourseID)
		if err != nil {
			return err
		}
		_, err = p.lectures.UnlockPreviews(ctx, course.LectureIDs())
		return err
	}); err != nil {
		errs = append(errs, fmt.Errorf("unlock lectures: %w", err))
	}

	// sibling steps may have changed the course even when one failed
	p.invalidateCourse(ctx, rec.CourseID)

	if len(errs) > 0 {
		perr := &ProjectionError{PurchaseID: rec.ID, Err: stderrors.Join(errs...)}
		observability.ProjectionRuns.WithLabelValues("failed").Inc()
		span.RecordError(perr)
		span.SetStatus(codes.Error, "projection failed")
		slog.Error("enrollment projection failed",
			"purchase_id", rec.ID,
			"buyer_id", rec.BuyerID,
			"course_id", rec.CourseID,
			"error", perr)
		return perr
	}

	if err := p.step(ctx, func(ctx context.Context) error {
		return p.purchases.MarkProjected(ctx, rec.ID)
	}); err != nil {
		// the side effects are applied; a later sweep repeats them harmlessly
		slog.Error("failed to mark purchase projected", "purchase_id", rec.ID, "error", err)
	}

	observability.ProjectionRuns.WithLabelValues("succeeded").Inc()
	slog.Info("enrollment projected",
		"purchase_id", rec.ID,
		"buyer_id", rec.BuyerID,
		"course_id", rec.CourseID)
	return nil
}

func (p *enrollmentProjector) ProjectWithRetry(ctx context.Context, rec *models.PurchaseRecord) error {
	if rec == nil {
		return pkgerrors.ErrNilPurchase
	}
	if !rec.IsCompleted() {
		return fmt.Errorf("%w: purchase %d is %s", pkgerrors.ErrNotCompleted, rec.ID, rec.Status)
	}
	return withRetry(ctx, p.retry, "project", func(ctx context.Context) error {
		return p.Project(ctx, rec)
	})
}

func (p *enrollmentProjector) step(ctx context.Context, fn func(ctx context.Context) error) error {
	sctx, cancel := storeContext(ctx, p.storeTimeout)
	defer cancel()
	return fn(sctx)
}

func (p *enrollmentProjector) invalidateCourse(ctx context.Context, courseID string) {
	if p.redisClient == nil {
		return
	}
	if err := p.redisClient.Del(ctx, courseCacheKey(courseID)); err != nil {
		slog.Error("failed to invalidate course cache", "course_id", courseID, "error", err)
	}
}
