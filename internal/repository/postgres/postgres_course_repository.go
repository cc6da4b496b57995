package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/honeynil/course-purchase-service/internal/models"
	pkgerrors "github.com/honeynil/course-purchase-service/pkg/errors"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"
)

const courseTracer = "course-repository"

type PostgresCourseRepository struct {
	db *sql.DB
}

func NewPostgresCourseRepository(db *sql.DB) *PostgresCourseRepository {
	return &PostgresCourseRepository{db: db}
}

func (r *PostgresCourseRepository) GetByID(ctx context.Context, id string) (_ *models.Course, err error) {
	ctx, _, done := observe(ctx, courseTracer, "GetCourseByID", attribute.String("course_id", id))
	defer done(&err)

	query := `
		SELECT id, title, subtitle, description, category, level, price, thumbnail,
			creator_id, is_published, enrolled_buyer_ids, created_at, updated_at
		FROM courses
		WHERE id = $1`

	var (
		c        models.Course
		enrolled pq.StringArray
	)
	err = r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Title, &c.Subtitle, &c.Description, &c.Category, &c.Level, &c.Price, &c.Thumbnail,
		&c.CreatorID, &c.IsPublished, &enrolled, &c.CreatedAt, &c.UpdatedAt,
	)
	if stderrors.Is(err, sql.ErrNoRows) {
		err = pkgerrors.ErrCourseNotFound
		slog.Warn("course not found", "method", "GetByID", "course_id", id)
		return nil, err
	}
	if err != nil {
		slog.Error("failed to get course", "method", "GetByID", "course_id", id, "error", err)
		err = storeErr("failed to get course", err)
		return nil, err
	}
	c.EnrolledBuyerIDs = []string(enrolled)
	if c.EnrolledBuyerIDs == nil {
		c.EnrolledBuyerIDs = []string{}
	}

	lectures, err := r.lectures(ctx, id)
	if err != nil {
		slog.Error("failed to get course lectures", "method", "GetByID", "course_id", id, "error", err)
		return nil, err
	}
	c.Lectures = lectures

	return &c, nil
}

func (r *PostgresCourseRepository) lectures(ctx context.Context, courseID string) ([]models.Lecture, error) {
	query := `
		SELECT id, course_id, title, video_url, position, is_preview_free
		FROM lectures
		WHERE course_id = $1
		ORDER BY position ASC`
	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, storeErr("failed to query lectures", err)
	}
	defer rows.Close()

	out := []models.Lecture{}
	for rows.Next() {
		var l models.Lecture
		if err := rows.Scan(&l.ID, &l.CourseID, &l.Title, &l.VideoURL, &l.Position, &l.IsPreviewFree); err != nil {
			return nil, fmt.Errorf("failed to scan lecture: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("failed to iterate lectures", err)
	}
	return out, nil
}

// AddEnrolledBuyer appends buyerID to the course roster unless it is
// already present.
func (r *PostgresCourseRepository) AddEnrolledBuyer(ctx context.Context, courseID, buyerID string) (err error) {
	ctx, _, done := observe(ctx, courseTracer, "AddEnrolledBuyer",
		attribute.String("course_id", courseID),
		attribute.String("buyer_id", buyerID),
	)
	defer done(&err)

	query := `
		UPDATE courses
		SET enrolled_buyer_ids = array_append(enrolled_buyer_ids, $2::text), updated_at = NOW()
		WHERE id = $1 AND NOT ($2::text = ANY(enrolled_buyer_ids))`
	res, err := r.db.ExecContext(ctx, query, courseID, buyerID)
	if err != nil {
		slog.Error("failed to enroll buyer", "method", "AddEnrolledBuyer", "course_id", courseID, "buyer_id", buyerID, "error", err)
		err = storeErr("failed to enroll buyer", err)
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		slog.Info("buyer added to course roster", "method", "AddEnrolledBuyer", "course_id", courseID, "buyer_id", buyerID)
		return nil
	}

	var exists bool
	if err = r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM courses WHERE id = $1)`, courseID).Scan(&exists); err != nil {
		err = storeErr("failed to check course", err)
		return err
	}
	if !exists {
		err = pkgerrors.ErrCourseNotFound
		return err
	}
	return nil
}
