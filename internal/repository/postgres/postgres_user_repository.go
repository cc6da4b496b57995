package repository

import (
	"context"
	"database/sql"
	"log/slog"

	pkgerrors "github.com/honeynil/course-purchase-service/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

const userTracer = "user-repository"

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// AddEnrolledCourse appends courseID to the user's enrolled courses unless
// it is already present.
func (r *PostgresUserRepository) AddEnrolledCourse(ctx context.Context, userID, courseID string) (err error) {
	ctx, _, done := observe(ctx, userTracer, "AddEnrolledCourse",
		attribute.String("user_id", userID),
		attribute.String("course_id", courseID),
	)
	defer done(&err)

	query := `
		UPDATE users
		SET enrolled_course_ids = array_append(enrolled_course_ids, $2::text)
		WHERE id = $1 AND NOT ($2::text = ANY(enrolled_course_ids))`
	res, err := r.db.ExecContext(ctx, query, userID, courseID)
	if err != nil {
		slog.Error("failed to enroll user", "method", "AddEnrolledCourse", "user_id", userID, "course_id", courseID, "error", err)
		err = storeErr("failed to enroll user", err)
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		slog.Info("course added to user enrollments", "method", "AddEnrolledCourse", "user_id", userID, "course_id", courseID)
		return nil
	}

	var exists bool
	if err = r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		err = storeErr("failed to check user", err)
		return err
	}
	if !exists {
		err = pkgerrors.ErrUserNotFound
		return err
	}
	return nil
}
