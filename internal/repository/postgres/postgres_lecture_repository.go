package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"
)

type PostgresLectureRepository struct {
	db *sql.DB
}

func NewPostgresLectureRepository(db *sql.DB) *PostgresLectureRepository {
	return &PostgresLectureRepository{db: db}
}

// UnlockPreviews sets is_preview_free on the given lectures and reports how
// many rows actually changed.
func (r *PostgresLectureRepository) UnlockPreviews(ctx context.Context, lectureIDs []string) (_ int64, err error) {
	if len(lectureIDs) == 0 {
		return 0, nil
	}

	ctx, _, done := observe(ctx, "lecture-repository", "UnlockLecturePreviews", attribute.Int("lectures", len(lectureIDs)))
	defer done(&err)

	query := `UPDATE lectures SET is_preview_free = TRUE WHERE id = ANY($1) AND is_preview_free = FALSE`
	res, err := r.db.ExecContext(ctx, query, pq.Array(lectureIDs))
	if err != nil {
		slog.Error("failed to unlock lecture previews", "method", "UnlockPreviews", "lectures", len(lectureIDs), "error", err)
		err = storeErr("failed to unlock lecture previews", err)
		return 0, err
	}
	n, _ := res.RowsAffected()
	slog.Info("lecture previews unlocked", "method", "UnlockPreviews", "requested", len(lectureIDs), "updated", n)
	return n, nil
}
