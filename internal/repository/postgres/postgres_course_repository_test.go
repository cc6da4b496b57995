package repository_test

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	repository "github.com/honeynil/course-purchase-service/internal/repository/postgres"
	pkgerrors "github.com/honeynil/course-purchase-service/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresCourseRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := repository.NewPostgresCourseRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	courseCols := []string{"id", "title", "subtitle", "description", "category", "level", "price", "thumbnail",
		"creator_id", "is_published", "enrolled_buyer_ids", "created_at", "updated_at"}
	lectureCols := []string{"id", "course_id", "title", "video_url", "position", "is_preview_free"}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM courses`)).
			WithArgs("C1").
			WillReturnRows(sqlmock.NewRows(courseCols).
				AddRow("C1", "Go in Practice", "", "", "programming", "Beginner", int64(999), "", "U1", true, []byte("{B1,B2}"), now, now))
		mock.ExpectQuery(regexp.QuoteMeta(`FROM lectures`)).
			WithArgs("C1").
			WillReturnRows(sqlmock.NewRows(lectureCols).
				AddRow("L1", "C1", "Intro", "", 0, true).
				AddRow("L2", "C1", "Goroutines", "", 1, false))

		c, err := repo.GetByID(ctx, "C1")
		require.NoError(t, err)
		assert.Equal(t, int64(999), c.Price)
		assert.Equal(t, []string{"B1", "B2"}, c.EnrolledBuyerIDs)
		require.Len(t, c.Lectures, 2)
		assert.Equal(t, []string{"L1", "L2"}, c.LectureIDs())
		assert.False(t, c.Lectures[1].IsPreviewFree)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("EmptyRoster", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM courses`)).
			WithArgs("C2").
			WillReturnRows(sqlmock.NewRows(courseCols).
				AddRow("C2", "Empty", "", "", "", "", int64(0), "", "", false, []byte("{}"), now, now))
		mock.ExpectQuery(regexp.QuoteMeta(`FROM lectures`)).
			WithArgs("C2").
			WillReturnRows(sqlmock.NewRows(lectureCols))

		c, err := repo.GetByID(ctx, "C2")
		require.NoError(t, err)
		assert.NotNil(t, c.EnrolledBuyerIDs)
		assert.Empty(t, c.Lectures)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM courses`)).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		c, err := repo.GetByID(ctx, "missing")
		assert.Nil(t, c)
		assert.ErrorIs(t, err, pkgerrors.ErrCourseNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("LectureQueryError", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM courses`)).
			WithArgs("C1").
			WillReturnRows(sqlmock.NewRows(courseCols).
				AddRow("C1", "Go in Practice", "", "", "", "", int64(999), "", "", true, []byte("{}"), now, now))
		mock.ExpectQuery(regexp.QuoteMeta(`FROM lectures`)).
			WithArgs("C1").
			WillReturnError(fmt.Errorf("database error"))

		c, err := repo.GetByID(ctx, "C1")
		assert.Nil(t, c)
		assert.ErrorIs(t, err, pkgerrors.ErrStoreUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresCourseRepository_AddEnrolledBuyer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := repository.NewPostgresCourseRepository(db)
	ctx := context.Background()

	update := regexp.QuoteMeta(`UPDATE courses`)
	exists := regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM courses WHERE id = $1)`)

	t.Run("Added", func(t *testing.T) {
		mock.ExpectExec(update).WithArgs("C1", "B1").WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.AddEnrolledBuyer(ctx, "C1", "B1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AlreadyEnrolled", func(t *testing.T) {
		mock.ExpectExec(update).WithArgs("C1", "B1").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(exists).WithArgs("C1").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		assert.NoError(t, repo.AddEnrolledBuyer(ctx, "C1", "B1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CourseMissing", func(t *testing.T) {
		mock.ExpectExec(update).WithArgs("C9", "B1").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(exists).WithArgs("C9").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		assert.ErrorIs(t, repo.AddEnrolledBuyer(ctx, "C9", "B1"), pkgerrors.ErrCourseNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DatabaseError", func(t *testing.T) {
		mock.ExpectExec(update).WithArgs("C1", "B1").WillReturnError(fmt.Errorf("database error"))

		err := repo.AddEnrolledBuyer(ctx, "C1", "B1")
		assert.ErrorIs(t, err, pkgerrors.ErrStoreUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresLectureRepository_UnlockPreviews(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := repository.NewPostgresLectureRepository(db)
	ctx := context.Background()

	t.Run("NoLectures", func(t *testing.T) {
		n, err := repo.UnlockPreviews(ctx, nil)
		assert.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE lectures SET is_preview_free = TRUE WHERE id = ANY($1)`)).
			WithArgs(sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 2))

		n, err := repo.UnlockPreviews(ctx, []string{"L1", "L2", "L3"})
		assert.NoError(t, err)
		assert.Equal(t, int64(2), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DatabaseError", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE lectures`)).
			WithArgs(sqlmock.AnyArg()).
			WillReturnError(fmt.Errorf("database error"))

		_, err := repo.UnlockPreviews(ctx, []string{"L1"})
		assert.ErrorIs(t, err, pkgerrors.ErrStoreUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresUserRepository_AddEnrolledCourse(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := repository.NewPostgresUserRepository(db)
	ctx := context.Background()

	update := regexp.QuoteMeta(`UPDATE users`)
	exists := regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`)

	t.Run("Added", func(t *testing.T) {
		mock.ExpectExec(update).WithArgs("B1", "C1").WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.AddEnrolledCourse(ctx, "B1", "C1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AlreadyEnrolled", func(t *testing.T) {
		mock.ExpectExec(update).WithArgs("B1", "C1").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(exists).WithArgs("B1").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		assert.NoError(t, repo.AddEnrolledCourse(ctx, "B1", "C1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UserMissing", func(t *testing.T) {
		mock.ExpectExec(update).WithArgs("ghost", "C1").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(exists).WithArgs("ghost").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		assert.ErrorIs(t, repo.AddEnrolledCourse(ctx, "ghost", "C1"), pkgerrors.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
