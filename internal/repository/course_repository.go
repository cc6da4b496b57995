package repository

import (
	"context"

	"github.com/honeynil/course-purchase-service/internal/models"
)

//go:generate mockgen -source=course_repository.go -destination=mocks/course_repository_mock.go -package=mocks

type CourseRepository interface {
	GetByID(ctx context.Context, id string) (*models.Course, error)
	AddEnrolledBuyer(ctx context.Context, courseID, buyerID string) error
}

type LectureRepository interface {
	UnlockPreviews(ctx context.Context, lectureIDs []string) (int64, error)
}
