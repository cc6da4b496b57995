package repository

import "context"

//go:generate mockgen -source=user_repository.go -destination=mocks/user_repository_mock.go -package=mocks

type UserRepository interface {
	AddEnrolledCourse(ctx context.Context, userID, courseID string) error
}
