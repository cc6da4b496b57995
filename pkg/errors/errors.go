package errors

import (
	"errors"
	"fmt"
)

var (
	ErrCourseNotFound          = errors.New("course not found")
	ErrAlreadyPurchased        = errors.New("course already purchased")
	ErrDuplicatePurchase       = errors.New("purchase already in progress for this course")
	ErrPurchaseNotFound        = errors.New("purchase not found")
	ErrNilPurchase             = errors.New("purchase is nil")
	ErrInvalidPurchaseStatus   = errors.New("invalid purchase status")
	ErrInvalidStatusTransition = errors.New("invalid purchase status transition")
	ErrNotCompleted            = errors.New("purchase is not completed")
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidSignature        = errors.New("invalid signature")
	ErrInvalidPayload          = errors.New("invalid payload")
	ErrProjectionFailure       = errors.New("enrollment projection failed")
	ErrStoreUnavailable        = errors.New("store unavailable")
	ErrUnauthorized            = errors.New("user not authenticated")
	ErrInvalidInput            = fmt.Errorf("invalid input")
	ErrInternal                = fmt.Errorf("Internal server error")
)
