package repository

import (
	"context"

	"github.com/honeynil/course-purchase-service/internal/models"
)

//go:generate mockgen -source=purchase_repository.go -destination=mocks/purchase_repository_mock.go -package=mocks

type PurchaseRepository interface {
	Create(ctx context.Context, p *models.PurchaseRecord) (*models.PurchaseRecord, error)
	FindByID(ctx context.Context, id int64) (*models.PurchaseRecord, error)
	FindByBuyerAndCourse(ctx context.Context, buyerID, courseID string) (*models.PurchaseRecord, error)
	FindByExternalReference(ctx context.Context, ref string) (*models.PurchaseRecord, error)
	MarkCompleted(ctx context.Context, id int64, finalAmount int64) (*models.PurchaseRecord, bool, error)
	MarkProjected(ctx context.Context, id int64) error
	// MarkProjectionFailed records a failed projection attempt so the entry
	// moves behind entries that have not been tried yet.
	MarkProjectionFailed(ctx context.Context, id int64) error
	ListUnprojected(ctx context.Context, limit int) ([]models.PurchaseRecord, error)
	ListCompleted(ctx context.Context) ([]models.PurchaseWithCourse, error)
	ListCompletedByBuyer(ctx context.Context, buyerID string) ([]models.PurchaseWithCourse, error)
}
