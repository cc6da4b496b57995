package models

import "time"

type PurchaseRecord struct {
	ID                int64      `json:"id"`
	BuyerID           string     `json:"userId"`
	CourseID          string     `json:"courseId"`
	ExternalReference string     `json:"paymentIntentId"`
	Amount            int64      `json:"amount"`
	Status            StatusType `json:"status"`
	ProjectedAt       *time.Time `json:"projectedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (p *PurchaseRecord) IsCompleted() bool {
	return p != nil && p.Status == StatusCompleted
}

// PurchaseWithCourse is a completed ledger entry joined with its course.
type PurchaseWithCourse struct {
	PurchaseRecord
	Course CourseSummary `json:"course"`
}

type StatusType string

const (
	StatusPending   StatusType = "pending"
	StatusCompleted StatusType = "completed"
	StatusFailed    StatusType = "failed"
)

func (s StatusType) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	}
	return false
}
