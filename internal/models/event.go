package models

import "time"

const EventCheckoutSessionCompleted = "checkout.session.completed"

// PaymentEvent is a verified gateway notification reduced to the fields
// reconciliation needs.
type PaymentEvent struct {
	ID          string
	Type        string
	SessionID   string
	AmountTotal int64
	Currency    string
	Created     time.Time
}

func (e *PaymentEvent) IsPaymentCompleted() bool {
	return e != nil && e.Type == EventCheckoutSessionCompleted
}

// PurchaseEvent is published to the purchases topic after a ledger entry
// reaches completed.
type PurchaseEvent struct {
	EventType  string `json:"event_type"`
	PurchaseID int64  `json:"purchase_id"`
	BuyerID    string `json:"buyer_id"`
	CourseID   string `json:"course_id"`
	Amount     int64  `json:"amount"`
	Source     string `json:"source"`
	CreatedAt  string `json:"created_at"`
}

const (
	PurchaseEventCompleted = "purchase_completed"

	SourceDirect  = "direct"
	SourceWebhook = "webhook"
)
