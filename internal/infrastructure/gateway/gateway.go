package gateway

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/honeynil/course-purchase-service/internal/models"
	pkgerrors "github.com/honeynil/course-purchase-service/pkg/errors"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const SignatureHeader = "Stripe-Signature"

//go:generate mockgen -source=gateway.go -destination=mocks/gateway_mock.go -package=mocks

type Gateway interface {
	VerifySignature(payload []byte, header string) error
	ParseEvent(payload []byte) (*models.PaymentEvent, error)
}

// StripeGateway checks Stripe webhook signatures with the endpoint secret
// and decodes checkout session events.
type StripeGateway struct {
	secret    string
	tolerance time.Duration
}

func NewStripeGateway(secret string, tolerance time.Duration) *StripeGateway {
	return &StripeGateway{
		secret:    secret,
		tolerance: tolerance,
	}
}

// VerifySignature rejects with ErrInvalidSignature and never says which
// part of the header failed.
func (g *StripeGateway) VerifySignature(payload []byte, header string) error {
	if g.secret == "" {
		slog.Error("webhook secret is not configured", "method", "VerifySignature")
		return pkgerrors.ErrInvalidSignature
	}

	var err error
	if g.tolerance > 0 {
		err = webhook.ValidatePayloadWithTolerance(payload, header, g.secret, g.tolerance)
	} else {
		err = webhook.ValidatePayloadIgnoringTolerance(payload, header, g.secret)
	}
	if err != nil {
		slog.Warn("gateway signature rejected", "method", "VerifySignature", "reason", err)
		return pkgerrors.ErrInvalidSignature
	}
	return nil
}

func (g *StripeGateway) ParseEvent(payload []byte) (*models.PaymentEvent, error) {
	var raw stripe.Event
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrInvalidPayload, err)
	}
	if raw.ID == "" || raw.Type == "" {
		return nil, fmt.Errorf("%w: missing event id or type", pkgerrors.ErrInvalidPayload)
	}

	event := &models.PaymentEvent{
		ID:   raw.ID,
		Type: string(raw.Type),
	}
	if raw.Created > 0 {
		event.Created = time.Unix(raw.Created, 0).UTC()
	}
	if raw.Type != stripe.EventTypeCheckoutSessionCompleted {
		return event, nil
	}

	if raw.Data == nil || len(raw.Data.Raw) == 0 {
		return nil, fmt.Errorf("%w: completed event without session", pkgerrors.ErrInvalidPayload)
	}
	var session stripe.CheckoutSession
	if err := json.Unmarshal(raw.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrInvalidPayload, err)
	}
	if session.ID == "" {
		return nil, fmt.Errorf("%w: completed event without session id", pkgerrors.ErrInvalidPayload)
	}
	event.SessionID = session.ID
	event.AmountTotal = session.AmountTotal
	event.Currency = string(session.Currency)
	return event, nil
}
