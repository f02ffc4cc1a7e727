package adapter

import (
	"context"

	"serial-story-subscription/internal/domain/model"
)

// CreateSessionRequest carries everything the provider needs to build a
// hosted checkout page for a single story purchase.
type CreateSessionRequest struct {
	Title         string
	Description   string
	UnitAmount    int64 // minor units, passed through without conversion
	Currency      string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      model.CheckoutMetadata
}

// CheckoutGateway is the hex port for hosted payment providers.
type CheckoutGateway interface {
	Name() string

	// CreateSession registers a payment intent with the provider and returns
	// its opaque session id plus the URL the buyer is redirected to.
	CreateSession(ctx context.Context, req CreateSessionRequest) (*model.CheckoutSession, error)
	// RetrieveSession looks up a session by id, returning payment status,
	// amount and the metadata attached at creation.
	RetrieveSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error)
}
