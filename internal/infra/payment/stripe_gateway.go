package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/checkout/session"

	"serial-story-subscription/internal/domain"
	"serial-story-subscription/internal/domain/model"
	"serial-story-subscription/internal/domain/ports/adapter"
)

// Metadata keys attached to every checkout session. The verification step
// reads these back, so the names are part of the correlation contract.
const (
	metaStoryID    = "storyId"
	metaUserID     = "userId"
	metaStoryTitle = "storyTitle"
)

var _ adapter.CheckoutGateway = (*StripeGateway)(nil)

// StripeGateway implements CheckoutGateway on Stripe Checkout Sessions.
type StripeGateway struct{}

// NewStripeGateway configures the Stripe SDK with the secret key.
// The SDK holds the key globally; construct one gateway per process.
func NewStripeGateway(secretKey string) (*StripeGateway, error) {
	if secretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}
	stripe.Key = secretKey
	return &StripeGateway{}, nil
}

func (g *StripeGateway) Name() string { return "stripe" }

func (g *StripeGateway) CreateSession(ctx context.Context, req adapter.CreateSessionRequest) (*model.CheckoutSession, error) {
	product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(req.Title),
	}
	if req.Description != "" {
		product.Description = stripe.String(req.Description)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(req.Currency),
					ProductData: product,
					UnitAmount:  stripe.Int64(req.UnitAmount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:    stripe.String(req.SuccessURL),
		CancelURL:     stripe.String(req.CancelURL),
		CustomerEmail: stripe.String(req.CustomerEmail),
	}
	params.Context = ctx
	params.AddMetadata(metaStoryID, req.Metadata.StoryID)
	params.AddMetadata(metaUserID, req.Metadata.UserID)
	params.AddMetadata(metaStoryTitle, req.Metadata.StoryTitle)

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create checkout session: %w", err)
	}

	return &model.CheckoutSession{
		ID:            s.ID,
		PaymentStatus: model.CheckoutPaymentStatus(s.PaymentStatus),
		Metadata:      req.Metadata,
		AmountTotal:   s.AmountTotal,
		RedirectURL:   s.URL,
	}, nil
}

func (g *StripeGateway) RetrieveSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("payment_intent")

	s, err := session.Get(sessionID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: retrieve session: %v", domain.ErrGatewayUnavailable, err)
	}

	out := &model.CheckoutSession{
		ID:            s.ID,
		PaymentStatus: model.CheckoutPaymentStatus(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		RedirectURL:   s.URL,
	}
	if s.Metadata != nil {
		out.Metadata = model.CheckoutMetadata{
			StoryID:    s.Metadata[metaStoryID],
			UserID:     s.Metadata[metaUserID],
			StoryTitle: s.Metadata[metaStoryTitle],
		}
	}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
	}
	return out, nil
}
