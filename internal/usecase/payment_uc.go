package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"serial-story-subscription/internal/domain"
	"serial-story-subscription/internal/domain/model"
	"serial-story-subscription/internal/domain/ports/adapter"
	"serial-story-subscription/internal/domain/ports/repository"
)

// Compile-time check
var _ PaymentUseCase = (*paymentUC)(nil)

// VerificationResult is the receipt payload returned on every success path.
type VerificationResult struct {
	StoryTitle   string
	Amount       int64 // gateway amount total, minor units
	Subscription *model.Subscription
	// AlreadyActive is set when a prior verification (or a raced duplicate)
	// already created the subscription row.
	AlreadyActive bool
	// ActivationPending is set when the payment is confirmed but the
	// subscription write has not landed yet; returned together with
	// ErrActivationConflict.
	ActivationPending bool
}

type PaymentUseCase interface {
	// VerifyAndActivate confirms payment for a checkout session and creates
	// the subscription row exactly once. It is idempotent under repeated
	// calls with the same session id.
	VerifyAndActivate(ctx context.Context, sessionID string) (*VerificationResult, error)
}

type paymentUC struct {
	gateway adapter.CheckoutGateway
	subs    repository.SubscriptionRepository
	stories repository.StoryRepository
	users   repository.UserRepository
	log     *zerolog.Logger
}

func NewPaymentUseCase(
	gateway adapter.CheckoutGateway,
	subs repository.SubscriptionRepository,
	stories repository.StoryRepository,
	users repository.UserRepository,
	logger *zerolog.Logger,
) *paymentUC {
	l := logger.With().Str("component", "PaymentUC").Logger()
	return &paymentUC{gateway: gateway, subs: subs, stories: stories, users: users, log: &l}
}

func (u *paymentUC) VerifyAndActivate(ctx context.Context, sessionID string) (*VerificationResult, error) {
	if sessionID == "" {
		return nil, domain.ErrInvalidArgument
	}

	sess, err := u.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !sess.Paid() {
		u.log.Info().Str("session_id", sessionID).Str("status", string(sess.PaymentStatus)).Msg("payment not completed")
		return nil, &domain.PaymentIncompleteError{Status: string(sess.PaymentStatus)}
	}

	meta := sess.Metadata
	if !meta.IsComplete() {
		u.log.Error().Str("session_id", sessionID).Msg("paid session carries no correlation metadata")
		return nil, domain.ErrNotFound
	}

	// Gateway metadata is untrusted input: both ids must still resolve
	// before it is allowed to drive a write.
	if _, err := u.stories.FindByID(ctx, nil, meta.StoryID); err != nil {
		u.log.Error().Str("session_id", sessionID).Str("story_id", meta.StoryID).Msg("metadata story no longer resolves")
		return nil, err
	}
	if _, err := u.users.FindByID(ctx, nil, meta.UserID); err != nil {
		u.log.Error().Str("session_id", sessionID).Str("user_id", meta.UserID).Msg("metadata user no longer resolves")
		return nil, err
	}

	result := &VerificationResult{StoryTitle: meta.StoryTitle, Amount: sess.AmountTotal}

	// Idempotency check: a reload of the confirmation page or a duplicate
	// redirect must not create a second row.
	existing, err := u.subs.FindByUserAndStory(ctx, nil, meta.UserID, meta.StoryID)
	switch {
	case err == nil:
		result.Subscription = existing
		result.AlreadyActive = true
		return result, nil
	case !errors.Is(err, domain.ErrNotFound):
		// Payment is confirmed; never report a store hiccup as a payment
		// failure. The same session id can be re-verified.
		result.ActivationPending = true
		return result, domain.ErrActivationConflict
	}

	sub, err := model.NewSubscription(uuid.NewString(), meta.UserID, meta.StoryID, sess.PaymentIntentID)
	if err != nil {
		result.ActivationPending = true
		return result, domain.ErrActivationConflict
	}

	if err := u.subs.Insert(ctx, nil, sub); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Lost the race against a concurrent verification of the same
			// session; the unique constraint is the authoritative guard.
			if existing, ferr := u.subs.FindByUserAndStory(ctx, nil, meta.UserID, meta.StoryID); ferr == nil {
				result.Subscription = existing
				result.AlreadyActive = true
				return result, nil
			}
		}
		u.log.Error().Err(err).Str("session_id", sessionID).Msg("payment confirmed but subscription insert failed")
		result.ActivationPending = true
		return result, domain.ErrActivationConflict
	}

	u.log.Info().
		Str("session_id", sessionID).
		Str("subscription_id", sub.ID).
		Str("story_id", meta.StoryID).
		Msg("subscription activated")
	result.Subscription = sub
	return result, nil
}
