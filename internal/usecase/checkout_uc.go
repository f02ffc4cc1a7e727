package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"serial-story-subscription/internal/domain"
	"serial-story-subscription/internal/domain/model"
	"serial-story-subscription/internal/domain/ports/adapter"
	"serial-story-subscription/internal/domain/ports/repository"
)

// Compile-time check
var _ CheckoutUseCase = (*checkoutUC)(nil)

type CheckoutUseCase interface {
	// CreateCheckout resolves the story and buyer, registers a checkout
	// session with the gateway and returns it. No local state is written;
	// on gateway failure the caller simply re-invokes.
	CreateCheckout(ctx context.Context, storyID, userID string) (*model.CheckoutSession, error)
}

type checkoutUC struct {
	stories    repository.StoryRepository
	users      repository.UserRepository
	gateway    adapter.CheckoutGateway
	currency   string
	successURL string
	cancelURL  string
	log        *zerolog.Logger
}

func NewCheckoutUseCase(
	stories repository.StoryRepository,
	users repository.UserRepository,
	gateway adapter.CheckoutGateway,
	currency, successURL, cancelURL string,
	logger *zerolog.Logger,
) *checkoutUC {
	l := logger.With().Str("component", "CheckoutUC").Logger()
	return &checkoutUC{
		stories:    stories,
		users:      users,
		gateway:    gateway,
		currency:   currency,
		successURL: successURL,
		cancelURL:  cancelURL,
		log:        &l,
	}
}

func (u *checkoutUC) CreateCheckout(ctx context.Context, storyID, userID string) (*model.CheckoutSession, error) {
	if storyID == "" || userID == "" {
		return nil, domain.ErrInvalidArgument
	}

	story, err := u.stories.FindByID(ctx, nil, storyID)
	if err != nil {
		u.log.Warn().Str("story_id", storyID).Msg("checkout: story lookup missed")
		return nil, err
	}
	user, err := u.users.FindByID(ctx, nil, userID)
	if err != nil {
		u.log.Warn().Str("user_id", userID).Msg("checkout: user lookup missed")
		return nil, err
	}
	if user.Email == "" {
		return nil, domain.ErrInvalidArgument
	}

	sess, err := u.gateway.CreateSession(ctx, adapter.CreateSessionRequest{
		Title:         story.Title,
		Description:   fmt.Sprintf("By %s - %d chapters delivered daily", story.Author, story.TotalChapters),
		UnitAmount:    story.Price, // already in minor units
		Currency:      u.currency,
		CustomerEmail: user.Email,
		SuccessURL:    u.successURL,
		CancelURL:     u.cancelURL,
		Metadata: model.CheckoutMetadata{
			StoryID:    story.ID,
			UserID:     user.ID,
			StoryTitle: story.Title,
		},
	})
	if err != nil {
		u.log.Error().Err(err).Str("story_id", storyID).Msg("checkout: gateway session creation failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}

	u.log.Info().Str("story_id", storyID).Str("session_id", sess.ID).Msg("checkout session created")
	return sess, nil
}
