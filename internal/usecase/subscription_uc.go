package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"serial-story-subscription/internal/domain"
	"serial-story-subscription/internal/domain/model"
	"serial-story-subscription/internal/domain/ports/repository"
)

var _ SubscriptionUseCase = (*subscriptionUC)(nil)

// SubscriptionView pairs a subscription with its story for display.
type SubscriptionView struct {
	Subscription  *model.Subscription
	StoryTitle    string
	TotalChapters int
}

type SubscriptionUseCase interface {
	ListByUser(ctx context.Context, userID string) ([]*SubscriptionView, error)
	// Cancel stops delivery; only the owning user may cancel.
	Cancel(ctx context.Context, userID, subscriptionID string) error
	CountByStatus(ctx context.Context) (map[model.SubscriptionStatus]int, error)
}

type subscriptionUC struct {
	subs    repository.SubscriptionRepository
	stories repository.StoryRepository
	log     *zerolog.Logger
}

func NewSubscriptionUseCase(subs repository.SubscriptionRepository, stories repository.StoryRepository, logger *zerolog.Logger) *subscriptionUC {
	l := logger.With().Str("component", "SubscriptionUC").Logger()
	return &subscriptionUC{subs: subs, stories: stories, log: &l}
}

func (u *subscriptionUC) ListByUser(ctx context.Context, userID string) ([]*SubscriptionView, error) {
	if userID == "" {
		return nil, domain.ErrInvalidArgument
	}
	subs, err := u.subs.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*SubscriptionView, 0, len(subs))
	for _, s := range subs {
		view := &SubscriptionView{Subscription: s}
		if story, err := u.stories.FindByID(ctx, nil, s.StoryID); err == nil {
			view.StoryTitle = story.Title
			view.TotalChapters = story.TotalChapters
		}
		out = append(out, view)
	}
	return out, nil
}

func (u *subscriptionUC) Cancel(ctx context.Context, userID, subscriptionID string) error {
	if userID == "" || subscriptionID == "" {
		return domain.ErrInvalidArgument
	}
	sub, err := u.subs.FindByID(ctx, nil, subscriptionID)
	if err != nil {
		return err
	}
	if sub.UserID != userID {
		return domain.ErrNotFound // do not leak other users' subscriptions
	}
	if err := sub.Cancel(); err != nil {
		return err
	}
	if err := u.subs.Update(ctx, nil, sub); err != nil {
		return err
	}
	u.log.Info().Str("subscription_id", subscriptionID).Msg("subscription cancelled")
	return nil
}

func (u *subscriptionUC) CountByStatus(ctx context.Context) (map[model.SubscriptionStatus]int, error) {
	return u.subs.CountByStatus(ctx, nil)
}
