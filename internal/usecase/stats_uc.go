package usecase

import (
	"context"

	"serial-story-subscription/internal/domain/model"
	"serial-story-subscription/internal/domain/ports/repository"
)

var _ StatsUseCase = (*statsUC)(nil)

// Totals is the dashboard snapshot served by the admin API.
type Totals struct {
	Users            int
	PublishedStories int
	SubsByStatus     map[model.SubscriptionStatus]int
}

type StatsUseCase interface {
	Totals(ctx context.Context) (*Totals, error)
	// RecentActions returns the newest audit-trail entries, most recent first.
	RecentActions(ctx context.Context, limit int) ([]*model.AdminAction, error)
}

type statsUC struct {
	users   repository.UserRepository
	stories repository.StoryRepository
	subs    repository.SubscriptionRepository
	audit   repository.AdminActionRepository
}

func NewStatsUseCase(
	users repository.UserRepository,
	stories repository.StoryRepository,
	subs repository.SubscriptionRepository,
	audit repository.AdminActionRepository,
) *statsUC {
	return &statsUC{users: users, stories: stories, subs: subs, audit: audit}
}

func (u *statsUC) Totals(ctx context.Context) (*Totals, error) {
	users, err := u.users.CountUsers(ctx, nil)
	if err != nil {
		return nil, err
	}
	stories, err := u.stories.CountPublished(ctx, nil)
	if err != nil {
		return nil, err
	}
	byStatus, err := u.subs.CountByStatus(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Totals{Users: users, PublishedStories: stories, SubsByStatus: byStatus}, nil
}

func (u *statsUC) RecentActions(ctx context.Context, limit int) ([]*model.AdminAction, error) {
	return u.audit.ListRecent(ctx, nil, limit)
}
