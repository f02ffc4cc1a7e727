package repository

import (
	"context"

	"serial-story-subscription/internal/domain/model"
)

// SubscriptionRepository is the port for story subscriptions.
//
// Insert is a plain INSERT (no upsert): the store's unique constraint on
// (user_id, story_id) is the authoritative duplicate guard, and callers rely
// on ErrAlreadyExists to detect a raced activation.
type SubscriptionRepository interface {
	Insert(ctx context.Context, tx Tx, s *model.Subscription) error
	Update(ctx context.Context, tx Tx, s *model.Subscription) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Subscription, error)
	FindByUserAndStory(ctx context.Context, tx Tx, userID, storyID string) (*model.Subscription, error)
	ListByUser(ctx context.Context, tx Tx, userID string) ([]*model.Subscription, error)
	ListActive(ctx context.Context, tx Tx) ([]*model.Subscription, error)

	// CountByStatus feeds the admin dashboard and the subscriptions gauge.
	CountByStatus(ctx context.Context, tx Tx) (map[model.SubscriptionStatus]int, error)
}

// AdminActionRepository records the admin audit trail.
type AdminActionRepository interface {
	Insert(ctx context.Context, tx Tx, a *model.AdminAction) error
	ListRecent(ctx context.Context, tx Tx, limit int) ([]*model.AdminAction, error)
}
