package repository

import (
	"context"

	"serial-story-subscription/internal/domain/model"
)

// StoryRepository is the port for the story catalog.
type StoryRepository interface {
	Save(ctx context.Context, tx Tx, story *model.Story) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Story, error)
	ListPublished(ctx context.Context, tx Tx) ([]*model.Story, error)
	CountPublished(ctx context.Context, tx Tx) (int, error)
	Archive(ctx context.Context, tx Tx, id string) error
}

// ChapterRepository serves installments for delivery.
type ChapterRepository interface {
	Save(ctx context.Context, tx Tx, ch *model.Chapter) error
	FindByStoryAndPosition(ctx context.Context, tx Tx, storyID string, position int) (*model.Chapter, error)
	CountByStory(ctx context.Context, tx Tx, storyID string) (int, error)
}
