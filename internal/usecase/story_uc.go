package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"serial-story-subscription/internal/domain"
	"serial-story-subscription/internal/domain/model"
	"serial-story-subscription/internal/domain/ports/repository"
)

var _ StoryUseCase = (*storyUC)(nil)

type StoryUseCase interface {
	Get(ctx context.Context, id string) (*model.Story, error)
	ListPublished(ctx context.Context) ([]*model.Story, error)

	// Admin operations; every mutation lands in the audit trail.
	Create(ctx context.Context, adminID, title, author, description string, price int64, totalChapters int) (*model.Story, error)
	Publish(ctx context.Context, adminID, id string) (*model.Story, error)
	Archive(ctx context.Context, adminID, id string) error
}

type storyUC struct {
	stories repository.StoryRepository
	audit   repository.AdminActionRepository
	log     *zerolog.Logger
}

func NewStoryUseCase(stories repository.StoryRepository, audit repository.AdminActionRepository, logger *zerolog.Logger) *storyUC {
	l := logger.With().Str("component", "StoryUC").Logger()
	return &storyUC{stories: stories, audit: audit, log: &l}
}

func (u *storyUC) Get(ctx context.Context, id string) (*model.Story, error) {
	if id == "" {
		return nil, domain.ErrInvalidArgument
	}
	return u.stories.FindByID(ctx, nil, id)
}

func (u *storyUC) ListPublished(ctx context.Context) ([]*model.Story, error) {
	return u.stories.ListPublished(ctx, nil)
}

func (u *storyUC) Create(ctx context.Context, adminID, title, author, description string, price int64, totalChapters int) (*model.Story, error) {
	story, err := model.NewStory("", title, author, description, price, totalChapters)
	if err != nil {
		return nil, err
	}
	if err := u.stories.Save(ctx, nil, story); err != nil {
		return nil, err
	}
	u.recordAction(ctx, adminID, "story.create", story.ID)
	return story, nil
}

func (u *storyUC) Publish(ctx context.Context, adminID, id string) (*model.Story, error) {
	story, err := u.stories.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if story.Status == model.StoryStatusArchived {
		return nil, domain.ErrInvalidArgument
	}
	story.Status = model.StoryStatusPublished
	story.UpdatedAt = time.Now()
	if err := u.stories.Save(ctx, nil, story); err != nil {
		return nil, err
	}
	u.recordAction(ctx, adminID, "story.publish", story.ID)
	return story, nil
}

func (u *storyUC) Archive(ctx context.Context, adminID, id string) error {
	if err := u.stories.Archive(ctx, nil, id); err != nil {
		return err
	}
	u.recordAction(ctx, adminID, "story.archive", id)
	return nil
}

// recordAction is best-effort: a failed audit write never rolls back the
// mutation it describes.
func (u *storyUC) recordAction(ctx context.Context, adminID, action, storyID string) {
	a := model.NewAdminAction(adminID, action, "story", storyID)
	if err := u.audit.Insert(ctx, nil, a); err != nil {
		u.log.Warn().Err(err).Str("action", action).Str("story_id", storyID).Msg("audit write failed")
	}
}
