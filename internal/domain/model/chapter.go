package model

import (
	"time"

	"serial-story-subscription/internal/domain"

	"github.com/google/uuid"
)

// Chapter is one installment of a story. Position is 1-based and drives the
// delivery order; Subscription.CurrentChapter counts how many positions have
// already been delivered.
type Chapter struct {
	ID        string
	StoryID   string
	Title     string
	Content   string
	Position  int
	CreatedAt time.Time
}

func NewChapter(storyID, title, content string, position int) (*Chapter, error) {
	if storyID == "" || title == "" || position <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &Chapter{
		ID:        uuid.NewString(),
		StoryID:   storyID,
		Title:     title,
		Content:   content,
		Position:  position,
		CreatedAt: time.Now(),
	}, nil
}
