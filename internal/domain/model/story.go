package model

import (
	"time"

	"serial-story-subscription/internal/domain"

	"github.com/google/uuid"
)

type StoryStatus string

const (
	StoryStatusDraft     StoryStatus = "draft"
	StoryStatusPublished StoryStatus = "published"
	StoryStatusArchived  StoryStatus = "archived"
)

// Story is a serialized work readers can subscribe to. Price is stored in
// minor currency units (cents) to avoid float errors; checkout passes it to
// the gateway verbatim.
type Story struct {
	ID            string
	Title         string
	Author        string
	Description   string
	Price         int64
	TotalChapters int
	Status        StoryStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewStory(id, title, author, description string, price int64, totalChapters int) (*Story, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if title == "" || author == "" {
		return nil, domain.ErrInvalidArgument
	}
	if price <= 0 || totalChapters <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Story{
		ID:            id,
		Title:         title,
		Author:        author,
		Description:   description,
		Price:         price,
		TotalChapters: totalChapters,
		Status:        StoryStatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (s *Story) IsPublished() bool { return s != nil && s.Status == StoryStatusPublished }
