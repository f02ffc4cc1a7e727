package model

import (
	"time"

	"serial-story-subscription/internal/domain"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusCompleted SubscriptionStatus = "completed"
)

// Subscription entitles one user to the serialized delivery of one story.
// At most one row may exist per (UserID, StoryID); the store enforces this
// with a unique constraint and the activator treats a duplicate insert as
// "already active" rather than an error.
type Subscription struct {
	ID                 string
	UserID             string
	StoryID            string
	Status             SubscriptionStatus
	CurrentChapter     int    // chapters delivered so far, 0 right after activation
	PaymentReferenceID string // gateway payment-intent id recorded at activation
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewSubscription creates the activation record for a confirmed payment.
func NewSubscription(id, userID, storyID, paymentReferenceID string) (*Subscription, error) {
	if id == "" || userID == "" || storyID == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Subscription{
		ID:                 id,
		UserID:             userID,
		StoryID:            storyID,
		Status:             SubscriptionStatusActive,
		CurrentChapter:     0,
		PaymentReferenceID: paymentReferenceID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// Advance records delivery of the next chapter and completes the subscription
// once every chapter of the story has gone out.
func (s *Subscription) Advance(totalChapters int) error {
	if s.Status != SubscriptionStatusActive {
		return domain.ErrInvalidArgument
	}
	s.CurrentChapter++
	if s.CurrentChapter >= totalChapters {
		s.Status = SubscriptionStatusCompleted
	}
	s.UpdatedAt = time.Now()
	return nil
}

func (s *Subscription) Cancel() error {
	if s.Status != SubscriptionStatusActive {
		return domain.ErrInvalidArgument
	}
	s.Status = SubscriptionStatusCancelled
	s.UpdatedAt = time.Now()
	return nil
}
