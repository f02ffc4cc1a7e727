package model

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// AdminAction is one entry in the audit trail of admin mutations
// (story publishing, archival, user role changes). ULIDs keep the
// trail lexically sortable by creation time.
type AdminAction struct {
	ID         string
	AdminID    string
	Action     string // e.g. "story.create", "story.archive"
	TargetType string // "story" | "user" | "subscription"
	TargetID   string
	CreatedAt  time.Time
}

func NewAdminAction(adminID, action, targetType, targetID string) *AdminAction {
	return &AdminAction{
		ID:         ulid.Make().String(),
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		CreatedAt:  time.Now(),
	}
}
