package model

import (
	"strings"
	"time"

	"serial-story-subscription/internal/domain"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleReader UserRole = "reader"
	UserRoleAdmin  UserRole = "admin"
)

// User is a reader profile. Email is required because chapters are delivered
// by email and checkout pre-fills the gateway's payment form with it.
type User struct {
	ID           string
	Email        string
	Name         string
	Role         UserRole
	RegisteredAt time.Time
	LastActiveAt time.Time
}

func NewUser(id, email, name string) (*User, error) {
	if id == "" {
		id = uuid.NewString()
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &User{
		ID:           id,
		Email:        email,
		Name:         name,
		Role:         UserRoleReader,
		RegisteredAt: now,
		LastActiveAt: now,
	}, nil
}

func (u *User) IsZero() bool  { return u == nil || u.ID == "" }
func (u *User) IsAdmin() bool { return u != nil && u.Role == UserRoleAdmin }
func (u *User) Touch()        { u.LastActiveAt = time.Now() }
