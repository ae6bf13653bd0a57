package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated LeadFlow account.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	ProfilePic   string
	Phone        string
	Location     string
	DOB          *time.Time
	LastLogin    *time.Time
	LastActive   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Presence is the derived online status shown in the admin user list.
type Presence string

const (
	PresenceActive   Presence = "Active"
	PresenceInactive Presence = "Inactive"
)

// PresenceAt reports whether the user was seen within window before now.
// A user who never sent a heartbeat is inactive.
func (u *User) PresenceAt(now time.Time, window time.Duration) Presence {
	if u.LastActive == nil {
		return PresenceInactive
	}
	if now.Sub(*u.LastActive) <= window {
		return PresenceActive
	}
	return PresenceInactive
}

// Caller returns the identity used for permission decisions.
func (u *User) Caller() Caller {
	return Caller{ID: u.ID, Name: u.Name, Role: u.Role}
}

// Caller is the authenticated principal performing an operation.
type Caller struct {
	ID   uuid.UUID
	Name string
	Role Role
}

// UserWithPresence pairs a user with a computed presence status.
type UserWithPresence struct {
	User
	Status Presence
}
