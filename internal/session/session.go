// Package session tracks a client's login state: it restores a persisted
// session, expires it after a period without user input and sends
// heartbeats while the user is present.
package session

import (
	"errors"
	"time"
)

// ExpiredMessage is shown to the user when a session ends for inactivity.
const ExpiredMessage = "You have been logged out due to inactivity"

var (
	// ErrExpired is returned by Restore when the persisted session was
	// older than the timeout and has been purged.
	ErrExpired = errors.New("session expired")
	// ErrNotAuthenticated is returned when an operation needs a session.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// State is the perceived login state.
type State string

const (
	StateChecking      State = "checking"
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
)

// Event is a user input event.
type Event string

const (
	EventPress       Event = "press"
	EventKey         Event = "key"
	EventScroll      Event = "scroll"
	EventTouchStart  Event = "touch-start"
	EventPointerMove Event = "pointer-move"
)

// Qualifies reports whether e counts as user activity.
func (e Event) Qualifies() bool {
	switch e {
	case EventPress, EventKey, EventScroll, EventTouchStart, EventPointerMove:
		return true
	}
	return false
}

// User is the signed-in account as returned by the login endpoint.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	ProfilePic string `json:"profilePic,omitempty"`
}

// Snapshot is the durable client state.
type Snapshot struct {
	Token        string    `json:"token"`
	User         User      `json:"user"`
	LastActivity time.Time `json:"lastActivity"`
}
