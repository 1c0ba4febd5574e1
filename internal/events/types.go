package events

import (
	"context"
	"time"
)

const (
	TypeAuthTransition       = "auth.transition"
	TypeUserRegistered       = "user.registered"
	TypeImpersonationStopped = "impersonation.stopped"
)

// Event is one structured record of something the auth core did. Auth
// transitions carry the attempt id so a whole login can be reassembled.
type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Attempt    string         `json:"attempt,omitempty"`
	State      string         `json:"state,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	UserID     string         `json:"user_id,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Emitter receives events. Emit must not block the request path for long
// and its failures never change the outcome of the operation that emitted.
type Emitter interface {
	Emit(ctx context.Context, e Event)
}
