package session

import (
	"context"
	"errors"
	"time"
)

const (
	// cookie carrying the signed session id
	DefaultName = "actas_session"

	KeyUserID       = "user_id"
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyCSRFToken    = "_token"

	CSRFHeader = "X-CSRF-Token"
	CSRFField  = "_token"
)

var ErrNotFound = errors.New("session: not found")

// Backend persists encoded session payloads by id. Implementations must
// treat each id independently; the core never locks across sessions.
type Backend interface {
	Load(ctx context.Context, id string) (string, error)
	Save(ctx context.Context, id, data string, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
