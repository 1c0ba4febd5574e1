package users

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("user not found")

	// returned by Create when another request inserted the same external id first
	ErrDuplicateExternalID = errors.New("user with this external id already exists")
)

// handles user database operations
type Repository struct {
	db *pgxpool.Pool
}

// represents a local user linked to one identity provider account.
// AvatarURL is "" when the provider has no avatar; nil only appears on rows
// written outside the Reconciler.
type User struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	ExternalID      string     `json:"external_id"`
	AvatarURL       *string    `json:"avatar_url"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// the provider's view of a user after a code exchange
type ExternalIdentity struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	AvatarURL string
}

// fields written when a user is first seen
type CreateParams struct {
	Name            string
	Email           string
	ExternalID      string
	AvatarURL       *string
	EmailVerifiedAt time.Time
}

// the persistence operations the reconciler and admin views need
type Store interface {
	FindByExternalID(ctx context.Context, externalID string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, p CreateParams) (*User, error)
	UpdateAvatar(ctx context.Context, id string, avatarURL *string) (*User, error)
	List(ctx context.Context, limit, offset int) ([]User, int, error)
}
