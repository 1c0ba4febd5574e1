package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

var _ Store = (*Repository)(nil)

// creates a new user repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func scanUser(row pgx.Row) (*User, error) {
	var user User

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.ExternalID,
		&user.AvatarURL,
		&user.EmailVerifiedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// finds the user linked to a provider account
func (r *Repository) FindByExternalID(ctx context.Context, externalID string) (*User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, queryFindByExternalID, externalID))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to find user by external id: %w", err)
	}

	return user, err
}

// finds a user by their ID
func (r *Repository) FindByID(ctx context.Context, id string) (*User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, queryFindByID, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, err
}

// inserts a new user; a concurrent insert of the same external id surfaces
// as ErrDuplicateExternalID
func (r *Repository) Create(ctx context.Context, p CreateParams) (*User, error) {
	user, err := scanUser(r.db.QueryRow(
		ctx,
		queryCreate,
		p.Name,
		p.Email,
		p.ExternalID,
		p.AvatarURL,
		p.EmailVerifiedAt,
	))

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return nil, ErrDuplicateExternalID
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// refreshes the avatar; every other field is left as created
func (r *Repository) UpdateAvatar(ctx context.Context, id string, avatarURL *string) (*User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, queryUpdateAvatar, avatarURL, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}

	return user, err
}

// returns a page of users, newest first, and the total count
func (r *Repository) List(ctx context.Context, limit, offset int) ([]User, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, queryCount).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	rows, err := r.db.Query(ctx, queryList, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	defer rows.Close()

	list := []User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}

		list = append(list, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate users: %w", err)
	}

	return list, total, nil
}
