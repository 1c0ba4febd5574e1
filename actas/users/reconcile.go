package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codeberg.org/actas/server/internal/events"
)

// Reconciler maps a provider identity onto exactly one local user.
type Reconciler struct {
	store  Store
	events events.Emitter
	now    func() time.Time
}

func NewReconciler(store Store, emitter events.Emitter) *Reconciler {
	return &Reconciler{
		store:  store,
		events: events.OrNop(emitter),
		now:    time.Now,
	}
}

// finds, creates or refreshes the local user for an external identity.
// Name and email are only written on creation; later logins refresh the
// avatar. A lost creation race is resolved by looking the winner up again.
func (r *Reconciler) Reconcile(ctx context.Context, identity ExternalIdentity) (*User, error) {
	user, err := r.store.FindByExternalID(ctx, identity.ID)
	if err == nil {
		return r.refresh(ctx, user, identity)
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	user, err = r.store.Create(ctx, CreateParams{
		Name:            identity.FirstName + " " + identity.LastName,
		Email:           identity.Email,
		ExternalID:      identity.ID,
		AvatarURL:       avatarValue(identity.AvatarURL),
		EmailVerifiedAt: r.now().UTC(),
	})

	if errors.Is(err, ErrDuplicateExternalID) {
		existing, findErr := r.store.FindByExternalID(ctx, identity.ID)
		if findErr != nil {
			return nil, fmt.Errorf("failed to load user after duplicate insert: %w", findErr)
		}

		return r.refresh(ctx, existing, identity)
	}

	if err != nil {
		return nil, err
	}

	r.events.Emit(ctx, events.Event{
		Type:   events.TypeUserRegistered,
		UserID: user.ID,
		Data:   map[string]any{"external_id": user.ExternalID},
	})

	return user, nil
}

func (r *Reconciler) refresh(ctx context.Context, user *User, identity ExternalIdentity) (*User, error) {
	avatar := avatarValue(identity.AvatarURL)
	if sameAvatar(user.AvatarURL, avatar) {
		return user, nil
	}

	return r.store.UpdateAvatar(ctx, user.ID, avatar)
}

// a missing avatar is stored as "", never NULL
func avatarValue(url string) *string {
	return &url
}

func sameAvatar(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}
