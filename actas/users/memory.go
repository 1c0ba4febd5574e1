package users

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// in-process Store for tests and local development. The external id index
// plays the role of the unique constraint.
type MemoryRepository struct {
	mu         sync.RWMutex
	byID       map[string]*User
	byExternal map[string]string
}

var _ Store = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:       make(map[string]*User),
		byExternal: make(map[string]string),
	}
}

func (m *MemoryRepository) FindByExternalID(_ context.Context, externalID string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, exists := m.byExternal[externalID]
	if !exists {
		return nil, ErrNotFound
	}

	u := *m.byID[id]
	return &u, nil
}

func (m *MemoryRepository) FindByID(_ context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.byID[id]
	if !exists {
		return nil, ErrNotFound
	}

	u := *user
	return &u, nil
}

func (m *MemoryRepository) Create(_ context.Context, p CreateParams) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byExternal[p.ExternalID]; exists {
		return nil, ErrDuplicateExternalID
	}

	now := time.Now().UTC()
	verifiedAt := p.EmailVerifiedAt

	user := &User{
		ID:              uuid.NewString(),
		Name:            p.Name,
		Email:           p.Email,
		ExternalID:      p.ExternalID,
		AvatarURL:       p.AvatarURL,
		EmailVerifiedAt: &verifiedAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	m.byID[user.ID] = user
	m.byExternal[user.ExternalID] = user.ID

	u := *user
	return &u, nil
}

func (m *MemoryRepository) UpdateAvatar(_ context.Context, id string, avatarURL *string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, exists := m.byID[id]
	if !exists {
		return nil, ErrNotFound
	}

	user.AvatarURL = avatarURL
	user.UpdatedAt = time.Now().UTC()

	u := *user
	return &u, nil
}

func (m *MemoryRepository) List(_ context.Context, limit, offset int) ([]User, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]User, 0, len(m.byID))
	for _, user := range m.byID {
		all = append(all, *user)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	if offset >= total {
		return []User{}, total, nil
	}

	end := min(offset+limit, total)
	return all[offset:end], total, nil
}

// number of stored users
func (m *MemoryRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.byID)
}
