package session

import (
	"context"
	"sync"
	"time"
)

// in-process backend for tests and single-node development
type MemoryBackend struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	data      string
	expiresAt time.Time
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{entries: make(map[string]memoryEntry)}
}

func (b *MemoryBackend) Load(_ context.Context, id string) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	entry, exists := b.entries[id]
	if !exists || time.Now().After(entry.expiresAt) {
		return "", ErrNotFound
	}

	return entry.data, nil
}

func (b *MemoryBackend) Save(_ context.Context, id, data string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[id] = memoryEntry{data: data, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.entries, id)
	return nil
}

// returns the number of live sessions
func (b *MemoryBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	now := time.Now()
	n := 0
	for _, entry := range b.entries {
		if now.Before(entry.expiresAt) {
			n++
		}
	}

	return n
}
