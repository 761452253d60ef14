package session

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"designforge/internal/domain"
)

const (
	// DefaultTTL bounds how long an idle session survives in memory.
	DefaultTTL = 24 * time.Hour

	cleanupInterval = time.Hour
)

// MemoryStore keeps sessions in an in-process TTL cache. It is the default
// store when no database is configured.
type MemoryStore struct {
	cache *gocache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{cache: gocache.New(ttl, cleanupInterval)}
}

func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	if err := m.cache.Add(s.ID, s.Clone(), gocache.DefaultExpiration); err != nil {
		return fmt.Errorf("session: create %s: %w", s.ID, err)
	}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	v, ok := m.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	stored, ok := v.(*Session)
	if !ok {
		return nil, fmt.Errorf("session %s: unexpected cache entry", id)
	}
	// Hand out a copy so callers can abandon a failed draft.
	return stored.Clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	s.UpdatedAt = time.Now().UTC()
	m.cache.Set(s.ID, s.Clone(), gocache.DefaultExpiration)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.cache.Delete(id)
	return nil
}

var _ Store = (*MemoryStore)(nil)
