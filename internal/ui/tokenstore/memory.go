package tokenstore

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	token     string
	expiresAt time.Time
}

// MemoryStore is a process-local Store for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates a MemoryStore. A zero ttl keeps entries forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, session string) (string, error) {
	s.mu.RLock()
	e, ok := s.entries[session]
	s.mu.RUnlock()

	if !ok {
		return "", ErrNotFound
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, session)
		s.mu.Unlock()
		return "", ErrNotFound
	}
	return e.token, nil
}

func (s *MemoryStore) Set(ctx context.Context, session, token string) error {
	e := entry{token: token}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[session] = e
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, session string) error {
	s.mu.Lock()
	delete(s.entries, session)
	s.mu.Unlock()
	return nil
}
