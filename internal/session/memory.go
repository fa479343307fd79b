package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	userID    uint64
	expiresAt time.Time
}

// MemoryStore is a process-local Store used when Redis is unreachable and
// in tests. Expiry is lazy: an expired entry is removed on the next Get
// that touches it.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore returns an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, tokenHash string, userID uint64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[tokenHash] = memoryEntry{userID: userID, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, tokenHash string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[tokenHash]
	if !ok {
		return 0, ErrNoSession
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, tokenHash)
		return 0, ErrNoSession
	}
	return e.userID, nil
}

func (s *MemoryStore) Delete(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, tokenHash)
	return nil
}
