package store

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// MemoryStore is an in-process [Store] for tests and single-node
// embedding. Expired entries are evicted lazily on access.
type MemoryStore struct {
	mu      sync.Mutex
	refresh map[string]memoryEntry
	revoked map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		refresh: make(map[string]memoryEntry),
		revoked: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) PutRefresh(_ context.Context, principalID, tokenString string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh[principalID] = memoryEntry{
		value:     tokenString,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) GetRefresh(_ context.Context, principalID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.refresh[principalID]
	if !ok {
		return "", ErrNotFound
	}
	if entry.expired(s.now()) {
		delete(s.refresh, principalID)
		return "", ErrNotFound
	}
	return entry.value, nil
}

func (s *MemoryStore) DeleteRefresh(_ context.Context, principalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.refresh, principalID)
	return nil
}

func (s *MemoryStore) ReplaceRefresh(_ context.Context, principalID, expect, next string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.refresh[principalID]
	if !ok || entry.expired(s.now()) || entry.value != expect {
		return ErrConflict
	}
	s.refresh[principalID] = memoryEntry{
		value:     next,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = memoryEntry{
		value:     revokedMarker,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.revoked[jti]
	if !ok {
		return false, nil
	}
	if entry.expired(s.now()) {
		delete(s.revoked, jti)
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) Ping(context.Context) (time.Duration, error) {
	return 0, nil
}
