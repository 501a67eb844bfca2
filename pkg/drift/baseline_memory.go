package drift

import (
	"context"
	"sync"
)

// MemoryStore is a process-local baseline store.
type MemoryStore struct {
	mu        sync.RWMutex
	baselines map[string]string
}

// NewMemoryStore creates an empty in-memory baseline store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{baselines: make(map[string]string)}
}

// Get returns the stored digest for key.
func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	digest, ok := s.baselines[key]
	if !ok {
		return "", ErrNoBaseline
	}
	return digest, nil
}

// Put records the digest for key, replacing any prior baseline.
func (s *MemoryStore) Put(_ context.Context, key, digest string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baselines[key] = digest
	return nil
}
