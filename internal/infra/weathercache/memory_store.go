package weathercache

import (
	"context"
	"sync"

	"github.com/linjia/ai-closet/internal/domain/weather"
)

// MemoryStore is an in-memory weather.Store used for tests/dev. Staleness is
// judged by the service from FetchedAt, so entries are never evicted here.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]weather.Snapshot
}

// NewMemoryStore constructs the store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string]weather.Snapshot)}
}

// Get implements weather.Store.
func (s *MemoryStore) Get(_ context.Context, key string) (weather.Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.snapshots[key]
	return snapshot, ok, nil
}

// Save implements weather.Store.
func (s *MemoryStore) Save(_ context.Context, key string, snapshot weather.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[key] = snapshot
	return nil
}

var _ weather.Store = (*MemoryStore)(nil)
