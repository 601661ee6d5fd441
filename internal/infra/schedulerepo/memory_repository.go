package schedulerepo

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/linjia/ai-closet/internal/domain/schedule"
)

// MemoryRepository is an in-memory schedule.Repository used for tests/dev.
type MemoryRepository struct {
	mu     sync.RWMutex
	events map[uuid.UUID]schedule.Event
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{events: make(map[uuid.UUID]schedule.Event)}
}

// Insert implements schedule.Repository.
func (r *MemoryRepository) Insert(_ context.Context, event schedule.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event.ID] = event
	return nil
}

// List implements schedule.Repository. Ordering is the service's concern.
func (r *MemoryRepository) List(_ context.Context) ([]schedule.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]schedule.Event, 0, len(r.events))
	for _, event := range r.events {
		out = append(out, event)
	}
	return out, nil
}

// Delete implements schedule.Repository.
func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return false, nil
	}
	delete(r.events, id)
	return true, nil
}

var _ schedule.Repository = (*MemoryRepository)(nil)
