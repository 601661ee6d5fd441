package wishlistrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/linjia/ai-closet/internal/domain/wishlist"
)

// MemoryRepository is an in-memory wishlist.Repository used for tests/dev.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]wishlist.Item
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[uuid.UUID]wishlist.Item)}
}

// Insert implements wishlist.Repository.
func (r *MemoryRepository) Insert(_ context.Context, item wishlist.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

// List implements wishlist.Repository, returning items newest first.
func (r *MemoryRepository) List(_ context.Context) ([]wishlist.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]wishlist.Item, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete implements wishlist.Repository.
func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

var _ wishlist.Repository = (*MemoryRepository)(nil)
