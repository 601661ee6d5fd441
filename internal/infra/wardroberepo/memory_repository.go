package wardroberepo

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/linjia/ai-closet/internal/domain/wardrobe"
)

type memoryItem struct {
	item      wardrobe.Item
	embedding []float32
}

// MemoryRepository is an in-memory wardrobe.Repository used for tests/dev.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]memoryItem
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[uuid.UUID]memoryItem)}
}

// Insert implements wardrobe.Repository.
func (r *MemoryRepository) Insert(_ context.Context, item wardrobe.Item, embedding []float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = memoryItem{
		item:      item,
		embedding: append([]float32(nil), embedding...),
	}
	return nil
}

// List implements wardrobe.Repository, returning items newest first.
func (r *MemoryRepository) List(_ context.Context) ([]wardrobe.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]wardrobe.Item, 0, len(r.items))
	for _, entry := range r.items {
		out = append(out, entry.item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Get implements wardrobe.Repository.
func (r *MemoryRepository) Get(_ context.Context, id uuid.UUID) (wardrobe.Item, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.items[id]
	if !ok {
		return wardrobe.Item{}, false, nil
	}
	return entry.item, true, nil
}

// Delete implements wardrobe.Repository.
func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

// FindNearest implements wardrobe.Repository. Items without an embedding are
// skipped.
func (r *MemoryRepository) FindNearest(_ context.Context, embedding []float32) (wardrobe.SimilarityMatch, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var (
		best   wardrobe.SimilarityMatch
		hasAny bool
	)
	for _, candidate := range r.items {
		if len(candidate.embedding) == 0 {
			continue
		}
		dist := euclideanDistance(embedding, candidate.embedding)
		if !hasAny || dist < best.Distance {
			hasAny = true
			best = wardrobe.SimilarityMatch{Item: candidate.item, Distance: dist}
		}
	}
	if !hasAny {
		return wardrobe.SimilarityMatch{}, false, nil
	}
	return best, true, nil
}

func euclideanDistance(a, b []float32) float64 {
	length := len(a)
	if len(b) < length {
		length = len(b)
	}
	var sum float64
	for i := 0; i < length; i++ {
		diff := float64(a[i] - b[i])
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

var _ wardrobe.Repository = (*MemoryRepository)(nil)
