package userrepo

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/linjia/ai-closet/internal/domain/auth"
)

// MemoryRepository is an in-memory auth.Repository used for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]auth.User
	byEmail map[string]uuid.UUID
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:   make(map[uuid.UUID]auth.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

// Insert implements auth.Repository.
func (r *MemoryRepository) Insert(_ context.Context, user auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	r.byEmail[strings.ToLower(user.Email)] = user.ID
	return nil
}

// FindByEmail implements auth.Repository.
func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (auth.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return auth.User{}, false, nil
	}
	return r.users[id], true, nil
}

// FindByID implements auth.Repository.
func (r *MemoryRepository) FindByID(_ context.Context, id uuid.UUID) (auth.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return auth.User{}, false, nil
	}
	return user, true, nil
}

var _ auth.Repository = (*MemoryRepository)(nil)
