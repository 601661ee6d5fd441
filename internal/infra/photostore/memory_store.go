package photostore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/linjia/ai-closet/internal/domain/wardrobe"
)

// MemoryStore keeps photos in memory. Useful for tests and local dev.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]storedBlob
}

type storedBlob struct {
	data     []byte
	mimeType string
}

// NewMemoryStore constructs the store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]storedBlob)}
}

// Put stores the photo and returns metadata.
func (s *MemoryStore) Put(_ context.Context, key string, data []byte, mimeType string) (wardrobe.StoredPhoto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = storedBlob{data: append([]byte(nil), data...), mimeType: mimeType}
	return wardrobe.StoredPhoto{
		Key:      key,
		Size:     int64(len(data)),
		MimeType: mimeType,
	}, nil
}

// Get returns a reader for the stored photo and its content type.
func (s *MemoryStore) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, "", fmt.Errorf("photo not found: %s", key)
	}
	return io.NopCloser(bytes.NewReader(blob.data)), blob.mimeType, nil
}

// Delete removes the photo.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

var _ wardrobe.PhotoStore = (*MemoryStore)(nil)
