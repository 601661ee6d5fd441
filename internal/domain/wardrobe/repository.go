package wardrobe

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// Repository persists wardrobe items together with an optional description
// embedding used for similarity lookups.
type Repository interface {
	Insert(ctx context.Context, item Item, embedding []float32) error
	List(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, id uuid.UUID) (Item, bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	FindNearest(ctx context.Context, embedding []float32) (SimilarityMatch, bool, error)
}

// SimilarityMatch pairs the closest wardrobe item with its distance.
type SimilarityMatch struct {
	Item     Item
	Distance float64
}

// PhotoStore keeps uploaded clothing photos.
type PhotoStore interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) (StoredPhoto, error)
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
}

// StoredPhoto describes a stored object.
type StoredPhoto struct {
	Key      string
	Size     int64
	MimeType string
}
