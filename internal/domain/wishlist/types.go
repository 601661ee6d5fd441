package wishlist

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/linjia/ai-closet/internal/domain/wardrobe"
)

// Item is a wished-for purchase.
type Item struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	PhotoKey  string    `json:"photoKey"`
	Link      string    `json:"link,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Analysis is the result of inspecting a candidate photo: a suggested name
// from classification plus a duplicate warning when the wardrobe likely
// already holds something equivalent.
type Analysis struct {
	PhotoKey      string            `json:"photoKey"`
	SuggestedName string            `json:"suggestedName"`
	Category      wardrobe.Category `json:"category"`
	Duplicate     bool              `json:"duplicate"`
	Warning       string            `json:"warning,omitempty"`
	MatchedItemID *uuid.UUID        `json:"matchedItemId,omitempty"`
}

// AddRequest is the submission payload. Price arrives as raw text and is
// parsed leniently.
type AddRequest struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	PhotoKey string `json:"photoKey"`
	Link     string `json:"link"`
}

// Repository persists wishlist items.
type Repository interface {
	Insert(ctx context.Context, item Item) error
	List(ctx context.Context) ([]Item, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// Config wires runtime settings for the wishlist domain.
type Config struct {
	Model               string
	Temperature         float32
	Prompt              string
	SimilarityThreshold float64
}
