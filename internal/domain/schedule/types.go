package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is one entry in the daily schedule. Time is a 24-hour "HH:MM"
// string; keeping it textual makes chronological order plain string order.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Time      string    `json:"time"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AddRequest is the submission payload for a new event.
type AddRequest struct {
	Title string `json:"title"`
	Time  string `json:"time"`
	Icon  string `json:"icon"`
}

// Repository persists schedule events.
type Repository interface {
	Insert(ctx context.Context, event Event) error
	List(ctx context.Context) ([]Event, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
