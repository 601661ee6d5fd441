package weather

import (
	"context"
	"time"
)

// Snapshot is a point-in-time reading for one location.
type Snapshot struct {
	Temperature float64   `json:"temperature"`
	Code        int       `json:"code"`
	IsDay       bool      `json:"isDay"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Report is what callers render: either real conditions or, when no
// location is available, a friendly greeting with Available=false.
type Report struct {
	Available   bool      `json:"available"`
	Greeting    string    `json:"greeting,omitempty"`
	Snapshot    *Snapshot `json:"snapshot,omitempty"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Context     string    `json:"context,omitempty"`
}

// Client fetches current conditions from an upstream provider.
type Client interface {
	Current(ctx context.Context, lat, lon float64) (Snapshot, error)
}

// Store caches snapshots per rounded coordinate pair.
type Store interface {
	Get(ctx context.Context, key string) (Snapshot, bool, error)
	Save(ctx context.Context, key string, snapshot Snapshot) error
}

// Config wires runtime settings for the weather domain.
type Config struct {
	CacheTTL         time.Duration
	FallbackGreeting string
}
