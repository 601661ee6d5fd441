package weather

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/linjia/ai-closet/pkg/util"
)

// Service reports current conditions for the user's location.
type Service interface {
	Report(ctx context.Context, coords *Coordinates) (Report, error)
}

// Coordinates is a latitude/longitude pair. A nil pair means the caller
// could not determine a location.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type service struct {
	cfg    Config
	client Client
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the weather domain.
func NewService(cfg Config, client Client, store Store, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		client: client,
		store:  store,
		logger: logger.With("component", "weather.service"),
		now:    util.NowUTC,
	}
}

// Report returns cached or freshly fetched conditions. Missing coordinates
// and upstream failures both degrade to the fallback greeting.
func (s *service) Report(ctx context.Context, coords *Coordinates) (Report, error) {
	if coords == nil {
		return Report{Available: false, Greeting: s.cfg.FallbackGreeting}, nil
	}

	key := cacheKey(coords.Lat, coords.Lon)
	if snapshot, ok, err := s.store.Get(ctx, key); err != nil {
		s.logger.Warn("weather cache read failed", "error", err)
	} else if ok && s.now().Sub(snapshot.FetchedAt) < s.cfg.CacheTTL {
		return s.describe(snapshot), nil
	}

	snapshot, err := s.client.Current(ctx, coords.Lat, coords.Lon)
	if err != nil {
		s.logger.Warn("weather fetch failed, falling back to greeting", "error", err)
		return Report{Available: false, Greeting: s.cfg.FallbackGreeting}, nil
	}
	snapshot.FetchedAt = s.now()
	if err := s.store.Save(ctx, key, snapshot); err != nil {
		s.logger.Warn("weather cache write failed", "error", err)
	}
	return s.describe(snapshot), nil
}

func (s *service) describe(snapshot Snapshot) Report {
	description := Describe(snapshot.Code)
	return Report{
		Available:   true,
		Snapshot:    &snapshot,
		Description: description,
		Icon:        Icon(snapshot.Code, snapshot.IsDay),
		Context:     fmt.Sprintf("%.0f°C, %s", snapshot.Temperature, description),
	}
}

// cacheKey rounds coordinates to two decimals so nearby requests share an
// entry (roughly a 1km grid).
func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("wx:%.2f:%.2f", lat, lon)
}

// Icon maps a WMO weather code onto a display icon. Heavy precipitation
// always wins; clear skies split on day versus night.
func Icon(code int, isDay bool) string {
	switch {
	case code > 60:
		return "rain"
	case code <= 3 && isDay:
		return "sun"
	case code <= 3:
		return "moon"
	case code > 50:
		return "drizzle"
	default:
		return "cloud"
	}
}

// Describe renders a WMO weather code as a short human phrase.
func Describe(code int) string {
	switch {
	case code == 0:
		return "clear sky"
	case code <= 3:
		return "partly cloudy"
	case code <= 48:
		return "foggy"
	case code <= 57:
		return "drizzle"
	case code <= 67:
		return "rain"
	case code <= 77:
		return "snow"
	case code <= 82:
		return "rain showers"
	case code <= 86:
		return "snow showers"
	default:
		return "thunderstorm"
	}
}
