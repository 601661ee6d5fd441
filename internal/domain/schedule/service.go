package schedule

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/linjia/ai-closet/pkg/errors"
	"github.com/linjia/ai-closet/pkg/util"
)

// Service exposes the daily schedule.
type Service interface {
	Add(ctx context.Context, req AddRequest) (Event, error)
	List(ctx context.Context) ([]Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
	newID  func() uuid.UUID
}

// NewService wires up the schedule domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "schedule.service"),
		now:    util.NowUTC,
		newID:  uuid.New,
	}
}

// Add validates and stores an event. The time must be a 24-hour HH:MM.
func (s *service) Add(ctx context.Context, req AddRequest) (Event, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return Event{}, apperrors.Wrap("invalid_input", "title cannot be empty", nil)
	}
	at, err := time.Parse("15:04", strings.TrimSpace(req.Time))
	if err != nil {
		return Event{}, apperrors.Wrap("invalid_input", "time must be HH:MM in 24-hour format", err)
	}

	event := Event{
		ID:        s.newID(),
		Title:     title,
		Time:      at.Format("15:04"),
		Icon:      strings.TrimSpace(req.Icon),
		CreatedAt: s.now(),
	}
	if err := s.repo.Insert(ctx, event); err != nil {
		return Event{}, apperrors.Wrap("storage_error", "failed to save event", err)
	}
	return event, nil
}

// List returns the day's events in chronological order. Zero-padded HH:MM
// strings order correctly lexicographically; ties break by creation time.
func (s *service) List(ctx context.Context) ([]Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to list events", err)
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Time != events[j].Time {
			return events[i].Time < events[j].Time
		}
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	return events, nil
}

// Delete removes exactly the event with the matching id.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Wrap("storage_error", "failed to delete event", err)
	}
	if !removed {
		return apperrors.Wrap("not_found", "event not found", nil)
	}
	return nil
}
