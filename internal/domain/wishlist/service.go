package wishlist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/linjia/ai-closet/internal/domain/wardrobe"
	"github.com/linjia/ai-closet/internal/infra/llm/chatgpt"
	apperrors "github.com/linjia/ai-closet/pkg/errors"
	"github.com/linjia/ai-closet/pkg/util"
)

// Service exposes wishlist capabilities.
type Service interface {
	Analyze(ctx context.Context, photo wardrobe.Photo) (Analysis, error)
	Add(ctx context.Context, req AddRequest) (Item, error)
	List(ctx context.Context) ([]Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ChatClient is the slice of the LLM client the wishlist needs.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// Closet is the wardrobe surface used for duplicate detection.
type Closet interface {
	Catalog(ctx context.Context) ([]wardrobe.Item, error)
	Classify(ctx context.Context, photo wardrobe.Photo) (wardrobe.Classification, error)
	FindSimilar(ctx context.Context, description string) (wardrobe.SimilarityMatch, bool, error)
}

type service struct {
	cfg    Config
	repo   Repository
	closet Closet
	photos wardrobe.PhotoStore
	client ChatClient
	logger *slog.Logger
	now    func() time.Time
	newID  func() uuid.UUID
}

// NewService wires up the wishlist domain.
func NewService(cfg Config, repo Repository, closet Closet, photos wardrobe.PhotoStore, client ChatClient, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		repo:   repo,
		closet: closet,
		photos: photos,
		client: client,
		logger: logger.With("component", "wishlist.service"),
		now:    util.NowUTC,
		newID:  uuid.New,
	}
}

// Analyze stores the photo, then runs classification and the visual
// duplicate check concurrently. Either call failing degrades to a default
// instead of surfacing an error.
func (s *service) Analyze(ctx context.Context, photo wardrobe.Photo) (Analysis, error) {
	if len(photo.Data) == 0 {
		return Analysis{}, apperrors.Wrap("invalid_input", "photo cannot be empty", nil)
	}
	if !strings.HasPrefix(photo.MimeType, "image/") {
		return Analysis{}, apperrors.Wrap("invalid_input", "photo must be an image", nil)
	}

	key := wardrobe.PhotoObjectKey("wishlist", s.newID(), photo.Filename)
	if _, err := s.photos.Put(ctx, key, photo.Data, photo.MimeType); err != nil {
		return Analysis{}, apperrors.Wrap("storage_error", "failed to store photo", err)
	}

	catalog, err := s.closet.Catalog(ctx)
	if err != nil {
		return Analysis{}, err
	}

	var (
		wg  sync.WaitGroup
		cls wardrobe.Classification
		dup duplicateVerdict
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		result, err := s.closet.Classify(ctx, photo)
		if err != nil {
			s.logger.Warn("wishlist classification failed, using defaults", "error", err)
			result = wardrobe.DefaultClassification()
		}
		cls = result
	}()
	go func() {
		defer wg.Done()
		dup = s.checkDuplicate(ctx, photo, catalog)
	}()
	wg.Wait()

	analysis := Analysis{
		PhotoKey:      key,
		SuggestedName: suggestedName(cls),
		Category:      cls.Category,
		Duplicate:     dup.IsDuplicate,
		Warning:       dup.Reason,
		MatchedItemID: dup.MatchedID,
	}

	// Second stage: when the visual check found nothing, fall back to an
	// embedding nearest-neighbor over wardrobe descriptions.
	if !analysis.Duplicate && cls.Description != "" {
		match, found, err := s.closet.FindSimilar(ctx, cls.Description)
		if err != nil {
			s.logger.Warn("similarity check failed", "error", err)
		} else if found && match.Distance <= s.cfg.SimilarityThreshold {
			analysis.Duplicate = true
			analysis.Warning = fmt.Sprintf("Looks a lot like %q already in your wardrobe.", describeItem(match.Item))
			id := match.Item.ID
			analysis.MatchedItemID = &id
		}
	}
	return analysis, nil
}

// Add validates and stores a wishlist entry. Price text that does not parse
// defaults to zero rather than failing the submission.
func (s *service) Add(ctx context.Context, req AddRequest) (Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Item{}, apperrors.Wrap("invalid_input", "name cannot be empty", nil)
	}
	if strings.TrimSpace(req.Price) == "" {
		return Item{}, apperrors.Wrap("invalid_input", "price cannot be empty", nil)
	}
	if strings.TrimSpace(req.PhotoKey) == "" {
		return Item{}, apperrors.Wrap("invalid_input", "photo is required", nil)
	}

	item := Item{
		ID:        s.newID(),
		Name:      name,
		Price:     parsePrice(req.Price),
		PhotoKey:  strings.TrimSpace(req.PhotoKey),
		Link:      strings.TrimSpace(req.Link),
		CreatedAt: s.now(),
	}
	if err := s.repo.Insert(ctx, item); err != nil {
		return Item{}, apperrors.Wrap("storage_error", "failed to save wishlist item", err)
	}
	return item, nil
}

// List returns wishlist items newest first.
func (s *service) List(ctx context.Context) ([]Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to list wishlist", err)
	}
	return items, nil
}

// Delete removes exactly the item with the matching id.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Wrap("storage_error", "failed to delete wishlist item", err)
	}
	if !removed {
		return apperrors.Wrap("not_found", "wishlist item not found", nil)
	}
	return nil
}

type duplicateVerdict struct {
	IsDuplicate bool
	Reason      string
	MatchedID   *uuid.UUID
}

// checkDuplicate asks the model to compare the photo against the catalog.
// Any failure is treated as "no duplicate found".
func (s *service) checkDuplicate(ctx context.Context, photo wardrobe.Photo, catalog []wardrobe.Item) duplicateVerdict {
	if len(catalog) == 0 {
		return duplicateVerdict{}
	}
	entries := make([]map[string]string, 0, len(catalog))
	for _, item := range catalog {
		entries = append(entries, map[string]string{
			"id":          item.ID.String(),
			"category":    string(item.Category),
			"color":       item.Color,
			"description": item.Description,
		})
	}
	encoded, err := json.Marshal(entries)
	if err != nil {
		return duplicateVerdict{}
	}

	prompt := fmt.Sprintf("Does the attached photo duplicate any item in this wardrobe catalog? Catalog: %s", encoded)
	resp, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Temperature: s.cfg.Temperature,
		Messages: []chatgpt.Message{
			chatgpt.TextMessage("system", s.cfg.Prompt),
			chatgpt.ImageMessage("user", prompt, photo.MimeType, photo.Data),
		},
		ResponseFormat: duplicateSchema(),
	})
	if err != nil {
		s.logger.Warn("duplicate check failed", "error", err)
		return duplicateVerdict{}
	}

	var wire struct {
		IsDuplicate bool   `json:"isDuplicate"`
		MatchID     string `json:"matchId"`
		Reason      string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(chatgpt.SanitizeJSON(resp.Content())), &wire); err != nil {
		s.logger.Warn("duplicate check response malformed", "error", err)
		return duplicateVerdict{}
	}
	verdict := duplicateVerdict{
		IsDuplicate: wire.IsDuplicate,
		Reason:      strings.TrimSpace(wire.Reason),
	}
	if id, err := uuid.Parse(strings.TrimSpace(wire.MatchID)); err == nil {
		verdict.MatchedID = &id
	}
	if verdict.IsDuplicate && verdict.Reason == "" {
		verdict.Reason = "This looks like something already in your wardrobe."
	}
	return verdict
}

func duplicateSchema() *chatgpt.ResponseFormat {
	return chatgpt.ObjectSchema("duplicate_check", map[string]any{
		"isDuplicate": map[string]any{"type": "boolean"},
		"matchId":     map[string]any{"type": "string"},
		"reason":      map[string]any{"type": "string"},
	})
}

func suggestedName(cls wardrobe.Classification) string {
	description := strings.TrimSpace(cls.Description)
	if description != "" {
		return description
	}
	if cls.Color != "" && cls.Color != "Unknown" {
		return fmt.Sprintf("%s %s", cls.Color, strings.ToLower(string(cls.Category)))
	}
	return "New item"
}

func describeItem(item wardrobe.Item) string {
	if strings.TrimSpace(item.Description) != "" {
		return item.Description
	}
	return fmt.Sprintf("%s %s", item.Color, strings.ToLower(string(item.Category)))
}

// parsePrice accepts sloppy input like "$49.99" or "49,99"; anything that
// still fails to parse becomes zero.
func parsePrice(raw string) float64 {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimLeft(cleaned, "$€£¥ ")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}
