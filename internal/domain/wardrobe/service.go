package wardrobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/linjia/ai-closet/internal/infra/llm/chatgpt"
	apperrors "github.com/linjia/ai-closet/pkg/errors"
	"github.com/linjia/ai-closet/pkg/util"
)

// Service exposes wardrobe management capabilities.
type Service interface {
	AddFromPhoto(ctx context.Context, photo Photo) (Item, error)
	List(ctx context.Context, filter Filter) ([]Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Catalog(ctx context.Context) ([]Item, error)
	Resolve(ctx context.Context, ids []uuid.UUID) ([]Item, error)
	Classify(ctx context.Context, photo Photo) (Classification, error)
	FindSimilar(ctx context.Context, description string) (SimilarityMatch, bool, error)
}

// ChatClient is the slice of the LLM client the wardrobe needs.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
	CreateEmbedding(ctx context.Context, req chatgpt.EmbeddingRequest) (chatgpt.EmbeddingResponse, error)
}

// Config wires runtime settings for the wardrobe domain.
type Config struct {
	Model          string
	EmbeddingModel string
	Temperature    float32
	Prompt         string
}

type service struct {
	cfg    Config
	repo   Repository
	photos PhotoStore
	client ChatClient
	logger *slog.Logger
	now    func() time.Time
	newID  func() uuid.UUID
}

// NewService wires up the wardrobe domain.
func NewService(cfg Config, repo Repository, photos PhotoStore, client ChatClient, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		repo:   repo,
		photos: photos,
		client: client,
		logger: logger.With("component", "wardrobe.service"),
		now:    util.NowUTC,
		newID:  uuid.New,
	}
}

// AddFromPhoto stores the photo, classifies it, and prepends the new item.
// A failed classification never blocks the add: the item falls back to the
// unlabeled defaults.
func (s *service) AddFromPhoto(ctx context.Context, photo Photo) (Item, error) {
	if len(photo.Data) == 0 {
		return Item{}, apperrors.Wrap("invalid_input", "photo cannot be empty", nil)
	}
	if !strings.HasPrefix(photo.MimeType, "image/") {
		return Item{}, apperrors.Wrap("invalid_input", "photo must be an image", nil)
	}

	id := s.newID()
	key := PhotoObjectKey("wardrobe", id, photo.Filename)
	if _, err := s.photos.Put(ctx, key, photo.Data, photo.MimeType); err != nil {
		return Item{}, apperrors.Wrap("storage_error", "failed to store photo", err)
	}

	cls, err := s.Classify(ctx, photo)
	if err != nil {
		s.logger.Warn("classification failed, using defaults", "error", err)
		cls = DefaultClassification()
	}

	item := Item{
		ID:          id,
		Category:    cls.Category,
		Color:       cls.Color,
		Season:      cls.Season,
		Description: cls.Description,
		PhotoKey:    key,
		CreatedAt:   s.now(),
	}

	embedding := s.embedDescription(ctx, cls.Description)
	if err := s.repo.Insert(ctx, item, embedding); err != nil {
		return Item{}, apperrors.Wrap("storage_error", "failed to save item", err)
	}
	s.logger.Info("wardrobe item added", "id", item.ID, "category", item.Category)
	return item, nil
}

// List returns items newest first, narrowed by the filter.
func (s *service) List(ctx context.Context, filter Filter) ([]Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to list items", err)
	}
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if filter.Matches(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

// Delete removes exactly the item with the matching id.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	item, found, err := s.repo.Get(ctx, id)
	if err != nil {
		return apperrors.Wrap("storage_error", "failed to load item", err)
	}
	if !found {
		return apperrors.Wrap("not_found", "item not found", nil)
	}
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Wrap("storage_error", "failed to delete item", err)
	}
	if !removed {
		return apperrors.Wrap("not_found", "item not found", nil)
	}
	if item.PhotoKey != "" {
		if err := s.photos.Delete(ctx, item.PhotoKey); err != nil {
			s.logger.Warn("photo cleanup failed", "key", item.PhotoKey, "error", err)
		}
	}
	return nil
}

// Catalog returns the full wardrobe for prompt building.
func (s *service) Catalog(ctx context.Context) ([]Item, error) {
	return s.List(ctx, Filter{})
}

// Resolve maps ids onto items, silently dropping ids that no longer exist.
func (s *service) Resolve(ctx context.Context, ids []uuid.UUID) ([]Item, error) {
	out := make([]Item, 0, len(ids))
	for _, id := range ids {
		item, found, err := s.repo.Get(ctx, id)
		if err != nil {
			return nil, apperrors.Wrap("storage_error", "failed to resolve item", err)
		}
		if found {
			out = append(out, item)
		}
	}
	return out, nil
}

// Classify asks the model to label a clothing photo.
func (s *service) Classify(ctx context.Context, photo Photo) (Classification, error) {
	resp, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Temperature: s.cfg.Temperature,
		Messages: []chatgpt.Message{
			chatgpt.TextMessage("system", s.cfg.Prompt),
			chatgpt.ImageMessage("user", "Classify this clothing item.", photo.MimeType, photo.Data),
		},
		ResponseFormat: classificationSchema(),
	})
	if err != nil {
		return Classification{}, apperrors.Wrap("llm_error", "classification request failed", err)
	}
	if !resp.Usage.IsZero() {
		s.logger.Debug("classification tokens", "prompt", resp.Usage.PromptTokens, "total", resp.Usage.TotalTokens)
	}
	return parseClassification(resp.Content())
}

// FindSimilar embeds the description and returns the nearest wardrobe item.
func (s *service) FindSimilar(ctx context.Context, description string) (SimilarityMatch, bool, error) {
	text := strings.TrimSpace(description)
	if text == "" {
		return SimilarityMatch{}, false, nil
	}
	embedding, err := s.embed(ctx, text)
	if err != nil {
		return SimilarityMatch{}, false, apperrors.Wrap("llm_error", "embedding failed", err)
	}
	if len(embedding) == 0 {
		return SimilarityMatch{}, false, nil
	}
	match, found, err := s.repo.FindNearest(ctx, embedding)
	if err != nil {
		return SimilarityMatch{}, false, apperrors.Wrap("storage_error", "similarity lookup failed", err)
	}
	return match, found, nil
}

func (s *service) embedDescription(ctx context.Context, description string) []float32 {
	text := strings.TrimSpace(description)
	if text == "" {
		return nil
	}
	embedding, err := s.embed(ctx, text)
	if err != nil {
		s.logger.Warn("description embedding failed", "error", err)
		return nil
	}
	return embedding
}

func (s *service) embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := s.client.CreateEmbedding(ctx, chatgpt.EmbeddingRequest{
		Model: s.cfg.EmbeddingModel,
		Input: text,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, errors.New("embedding response empty")
	}
	vector := make([]float32, len(resp.Data[0].Embedding))
	copy(vector, resp.Data[0].Embedding)
	return vector, nil
}

func classificationSchema() *chatgpt.ResponseFormat {
	categories := make([]string, 0, len(Categories()))
	for _, c := range Categories() {
		categories = append(categories, string(c))
	}
	return chatgpt.ObjectSchema("clothing_classification", map[string]any{
		"category":    map[string]any{"type": "string", "enum": categories},
		"color":       map[string]any{"type": "string"},
		"season":      map[string]any{"type": "string", "enum": []string{"Spring", "Summer", "Fall", "Winter", "All"}},
		"description": map[string]any{"type": "string"},
	})
}

func parseClassification(raw string) (Classification, error) {
	var wire struct {
		Category    string `json:"category"`
		Color       string `json:"color"`
		Season      string `json:"season"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(chatgpt.SanitizeJSON(raw)), &wire); err != nil {
		return Classification{}, apperrors.Wrap("llm_error", "classification response malformed", err)
	}
	cls := DefaultClassification()
	cls.Category = ParseCategory(wire.Category)
	if strings.TrimSpace(wire.Color) != "" {
		cls.Color = strings.TrimSpace(wire.Color)
	}
	if strings.TrimSpace(wire.Season) != "" {
		cls.Season = strings.TrimSpace(wire.Season)
	}
	cls.Description = strings.TrimSpace(wire.Description)
	return cls, nil
}

// PhotoObjectKey derives the storage key for an uploaded photo.
func PhotoObjectKey(prefix string, id uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("%s/%s%s", prefix, id, ext)
}
