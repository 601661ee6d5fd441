package stylist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/linjia/ai-closet/internal/domain/wardrobe"
	"github.com/linjia/ai-closet/internal/infra/llm/chatgpt"
	apperrors "github.com/linjia/ai-closet/pkg/errors"
)

// Service composes outfits from the catalogued wardrobe.
type Service interface {
	Compose(ctx context.Context, req ComposeRequest) (OutfitView, error)
	Week(ctx context.Context, req WeekRequest) (WeekPlan, error)
	MatchInspiration(ctx context.Context, photo wardrobe.Photo, weatherContext string) (OutfitView, error)
}

// ChatClient is the slice of the LLM client the stylist needs.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// Closet is the wardrobe surface the stylist reads from.
type Closet interface {
	Catalog(ctx context.Context) ([]wardrobe.Item, error)
	Resolve(ctx context.Context, ids []uuid.UUID) ([]wardrobe.Item, error)
}

type service struct {
	cfg    Config
	client ChatClient
	closet Closet
	logger *slog.Logger
	tokens tokenCounter
	newID  func() uuid.UUID
}

// NewService wires up the stylist domain.
func NewService(cfg Config, closet Closet, client ChatClient, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		client: client,
		closet: closet,
		logger: logger.With("component", "stylist.service"),
		tokens: newTokenCounter(),
		newID:  uuid.New,
	}
}

// Compose generates a single outfit for a free-text vibe. Model failures
// degrade to a fallback outfit rather than an error.
func (s *service) Compose(ctx context.Context, req ComposeRequest) (OutfitView, error) {
	vibe := strings.TrimSpace(req.Vibe)
	if vibe == "" {
		return OutfitView{}, apperrors.Wrap("invalid_input", "vibe cannot be empty", nil)
	}
	catalog, err := s.closet.Catalog(ctx)
	if err != nil {
		return OutfitView{}, err
	}

	user := fmt.Sprintf(
		"Pick one outfit from this wardrobe for the vibe %q.\n%s\nWardrobe catalog: %s",
		vibe, weatherLine(req.WeatherContext), serializeCatalog(catalog, s.cfg.CatalogTokenBudget, s.tokens),
	)
	resp, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:          s.cfg.Model,
		Temperature:    s.cfg.Temperature,
		Messages:       []chatgpt.Message{chatgpt.TextMessage("system", s.cfg.Prompt), chatgpt.TextMessage("user", user)},
		ResponseFormat: outfitSchema(),
	})
	if err != nil {
		s.logger.Warn("outfit generation failed, using fallback", "error", err)
		return s.fallbackOutfit(vibe), nil
	}
	wire, err := parseOutfitWire(resp.Content())
	if err != nil {
		s.logger.Warn("outfit response malformed, using fallback", "error", err)
		return s.fallbackOutfit(vibe), nil
	}
	return s.materialize(ctx, wire, vibe)
}

// Week generates Monday through Friday in one model call.
func (s *service) Week(ctx context.Context, req WeekRequest) (WeekPlan, error) {
	theme := strings.TrimSpace(req.Theme)
	if theme == "" {
		theme = "a balanced work week"
	}
	catalog, err := s.closet.Catalog(ctx)
	if err != nil {
		return WeekPlan{}, err
	}

	user := fmt.Sprintf(
		"Plan outfits for Monday through Friday around the theme %q.\n%s\nWardrobe catalog: %s",
		theme, weatherLine(req.WeatherContext), serializeCatalog(catalog, s.cfg.CatalogTokenBudget, s.tokens),
	)
	resp, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:          s.cfg.Model,
		Temperature:    s.cfg.Temperature,
		Messages:       []chatgpt.Message{chatgpt.TextMessage("system", s.cfg.Prompt), chatgpt.TextMessage("user", user)},
		ResponseFormat: weekSchema(),
	})

	var wires map[string]outfitWire
	if err != nil {
		s.logger.Warn("week plan generation failed, using fallback", "error", err)
	} else if wires, err = parseWeekWire(resp.Content()); err != nil {
		s.logger.Warn("week plan response malformed, using fallback", "error", err)
		wires = nil
	}

	plan := WeekPlan{Days: make([]DayPlan, 0, len(Weekdays))}
	for _, day := range Weekdays {
		wire, ok := wires[strings.ToLower(day)]
		var view OutfitView
		if ok {
			view, err = s.materialize(ctx, wire, theme)
			if err != nil {
				return WeekPlan{}, err
			}
		} else {
			view = s.fallbackOutfit(theme)
		}
		plan.Days = append(plan.Days, DayPlan{Day: day, Outfit: view})
	}
	return plan, nil
}

// MatchInspiration selects wardrobe items visually closest to a photo.
func (s *service) MatchInspiration(ctx context.Context, photo wardrobe.Photo, weatherContext string) (OutfitView, error) {
	if len(photo.Data) == 0 {
		return OutfitView{}, apperrors.Wrap("invalid_input", "inspiration photo cannot be empty", nil)
	}
	catalog, err := s.closet.Catalog(ctx)
	if err != nil {
		return OutfitView{}, err
	}

	prompt := fmt.Sprintf(
		"Recreate the style of the attached inspiration photo using only items from this wardrobe.\n%s\nWardrobe catalog: %s",
		weatherLine(weatherContext), serializeCatalog(catalog, s.cfg.CatalogTokenBudget, s.tokens),
	)
	resp, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:          s.cfg.Model,
		Temperature:    s.cfg.Temperature,
		Messages:       []chatgpt.Message{chatgpt.TextMessage("system", s.cfg.Prompt), chatgpt.ImageMessage("user", prompt, photo.MimeType, photo.Data)},
		ResponseFormat: outfitSchema(),
	})
	if err != nil {
		s.logger.Warn("inspiration match failed, using fallback", "error", err)
		return s.fallbackOutfit("Inspired look"), nil
	}
	wire, err := parseOutfitWire(resp.Content())
	if err != nil {
		s.logger.Warn("inspiration response malformed, using fallback", "error", err)
		return s.fallbackOutfit("Inspired look"), nil
	}
	return s.materialize(ctx, wire, "Inspired look")
}

// materialize resolves wire ids against the wardrobe, drops anything that no
// longer exists, and orders the survivors head to toe.
func (s *service) materialize(ctx context.Context, wire outfitWire, defaultVibe string) (OutfitView, error) {
	ids := make([]uuid.UUID, 0, len(wire.ItemIDs))
	for _, raw := range wire.ItemIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	items, err := s.closet.Resolve(ctx, ids)
	if err != nil {
		return OutfitView{}, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return wardrobe.DisplayRank(items[i].Category) < wardrobe.DisplayRank(items[j].Category)
	})

	vibe := strings.TrimSpace(wire.Vibe)
	if vibe == "" {
		vibe = defaultVibe
	}
	resolved := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		resolved = append(resolved, item.ID)
	}
	return OutfitView{
		Outfit: Outfit{
			ID:          s.newID(),
			ItemIDs:     resolved,
			Vibe:        vibe,
			Explanation: strings.TrimSpace(wire.Explanation),
		},
		Items: items,
	}, nil
}

func (s *service) fallbackOutfit(vibe string) OutfitView {
	return OutfitView{
		Outfit: Outfit{
			ID:          s.newID(),
			ItemIDs:     nil,
			Vibe:        vibe,
			Explanation: "The stylist is unavailable right now. Try mixing a favorite top with neutral bottoms.",
		},
		Items: []wardrobe.Item{},
	}
}

func weatherLine(context string) string {
	context = strings.TrimSpace(context)
	if context == "" {
		return "Weather conditions are unknown."
	}
	return "Weather: " + context
}

type outfitWire struct {
	ItemIDs     []string `json:"itemIds"`
	Vibe        string   `json:"vibe"`
	Explanation string   `json:"explanation"`
}

func parseOutfitWire(raw string) (outfitWire, error) {
	var wire outfitWire
	if err := json.Unmarshal([]byte(chatgpt.SanitizeJSON(raw)), &wire); err != nil {
		return outfitWire{}, err
	}
	return wire, nil
}

// parseWeekWire lowercases the day keys so "Monday" and "monday" both land.
func parseWeekWire(raw string) (map[string]outfitWire, error) {
	var wire map[string]outfitWire
	if err := json.Unmarshal([]byte(chatgpt.SanitizeJSON(raw)), &wire); err != nil {
		return nil, err
	}
	if len(wire) == 0 {
		return nil, errors.New("week plan empty")
	}
	out := make(map[string]outfitWire, len(wire))
	for day, outfit := range wire {
		out[strings.ToLower(strings.TrimSpace(day))] = outfit
	}
	return out, nil
}

func outfitSchema() *chatgpt.ResponseFormat {
	return chatgpt.ObjectSchema("outfit", outfitProperties())
}

func weekSchema() *chatgpt.ResponseFormat {
	days := make(map[string]any, len(Weekdays))
	for _, day := range Weekdays {
		days[strings.ToLower(day)] = map[string]any{
			"type":                 "object",
			"properties":           outfitProperties(),
			"required":             []string{"itemIds", "vibe", "explanation"},
			"additionalProperties": false,
		}
	}
	return chatgpt.ObjectSchema("week_plan", days)
}

func outfitProperties() map[string]any {
	return map[string]any{
		"itemIds":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"vibe":        map[string]any{"type": "string"},
		"explanation": map[string]any{"type": "string"},
	}
}
