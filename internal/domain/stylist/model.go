package stylist

import (
	"github.com/google/uuid"

	"github.com/linjia/ai-closet/internal/domain/wardrobe"
)

// Outfit is one generated look, referencing wardrobe items by id. Referenced
// items may have been deleted since generation; such ids resolve to nothing.
type Outfit struct {
	ID          uuid.UUID   `json:"id"`
	ItemIDs     []uuid.UUID `json:"itemIds"`
	Vibe        string      `json:"vibe"`
	Explanation string      `json:"explanation"`
}

// OutfitView is an outfit with its surviving items resolved and ordered
// head to toe.
type OutfitView struct {
	Outfit
	Items []wardrobe.Item `json:"items"`
}

// DayPlan pairs a weekday with its outfit.
type DayPlan struct {
	Day    string     `json:"day"`
	Outfit OutfitView `json:"outfit"`
}

// WeekPlan holds Monday through Friday in fixed order.
type WeekPlan struct {
	Days []DayPlan `json:"days"`
}

// Weekdays is the fixed rendering order of a weekly plan.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// ComposeRequest asks for a single outfit.
type ComposeRequest struct {
	Vibe           string `json:"vibe"`
	WeatherContext string `json:"weatherContext"`
}

// WeekRequest asks for a five-day plan.
type WeekRequest struct {
	Theme          string `json:"theme"`
	WeatherContext string `json:"weatherContext"`
}

// Config wires runtime settings for the stylist domain.
type Config struct {
	Model              string
	Temperature        float32
	Prompt             string
	CatalogTokenBudget int
}
