package wardrobe

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category buckets a clothing item for filtering and outfit layout.
type Category string

const (
	CategoryTop       Category = "Top"
	CategoryBottom    Category = "Bottom"
	CategoryOuterwear Category = "Outerwear"
	CategoryShoes     Category = "Shoes"
	CategoryOnePiece  Category = "One-Piece"
	CategoryAccessory Category = "Accessory"
	CategoryOther     Category = "Other"
)

// Categories lists every valid category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryTop,
		CategoryBottom,
		CategoryOuterwear,
		CategoryShoes,
		CategoryOnePiece,
		CategoryAccessory,
		CategoryOther,
	}
}

// ParseCategory maps model or user supplied text onto a known category,
// defaulting to Other for anything unrecognized.
func ParseCategory(raw string) Category {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, " ", "-")
	normalized = strings.ReplaceAll(normalized, "_", "-")
	switch normalized {
	case "top", "shirt", "t-shirt", "blouse", "sweater":
		return CategoryTop
	case "bottom", "pants", "trousers", "skirt", "shorts", "jeans":
		return CategoryBottom
	case "outerwear", "jacket", "coat":
		return CategoryOuterwear
	case "shoes", "shoe", "footwear", "sneakers", "boots":
		return CategoryShoes
	case "one-piece", "onepiece", "dress", "jumpsuit":
		return CategoryOnePiece
	case "accessory", "accessories", "bag", "hat", "scarf", "belt", "jewelry":
		return CategoryAccessory
	default:
		return CategoryOther
	}
}

// displayOrder fixes the head-to-toe layout the stylist renders in.
var displayOrder = map[Category]int{
	CategoryTop:       0,
	CategoryOnePiece:  1,
	CategoryOuterwear: 2,
	CategoryBottom:    3,
	CategoryShoes:     4,
	CategoryAccessory: 5,
	CategoryOther:     6,
}

// DisplayRank returns the head-to-toe sort position of a category.
func DisplayRank(c Category) int {
	if rank, ok := displayOrder[c]; ok {
		return rank
	}
	return displayOrder[CategoryOther]
}

// Item is one catalogued piece of clothing.
type Item struct {
	ID          uuid.UUID `json:"id"`
	Category    Category  `json:"category"`
	Color       string    `json:"color"`
	Season      string    `json:"season"`
	Description string    `json:"description"`
	PhotoKey    string    `json:"photoKey"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ColorFacet is the coarse filter bucket: the first word of the color,
// lowercased, so "Dark Green" and "dark olive" both land in "dark".
func (i Item) ColorFacet() string {
	fields := strings.Fields(i.Color)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// Filter narrows a wardrobe listing. Empty fields match everything, so
// applying a filter twice yields the same result and two filters compose
// as an intersection.
type Filter struct {
	Category string
	Color    string
}

// Matches reports whether the item passes both facets.
func (f Filter) Matches(item Item) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, string(item.Category)) {
		return false
	}
	if f.Color != "" && strings.ToLower(f.Color) != item.ColorFacet() {
		return false
	}
	return true
}

// Photo is an uploaded image before classification.
type Photo struct {
	Filename string
	MimeType string
	Data     []byte
}

// Classification is the model's read of a photographed item.
type Classification struct {
	Category    Category `json:"category"`
	Color       string   `json:"color"`
	Season      string   `json:"season"`
	Description string   `json:"description"`
}

// DefaultClassification is the safe fallback when the model call fails or
// returns garbage: the item still enters the wardrobe, just unlabeled.
func DefaultClassification() Classification {
	return Classification{
		Category: CategoryOther,
		Color:    "Unknown",
		Season:   "All",
	}
}
