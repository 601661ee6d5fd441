package stylist

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	"github.com/linjia/ai-closet/internal/domain/wardrobe"
)

// tokenCounter reports how many prompt tokens a string costs.
type tokenCounter func(text string) int

// newTokenCounter prefers a real BPE count and falls back to an upper-biased
// estimate when the encoding cannot be loaded (e.g. offline).
func newTokenCounter() tokenCounter {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil || enc == nil {
		return estimateTokens
	}
	return func(text string) int {
		return len(enc.Encode(text, nil, nil))
	}
}

func estimateTokens(text string) int {
	if text == "" {
		return 0
	}
	runes := utf8.RuneCountInString(text)
	words := len(strings.Fields(text))
	byRunes := (runes + 1) / 2
	if byRunes < words {
		return words
	}
	return byRunes
}

// catalogEntry is the item projection serialized into prompts.
type catalogEntry struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Color       string `json:"color"`
	Season      string `json:"season"`
	Description string `json:"description"`
}

// serializeCatalog renders the wardrobe as a JSON array, keeping newest
// items first and stopping once the token budget is spent.
func serializeCatalog(items []wardrobe.Item, budget int, count tokenCounter) string {
	if budget <= 0 || count == nil {
		count = estimateTokens
	}
	var (
		entries []catalogEntry
		spent   int
	)
	for _, item := range items {
		entry := catalogEntry{
			ID:          item.ID.String(),
			Category:    string(item.Category),
			Color:       item.Color,
			Season:      item.Season,
			Description: item.Description,
		}
		encoded, err := json.Marshal(entry)
		if err != nil {
			continue
		}
		cost := count(string(encoded))
		if budget > 0 && spent+cost > budget && len(entries) > 0 {
			break
		}
		entries = append(entries, entry)
		spent += cost
	}
	encoded, err := json.Marshal(entries)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}
