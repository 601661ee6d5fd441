package stylist

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/linjia/ai-closet/internal/domain/wardrobe"
)

func TestEstimateTokens(t *testing.T) {
	require.Equal(t, 0, estimateTokens(""))
	require.Equal(t, 1, estimateTokens("hi"))
	require.Greater(t, estimateTokens("a much longer sentence with several words"), 5)
}

func TestSerializeCatalogKeepsNewestWithinBudget(t *testing.T) {
	items := make([]wardrobe.Item, 0, 10)
	for i := 0; i < 10; i++ {
		items = append(items, wardrobe.Item{
			ID:          uuid.New(),
			Category:    wardrobe.CategoryTop,
			Color:       "Blue",
			Season:      "All",
			Description: "a plain everyday blue cotton top for layering",
		})
	}

	encoded := serializeCatalog(items, 120, estimateTokens)
	var entries []catalogEntry
	require.NoError(t, json.Unmarshal([]byte(encoded), &entries))
	require.NotEmpty(t, entries)
	require.Less(t, len(entries), len(items))
	// newest-first input order is preserved from the front
	require.Equal(t, items[0].ID.String(), entries[0].ID)
}

func TestSerializeCatalogEmpty(t *testing.T) {
	encoded := serializeCatalog(nil, 100, estimateTokens)
	var entries []catalogEntry
	require.NoError(t, json.Unmarshal([]byte(encoded), &entries))
	require.Empty(t, entries)
}
