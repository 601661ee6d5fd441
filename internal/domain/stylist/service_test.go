package stylist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/linjia/ai-closet/internal/domain/wardrobe"
	"github.com/linjia/ai-closet/internal/infra/llm/chatgpt"
	apperrors "github.com/linjia/ai-closet/pkg/errors"
)

func TestComposeOrdersItemsHeadToToe(t *testing.T) {
	shoes := wardrobe.Item{ID: uuid.New(), Category: wardrobe.CategoryShoes}
	top := wardrobe.Item{ID: uuid.New(), Category: wardrobe.CategoryTop}
	bottom := wardrobe.Item{ID: uuid.New(), Category: wardrobe.CategoryBottom}
	closet := newFakeCloset(shoes, top, bottom)

	payload := fmt.Sprintf(
		`{"itemIds":["%s","%s","%s"],"vibe":"casual friday","explanation":"easy layers"}`,
		shoes.ID, bottom.ID, top.ID,
	)
	svc := newTestStylist(closet, &stubChatClient{completion: textResponse(payload)})

	view, err := svc.Compose(context.Background(), ComposeRequest{Vibe: "casual friday"})
	require.NoError(t, err)
	require.Equal(t, "casual friday", view.Vibe)
	require.Equal(t, "easy layers", view.Explanation)
	require.Len(t, view.Items, 3)
	require.Equal(t, wardrobe.CategoryTop, view.Items[0].Category)
	require.Equal(t, wardrobe.CategoryBottom, view.Items[1].Category)
	require.Equal(t, wardrobe.CategoryShoes, view.Items[2].Category)
	require.Equal(t, []uuid.UUID{top.ID, bottom.ID, shoes.ID}, view.ItemIDs)
}

func TestComposeDropsDanglingIDs(t *testing.T) {
	top := wardrobe.Item{ID: uuid.New(), Category: wardrobe.CategoryTop}
	closet := newFakeCloset(top)

	payload := fmt.Sprintf(
		`{"itemIds":["%s","%s","not-a-uuid"],"vibe":"minimal","explanation":""}`,
		top.ID, uuid.New(),
	)
	svc := newTestStylist(closet, &stubChatClient{completion: textResponse(payload)})

	view, err := svc.Compose(context.Background(), ComposeRequest{Vibe: "minimal"})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, top.ID, view.Items[0].ID)
}

func TestComposeEmptyVibeFails(t *testing.T) {
	svc := newTestStylist(newFakeCloset(), &stubChatClient{})
	_, err := svc.Compose(context.Background(), ComposeRequest{Vibe: "   "})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestComposeFallbackOnChatError(t *testing.T) {
	svc := newTestStylist(newFakeCloset(), &stubChatClient{completionErr: errors.New("model offline")})

	view, err := svc.Compose(context.Background(), ComposeRequest{Vibe: "rainy monday"})
	require.NoError(t, err)
	require.Equal(t, "rainy monday", view.Vibe)
	require.Empty(t, view.Items)
	require.NotEmpty(t, view.Explanation)
}

func TestComposeFallbackOnMalformedResponse(t *testing.T) {
	svc := newTestStylist(newFakeCloset(), &stubChatClient{completion: textResponse("sorry, no outfit today")})

	view, err := svc.Compose(context.Background(), ComposeRequest{Vibe: "gallery opening"})
	require.NoError(t, err)
	require.Empty(t, view.Items)
}

func TestWeekFixedDayOrder(t *testing.T) {
	top := wardrobe.Item{ID: uuid.New(), Category: wardrobe.CategoryTop}
	closet := newFakeCloset(top)

	// only wednesday comes back; the rest should be fallbacks, in order
	payload := fmt.Sprintf(
		`{"Wednesday":{"itemIds":["%s"],"vibe":"midweek","explanation":"ok"}}`,
		top.ID,
	)
	svc := newTestStylist(closet, &stubChatClient{completion: textResponse(payload)})

	plan, err := svc.Week(context.Background(), WeekRequest{Theme: "office"})
	require.NoError(t, err)
	require.Len(t, plan.Days, 5)
	for i, day := range Weekdays {
		require.Equal(t, day, plan.Days[i].Day)
	}
	require.Len(t, plan.Days[2].Outfit.Items, 1)
	require.Empty(t, plan.Days[0].Outfit.Items)
	require.Empty(t, plan.Days[4].Outfit.Items)
}

func TestWeekFallbackOnChatError(t *testing.T) {
	svc := newTestStylist(newFakeCloset(), &stubChatClient{completionErr: errors.New("down")})

	plan, err := svc.Week(context.Background(), WeekRequest{})
	require.NoError(t, err)
	require.Len(t, plan.Days, 5)
	for _, day := range plan.Days {
		require.Empty(t, day.Outfit.Items)
		require.NotEmpty(t, day.Outfit.Explanation)
	}
}

func TestMatchInspiration(t *testing.T) {
	top := wardrobe.Item{ID: uuid.New(), Category: wardrobe.CategoryTop}
	closet := newFakeCloset(top)
	payload := fmt.Sprintf(`{"itemIds":["%s"],"vibe":"street style","explanation":"matched"}`, top.ID)
	chatStub := &stubChatClient{completion: textResponse(payload)}
	svc := newTestStylist(closet, chatStub)

	view, err := svc.MatchInspiration(context.Background(), wardrobe.Photo{Filename: "insp.jpg", MimeType: "image/jpeg", Data: []byte("img")}, "18°C, clear sky")
	require.NoError(t, err)
	require.Equal(t, "street style", view.Vibe)
	require.Len(t, view.Items, 1)

	_, err = svc.MatchInspiration(context.Background(), wardrobe.Photo{}, "")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func newTestStylist(closet Closet, client ChatClient) *service {
	return &service{
		cfg:    Config{Model: "gpt-test", Prompt: "style", CatalogTokenBudget: 6000},
		client: client,
		closet: closet,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		tokens: estimateTokens,
		newID:  uuid.New,
	}
}

func textResponse(content string) chatgpt.ChatCompletionResponse {
	var choice chatgpt.Choice
	choice.Message.Role = "assistant"
	choice.Message.Content = content
	return chatgpt.ChatCompletionResponse{Choices: []chatgpt.Choice{choice}}
}

type stubChatClient struct {
	completion    chatgpt.ChatCompletionResponse
	completionErr error
	calls         int
}

func (s *stubChatClient) CreateChatCompletion(_ context.Context, _ chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	s.calls++
	if s.completionErr != nil {
		return chatgpt.ChatCompletionResponse{}, s.completionErr
	}
	return s.completion, nil
}

type fakeCloset struct {
	items map[uuid.UUID]wardrobe.Item
	list  []wardrobe.Item
}

func newFakeCloset(items ...wardrobe.Item) *fakeCloset {
	closet := &fakeCloset{items: make(map[uuid.UUID]wardrobe.Item)}
	for _, item := range items {
		closet.items[item.ID] = item
		closet.list = append(closet.list, item)
	}
	return closet
}

func (c *fakeCloset) Catalog(_ context.Context) ([]wardrobe.Item, error) {
	return c.list, nil
}

func (c *fakeCloset) Resolve(_ context.Context, ids []uuid.UUID) ([]wardrobe.Item, error) {
	out := make([]wardrobe.Item, 0, len(ids))
	for _, id := range ids {
		if item, ok := c.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}
