package wishlist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/linjia/ai-closet/internal/domain/wardrobe"
	"github.com/linjia/ai-closet/internal/infra/llm/chatgpt"
	apperrors "github.com/linjia/ai-closet/pkg/errors"
)

func TestAnalyzeFlagsVisualDuplicate(t *testing.T) {
	existing := wardrobe.Item{ID: uuid.New(), Category: wardrobe.CategoryTop, Color: "White", Description: "white tee"}
	closet := &fakeCloset{
		catalog:        []wardrobe.Item{existing},
		classification: wardrobe.Classification{Category: wardrobe.CategoryTop, Color: "White", Season: "All", Description: "plain white t-shirt"},
	}
	chatStub := &stubChatClient{completion: textResponse(fmt.Sprintf(
		`{"isDuplicate":true,"matchId":"%s","reason":"You already own a white tee."}`, existing.ID,
	))}
	svc := newTestWishlist(newFakeRepo(), closet, chatStub)

	analysis, err := svc.Analyze(context.Background(), wardrobe.Photo{Filename: "tee.jpg", MimeType: "image/jpeg", Data: []byte("img")})
	require.NoError(t, err)
	require.True(t, analysis.Duplicate)
	require.Equal(t, "You already own a white tee.", analysis.Warning)
	require.NotNil(t, analysis.MatchedItemID)
	require.Equal(t, existing.ID, *analysis.MatchedItemID)
	require.Equal(t, "plain white t-shirt", analysis.SuggestedName)
	require.Equal(t, wardrobe.CategoryTop, analysis.Category)
	require.NotEmpty(t, analysis.PhotoKey)
}

func TestAnalyzeEmbeddingFallbackConfirmsDuplicate(t *testing.T) {
	existing := wardrobe.Item{ID: uuid.New(), Category: wardrobe.CategoryTop, Color: "White", Description: "white cotton tee"}
	closet := &fakeCloset{
		catalog:        []wardrobe.Item{existing},
		classification: wardrobe.Classification{Category: wardrobe.CategoryTop, Color: "White", Season: "All", Description: "plain white t-shirt"},
		similar:        wardrobe.SimilarityMatch{Item: existing, Distance: 0.2},
		similarFound:   true,
	}
	// visual check says no
	chatStub := &stubChatClient{completion: textResponse(`{"isDuplicate":false,"matchId":"","reason":""}`)}
	svc := newTestWishlist(newFakeRepo(), closet, chatStub)

	analysis, err := svc.Analyze(context.Background(), wardrobe.Photo{Filename: "tee.jpg", MimeType: "image/jpeg", Data: []byte("img")})
	require.NoError(t, err)
	require.True(t, analysis.Duplicate)
	require.NotNil(t, analysis.MatchedItemID)
	require.Equal(t, existing.ID, *analysis.MatchedItemID)
	require.Contains(t, analysis.Warning, "wardrobe")
}

func TestAnalyzeDistanceAboveThresholdNotDuplicate(t *testing.T) {
	existing := wardrobe.Item{ID: uuid.New(), Description: "red boots"}
	closet := &fakeCloset{
		catalog:        []wardrobe.Item{existing},
		classification: wardrobe.Classification{Category: wardrobe.CategoryTop, Description: "plain white t-shirt"},
		similar:        wardrobe.SimilarityMatch{Item: existing, Distance: 0.9},
		similarFound:   true,
	}
	chatStub := &stubChatClient{completion: textResponse(`{"isDuplicate":false,"matchId":"","reason":""}`)}
	svc := newTestWishlist(newFakeRepo(), closet, chatStub)

	analysis, err := svc.Analyze(context.Background(), wardrobe.Photo{Filename: "tee.jpg", MimeType: "image/jpeg", Data: []byte("img")})
	require.NoError(t, err)
	require.False(t, analysis.Duplicate)
	require.Empty(t, analysis.Warning)
}

func TestAnalyzeDegradesWhenModelFails(t *testing.T) {
	closet := &fakeCloset{
		catalog:     []wardrobe.Item{{ID: uuid.New()}},
		classifyErr: errors.New("model offline"),
	}
	chatStub := &stubChatClient{completionErr: errors.New("model offline")}
	svc := newTestWishlist(newFakeRepo(), closet, chatStub)

	analysis, err := svc.Analyze(context.Background(), wardrobe.Photo{Filename: "x.jpg", MimeType: "image/jpeg", Data: []byte("img")})
	require.NoError(t, err)
	require.False(t, analysis.Duplicate)
	require.Equal(t, wardrobe.CategoryOther, analysis.Category)
	require.Equal(t, "New item", analysis.SuggestedName)
}

func TestAnalyzeRejectsNonImage(t *testing.T) {
	svc := newTestWishlist(newFakeRepo(), &fakeCloset{}, &stubChatClient{})
	_, err := svc.Analyze(context.Background(), wardrobe.Photo{Filename: "a.txt", MimeType: "text/plain", Data: []byte("x")})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestAddParsesPriceLeniently(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"49.99", 49.99},
		{"$49.99", 49.99},
		{"49,99", 49.99},
		{"not a price", 0},
		{"-5", 0},
	}
	for _, tc := range tests {
		svc := newTestWishlist(newFakeRepo(), &fakeCloset{}, &stubChatClient{})
		item, err := svc.Add(context.Background(), AddRequest{Name: "Linen shirt", Price: tc.raw, PhotoKey: "wishlist/a.jpg"})
		require.NoError(t, err, "price=%q", tc.raw)
		require.Equal(t, tc.want, item.Price, "price=%q", tc.raw)
	}
}

func TestAddValidation(t *testing.T) {
	svc := newTestWishlist(newFakeRepo(), &fakeCloset{}, &stubChatClient{})

	_, err := svc.Add(context.Background(), AddRequest{Name: "  ", Price: "10", PhotoKey: "k"})
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	_, err = svc.Add(context.Background(), AddRequest{Name: "Shirt", Price: " ", PhotoKey: "k"})
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	_, err = svc.Add(context.Background(), AddRequest{Name: "Shirt", Price: "10", PhotoKey: ""})
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestDeleteUnknownIDFails(t *testing.T) {
	svc := newTestWishlist(newFakeRepo(), &fakeCloset{}, &stubChatClient{})
	err := svc.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "not_found"))
}

func TestListNewestFirst(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestWishlist(repo, &fakeCloset{}, &stubChatClient{})

	first, err := svc.Add(context.Background(), AddRequest{Name: "First", Price: "1", PhotoKey: "a"})
	require.NoError(t, err)
	second, err := svc.Add(context.Background(), AddRequest{Name: "Second", Price: "2", PhotoKey: "b"})
	require.NoError(t, err)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, second.ID, items[0].ID)
	require.Equal(t, first.ID, items[1].ID)
}

func newTestWishlist(repo Repository, closet Closet, client ChatClient) *service {
	return &service{
		cfg:    Config{Model: "gpt-test", Prompt: "compare", SimilarityThreshold: 0.55},
		repo:   repo,
		closet: closet,
		photos: &fakePhotoStore{blobs: make(map[string][]byte)},
		client: client,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
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
}

func (s *stubChatClient) CreateChatCompletion(_ context.Context, _ chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	if s.completionErr != nil {
		return chatgpt.ChatCompletionResponse{}, s.completionErr
	}
	return s.completion, nil
}

type fakeCloset struct {
	catalog        []wardrobe.Item
	classification wardrobe.Classification
	classifyErr    error
	similar        wardrobe.SimilarityMatch
	similarFound   bool
	similarErr     error
}

func (c *fakeCloset) Catalog(_ context.Context) ([]wardrobe.Item, error) {
	return c.catalog, nil
}

func (c *fakeCloset) Classify(_ context.Context, _ wardrobe.Photo) (wardrobe.Classification, error) {
	if c.classifyErr != nil {
		return wardrobe.Classification{}, c.classifyErr
	}
	return c.classification, nil
}

func (c *fakeCloset) FindSimilar(_ context.Context, _ string) (wardrobe.SimilarityMatch, bool, error) {
	if c.similarErr != nil {
		return wardrobe.SimilarityMatch{}, false, c.similarErr
	}
	return c.similar, c.similarFound, nil
}

type fakeRepo struct {
	items map[uuid.UUID]Item
	order []uuid.UUID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[uuid.UUID]Item)}
}

func (r *fakeRepo) Insert(_ context.Context, item Item) error {
	r.items[item.ID] = item
	r.order = append(r.order, item.ID)
	return nil
}

func (r *fakeRepo) List(_ context.Context) ([]Item, error) {
	out := make([]Item, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		if item, ok := r.items[r.order[i]]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

type fakePhotoStore struct {
	blobs map[string][]byte
}

func (s *fakePhotoStore) Put(_ context.Context, key string, data []byte, mimeType string) (wardrobe.StoredPhoto, error) {
	s.blobs[key] = data
	return wardrobe.StoredPhoto{Key: key, Size: int64(len(data)), MimeType: mimeType}, nil
}

func (s *fakePhotoStore) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	data, ok := s.blobs[key]
	if !ok {
		return nil, "", errors.New("photo not found")
	}
	return io.NopCloser(bytes.NewReader(data)), "image/jpeg", nil
}

func (s *fakePhotoStore) Delete(_ context.Context, key string) error {
	delete(s.blobs, key)
	return nil
}
