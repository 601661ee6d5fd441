package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/linjia/ai-closet/internal/domain/auth"
	"github.com/linjia/ai-closet/internal/domain/schedule"
	"github.com/linjia/ai-closet/internal/domain/stylist"
	"github.com/linjia/ai-closet/internal/domain/wardrobe"
	"github.com/linjia/ai-closet/internal/domain/weather"
	"github.com/linjia/ai-closet/internal/domain/wishlist"
	"github.com/linjia/ai-closet/internal/infra/config"
	apperrors "github.com/linjia/ai-closet/pkg/errors"
)

func TestRouter_ListWardrobeItems(t *testing.T) {
	items := []wardrobe.Item{
		{ID: uuid.New(), Category: wardrobe.CategoryTop, Color: "White"},
	}
	stubs := newStubs()
	stubs.wardrobe.listFn = func(_ context.Context, filter wardrobe.Filter) ([]wardrobe.Item, error) {
		require.Equal(t, "Top", filter.Category)
		require.Equal(t, "white", filter.Color)
		return items, nil
	}

	rec := performGet(t, stubs, "/api/v1/wardrobe/items?category=Top&color=white")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []wardrobe.Item `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	require.Equal(t, items[0].ID, body.Items[0].ID)
}

func TestRouter_DeleteWardrobeItemNotFound(t *testing.T) {
	stubs := newStubs()
	stubs.wardrobe.deleteFn = func(_ context.Context, _ uuid.UUID) error {
		return apperrors.Wrap("not_found", "item not found", nil)
	}

	rec := performDelete(t, stubs, "/api/v1/wardrobe/items/"+uuid.NewString())
	require.Equal(t, http.StatusNotFound, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "not_found", errBody["error"]["code"])
}

func TestRouter_DeleteWardrobeItemBadID(t *testing.T) {
	rec := performDelete(t, newStubs(), "/api/v1/wardrobe/items/not-a-uuid")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_ComposeOutfit(t *testing.T) {
	stubs := newStubs()
	stubs.stylist.composeFn = func(_ context.Context, req stylist.ComposeRequest) (stylist.OutfitView, error) {
		require.Equal(t, "date night", req.Vibe)
		return stylist.OutfitView{Outfit: stylist.Outfit{ID: uuid.New(), Vibe: req.Vibe}}, nil
	}

	rec := performPost(t, stubs, "/api/v1/stylist/outfit", `{"vibe":"date night"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got stylist.OutfitView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "date night", got.Vibe)
}

func TestRouter_ComposeOutfitInvalidInput(t *testing.T) {
	stubs := newStubs()
	stubs.stylist.composeFn = func(_ context.Context, _ stylist.ComposeRequest) (stylist.OutfitView, error) {
		return stylist.OutfitView{}, apperrors.Wrap("invalid_input", "vibe cannot be empty", nil)
	}

	rec := performPost(t, stubs, "/api/v1/stylist/outfit", `{"vibe":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "invalid_input", errBody["error"]["code"])
	require.Contains(t, errBody["error"]["message"], "vibe cannot be empty")
}

func TestRouter_ScheduleAddAndList(t *testing.T) {
	stubs := newStubs()
	event := schedule.Event{ID: uuid.New(), Title: "Standup", Time: "09:30"}
	stubs.schedule.addFn = func(_ context.Context, req schedule.AddRequest) (schedule.Event, error) {
		require.Equal(t, "Standup", req.Title)
		return event, nil
	}
	stubs.schedule.listFn = func(_ context.Context) ([]schedule.Event, error) {
		return []schedule.Event{event}, nil
	}

	rec := performPost(t, stubs, "/api/v1/schedule/events", `{"title":"Standup","time":"09:30"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = performGet(t, stubs, "/api/v1/schedule/events")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Events []schedule.Event `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Events, 1)
}

func TestRouter_WeatherWithoutCoordinates(t *testing.T) {
	stubs := newStubs()
	stubs.weather.reportFn = func(_ context.Context, coords *weather.Coordinates) (weather.Report, error) {
		require.Nil(t, coords)
		return weather.Report{Available: false, Greeting: "Hope you're having a stylish day!"}, nil
	}

	rec := performGet(t, stubs, "/api/v1/weather")
	require.Equal(t, http.StatusOK, rec.Code)

	var report weather.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.False(t, report.Available)
	require.NotEmpty(t, report.Greeting)
}

func TestRouter_WeatherInvalidCoordinates(t *testing.T) {
	rec := performGet(t, newStubs(), "/api/v1/weather?lat=abc&lon=103.8")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Healthz(t *testing.T) {
	rec := performGet(t, newStubs(), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
}

type stubServices struct {
	wardrobe *stubWardrobe
	stylist  *stubStylist
	wishlist *stubWishlist
	schedule *stubSchedule
	weather  *stubWeather
	auth     *stubAuth
	photos   *stubPhotoStore
}

func newStubs() *stubServices {
	return &stubServices{
		wardrobe: &stubWardrobe{},
		stylist:  &stubStylist{},
		wishlist: &stubWishlist{},
		schedule: &stubSchedule{},
		weather:  &stubWeather{},
		auth:     &stubAuth{},
		photos:   &stubPhotoStore{},
	}
}

func newRouterUnderTest(t *testing.T, stubs *stubServices) *http.Server {
	t.Helper()
	handler := NewHandler(stubs.wardrobe, stubs.stylist, stubs.wishlist, stubs.schedule, stubs.weather, stubs.auth, stubs.photos, newTestLogger())
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
	return NewRouter(cfg, handler, stubs.auth)
}

func performGet(t *testing.T, stubs *stubServices, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	newRouterUnderTest(t, stubs).Handler.ServeHTTP(rec, req)
	return rec
}

func performPost(t *testing.T, stubs *stubServices, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newRouterUnderTest(t, stubs).Handler.ServeHTTP(rec, req)
	return rec
}

func performDelete(t *testing.T, stubs *stubServices, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, path, nil)
	rec := httptest.NewRecorder()
	newRouterUnderTest(t, stubs).Handler.ServeHTTP(rec, req)
	return rec
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

type stubWardrobe struct {
	listFn   func(ctx context.Context, filter wardrobe.Filter) ([]wardrobe.Item, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (s *stubWardrobe) AddFromPhoto(_ context.Context, _ wardrobe.Photo) (wardrobe.Item, error) {
	return wardrobe.Item{}, nil
}

func (s *stubWardrobe) List(ctx context.Context, filter wardrobe.Filter) ([]wardrobe.Item, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filter)
	}
	return nil, nil
}

func (s *stubWardrobe) Delete(ctx context.Context, id uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s *stubWardrobe) Catalog(_ context.Context) ([]wardrobe.Item, error) { return nil, nil }

func (s *stubWardrobe) Resolve(_ context.Context, _ []uuid.UUID) ([]wardrobe.Item, error) {
	return nil, nil
}

func (s *stubWardrobe) Classify(_ context.Context, _ wardrobe.Photo) (wardrobe.Classification, error) {
	return wardrobe.DefaultClassification(), nil
}

func (s *stubWardrobe) FindSimilar(_ context.Context, _ string) (wardrobe.SimilarityMatch, bool, error) {
	return wardrobe.SimilarityMatch{}, false, nil
}

type stubStylist struct {
	composeFn func(ctx context.Context, req stylist.ComposeRequest) (stylist.OutfitView, error)
}

func (s *stubStylist) Compose(ctx context.Context, req stylist.ComposeRequest) (stylist.OutfitView, error) {
	if s.composeFn != nil {
		return s.composeFn(ctx, req)
	}
	return stylist.OutfitView{}, nil
}

func (s *stubStylist) Week(_ context.Context, _ stylist.WeekRequest) (stylist.WeekPlan, error) {
	return stylist.WeekPlan{}, nil
}

func (s *stubStylist) MatchInspiration(_ context.Context, _ wardrobe.Photo, _ string) (stylist.OutfitView, error) {
	return stylist.OutfitView{}, nil
}

type stubWishlist struct{}

func (s *stubWishlist) Analyze(_ context.Context, _ wardrobe.Photo) (wishlist.Analysis, error) {
	return wishlist.Analysis{}, nil
}

func (s *stubWishlist) Add(_ context.Context, _ wishlist.AddRequest) (wishlist.Item, error) {
	return wishlist.Item{}, nil
}

func (s *stubWishlist) List(_ context.Context) ([]wishlist.Item, error) { return nil, nil }

func (s *stubWishlist) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type stubSchedule struct {
	addFn  func(ctx context.Context, req schedule.AddRequest) (schedule.Event, error)
	listFn func(ctx context.Context) ([]schedule.Event, error)
}

func (s *stubSchedule) Add(ctx context.Context, req schedule.AddRequest) (schedule.Event, error) {
	if s.addFn != nil {
		return s.addFn(ctx, req)
	}
	return schedule.Event{}, nil
}

func (s *stubSchedule) List(ctx context.Context) ([]schedule.Event, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s *stubSchedule) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type stubWeather struct {
	reportFn func(ctx context.Context, coords *weather.Coordinates) (weather.Report, error)
}

func (s *stubWeather) Report(ctx context.Context, coords *weather.Coordinates) (weather.Report, error) {
	if s.reportFn != nil {
		return s.reportFn(ctx, coords)
	}
	return weather.Report{}, nil
}

type stubAuth struct{}

func (s *stubAuth) Register(_ context.Context, _ auth.Credentials) (auth.Session, error) {
	return auth.Session{}, nil
}

func (s *stubAuth) Login(_ context.Context, _ auth.Credentials) (auth.Session, error) {
	return auth.Session{}, nil
}

func (s *stubAuth) Verify(_ context.Context, _ string) (auth.User, error) {
	return auth.User{}, nil
}

type stubPhotoStore struct{}

func (s *stubPhotoStore) Put(_ context.Context, key string, data []byte, mimeType string) (wardrobe.StoredPhoto, error) {
	return wardrobe.StoredPhoto{Key: key, Size: int64(len(data)), MimeType: mimeType}, nil
}

func (s *stubPhotoStore) Get(_ context.Context, _ string) (io.ReadCloser, string, error) {
	return io.NopCloser(bytes.NewReader(nil)), "image/jpeg", nil
}

func (s *stubPhotoStore) Delete(_ context.Context, _ string) error { return nil }
