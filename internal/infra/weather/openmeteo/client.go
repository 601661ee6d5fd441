package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/linjia/ai-closet/internal/domain/weather"
)

// Client fetches current conditions from the Open-Meteo forecast API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs the client. No API key is required.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type currentWire struct {
	Temperature float64 `json:"temperature_2m"`
	WeatherCode int     `json:"weather_code"`
	IsDay       int     `json:"is_day"`
}

type forecastWire struct {
	Current currentWire `json:"current"`
}

// Current implements weather.Client.
func (c *Client) Current(ctx context.Context, lat, lon float64) (weather.Snapshot, error) {
	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%.4f", lat))
	query.Set("longitude", fmt.Sprintf("%.4f", lon))
	query.Set("current", "temperature_2m,weather_code,is_day")

	endpoint := fmt.Sprintf("%s/v1/forecast?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return weather.Snapshot{}, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return weather.Snapshot{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return weather.Snapshot{}, fmt.Errorf("weather api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var wire forecastWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return weather.Snapshot{}, fmt.Errorf("decode response: %w", err)
	}
	return weather.Snapshot{
		Temperature: wire.Current.Temperature,
		Code:        wire.Current.WeatherCode,
		IsDay:       wire.Current.IsDay == 1,
	}, nil
}

var _ weather.Client = (*Client)(nil)
