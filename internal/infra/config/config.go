package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	LLM      LLMConfig      `yaml:"llm"`
	Wardrobe WardrobeConfig `yaml:"wardrobe"`
	Stylist  StylistConfig  `yaml:"stylist"`
	Wishlist WishlistConfig `yaml:"wishlist"`
	Weather  WeatherConfig  `yaml:"weather"`
	Photos   PhotosConfig   `yaml:"photos"`
	Postgres PostgresConfig `yaml:"postgres"`
	Auth     AuthConfig     `yaml:"auth"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	Retry        RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for transient POST failures.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// LLMConfig contains OpenAI-compatible model settings.
type LLMConfig struct {
	APIKey         string  `yaml:"apiKey"`
	BaseURL        string  `yaml:"baseUrl"`
	Model          string  `yaml:"model"`
	EmbeddingModel string  `yaml:"embeddingModel"`
	Temperature    float32 `yaml:"temperature"`
}

// WardrobeConfig controls photo classification.
type WardrobeConfig struct {
	Prompt string `yaml:"prompt"`
}

// StylistConfig controls outfit generation.
type StylistConfig struct {
	Prompt             string `yaml:"prompt"`
	CatalogTokenBudget int    `yaml:"catalogTokenBudget"`
}

// WishlistConfig controls wishlist analysis and duplicate detection.
type WishlistConfig struct {
	Prompt              string  `yaml:"prompt"`
	SimilarityThreshold float64 `yaml:"similarityThreshold"`
}

// WeatherConfig controls the weather lookup and its cache.
type WeatherConfig struct {
	APIBaseURL       string        `yaml:"apiBaseUrl"`
	CacheTTL         time.Duration `yaml:"cacheTtl"`
	FallbackGreeting string        `yaml:"fallbackGreeting"`
	Valkey           ValkeyConfig  `yaml:"valkey"`
}

// ValkeyConfig contains connection information for cache storage.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// PhotosConfig contains S3-compatible object storage settings.
type PhotosConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// AuthConfig controls optional bearer-token authentication.
type AuthConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Secret   string        `yaml:"secret"`
	TokenTTL time.Duration `yaml:"tokenTtl"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_EMBEDDING_MODEL"); v != "" {
		cfg.LLM.EmbeddingModel = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("WARDROBE_PROMPT"); v != "" {
		cfg.Wardrobe.Prompt = v
	}
	if v := os.Getenv("STYLIST_PROMPT"); v != "" {
		cfg.Stylist.Prompt = v
	}
	if v := os.Getenv("STYLIST_CATALOG_TOKEN_BUDGET"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Stylist.CatalogTokenBudget = parsed
		}
	}
	if v := os.Getenv("WISHLIST_PROMPT"); v != "" {
		cfg.Wishlist.Prompt = v
	}
	if v := os.Getenv("WISHLIST_SIMILARITY_THRESHOLD"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Wishlist.SimilarityThreshold = parsed
		}
	}
	if v := os.Getenv("WEATHER_API_BASE_URL"); v != "" {
		cfg.Weather.APIBaseURL = v
	}
	if v := os.Getenv("WEATHER_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Weather.CacheTTL = parsed
		}
	}
	if v := os.Getenv("WEATHER_FALLBACK_GREETING"); v != "" {
		cfg.Weather.FallbackGreeting = v
	}
	if v := os.Getenv("WEATHER_VALKEY_ENABLED"); v != "" {
		cfg.Weather.Valkey.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("WEATHER_VALKEY_ADDR"); v != "" {
		cfg.Weather.Valkey.Addr = v
	}
	if v := os.Getenv("PHOTOS_ENDPOINT"); v != "" {
		cfg.Photos.Endpoint = v
	}
	if v := os.Getenv("PHOTOS_ACCESS_KEY"); v != "" {
		cfg.Photos.AccessKey = v
	}
	if v := os.Getenv("PHOTOS_SECRET_KEY"); v != "" {
		cfg.Photos.SecretKey = v
	}
	if v := os.Getenv("PHOTOS_BUCKET"); v != "" {
		cfg.Photos.Bucket = v
	}
	if v := os.Getenv("PHOTOS_REGION"); v != "" {
		cfg.Photos.Region = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("AUTH_ENABLED"); v != "" {
		cfg.Auth.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("AUTH_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("AUTH_TOKEN_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Auth.TokenTTL = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/api/v1/wardrobe/items",
					"/api/v1/wishlist/analysis",
				},
			},
		},
		LLM: LLMConfig{
			Model:          "gpt-4o-mini",
			EmbeddingModel: "text-embedding-3-small",
			Temperature:    0.4,
		},
		Wardrobe: WardrobeConfig{
			Prompt: "You are a fashion cataloguing assistant. Classify the photographed clothing item.",
		},
		Stylist: StylistConfig{
			Prompt:             "You are a personal fashion stylist. Compose outfits only from the wardrobe catalog provided by the user.",
			CatalogTokenBudget: 6000,
		},
		Wishlist: WishlistConfig{
			Prompt:              "You are a careful shopping assistant. Decide whether the photographed item duplicates something already in the wardrobe catalog.",
			SimilarityThreshold: 0.55,
		},
		Weather: WeatherConfig{
			APIBaseURL:       "https://api.open-meteo.com",
			CacheTTL:         15 * time.Minute,
			FallbackGreeting: "Hope you're having a stylish day!",
		},
		Photos: PhotosConfig{
			Bucket: "closet-photos",
		},
		Postgres: PostgresConfig{
			MaxConns: 4,
		},
		Auth: AuthConfig{
			Enabled:  false,
			TokenTTL: 24 * time.Hour,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if strings.TrimSpace(c.LLM.EmbeddingModel) == "" {
		return errors.New("llm.embeddingModel cannot be empty")
	}
	if c.Wardrobe.Prompt == "" {
		return errors.New("wardrobe.prompt cannot be empty")
	}
	if c.Stylist.Prompt == "" {
		return errors.New("stylist.prompt cannot be empty")
	}
	if c.Stylist.CatalogTokenBudget <= 0 {
		return errors.New("stylist.catalogTokenBudget must be positive")
	}
	if c.Wishlist.Prompt == "" {
		return errors.New("wishlist.prompt cannot be empty")
	}
	if c.Wishlist.SimilarityThreshold < 0 {
		return errors.New("wishlist.similarityThreshold must be non-negative")
	}
	if c.Weather.APIBaseURL == "" {
		return errors.New("weather.apiBaseUrl cannot be empty")
	}
	if c.Weather.CacheTTL < 0 {
		return errors.New("weather.cacheTtl cannot be negative")
	}
	if c.Weather.Valkey.Enabled && strings.TrimSpace(c.Weather.Valkey.Addr) == "" {
		return errors.New("weather.valkey.addr cannot be empty when the valkey cache is enabled")
	}
	if c.Auth.Enabled {
		if strings.TrimSpace(c.Auth.Secret) == "" {
			return errors.New("auth.secret cannot be empty when auth is enabled")
		}
		if c.Auth.TokenTTL <= 0 {
			return errors.New("auth.tokenTtl must be positive")
		}
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	return nil
}
