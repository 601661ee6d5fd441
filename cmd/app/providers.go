package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/linjia/ai-closet/internal/domain/auth"
	"github.com/linjia/ai-closet/internal/domain/schedule"
	"github.com/linjia/ai-closet/internal/domain/stylist"
	"github.com/linjia/ai-closet/internal/domain/wardrobe"
	"github.com/linjia/ai-closet/internal/domain/weather"
	"github.com/linjia/ai-closet/internal/domain/wishlist"
	"github.com/linjia/ai-closet/internal/infra/config"
	"github.com/linjia/ai-closet/internal/infra/llm/chatgpt"
	"github.com/linjia/ai-closet/internal/infra/photostore"
	"github.com/linjia/ai-closet/internal/infra/schedulerepo"
	"github.com/linjia/ai-closet/internal/infra/userrepo"
	"github.com/linjia/ai-closet/internal/infra/wardroberepo"
	"github.com/linjia/ai-closet/internal/infra/weather/openmeteo"
	"github.com/linjia/ai-closet/internal/infra/weathercache"
	"github.com/linjia/ai-closet/internal/infra/wishlistrepo"
)

func provideWardrobeConfig(cfg *config.Config) wardrobe.Config {
	return wardrobe.Config{
		Model:          cfg.LLM.Model,
		EmbeddingModel: cfg.LLM.EmbeddingModel,
		Temperature:    cfg.LLM.Temperature,
		Prompt:         cfg.Wardrobe.Prompt,
	}
}

func provideStylistConfig(cfg *config.Config) stylist.Config {
	return stylist.Config{
		Model:              cfg.LLM.Model,
		Temperature:        cfg.LLM.Temperature,
		Prompt:             cfg.Stylist.Prompt,
		CatalogTokenBudget: cfg.Stylist.CatalogTokenBudget,
	}
}

func provideWishlistConfig(cfg *config.Config) wishlist.Config {
	return wishlist.Config{
		Model:               cfg.LLM.Model,
		Temperature:         cfg.LLM.Temperature,
		Prompt:              cfg.Wishlist.Prompt,
		SimilarityThreshold: cfg.Wishlist.SimilarityThreshold,
	}
}

func provideWeatherConfig(cfg *config.Config) weather.Config {
	return weather.Config{
		CacheTTL:         cfg.Weather.CacheTTL,
		FallbackGreeting: cfg.Weather.FallbackGreeting,
	}
}

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Enabled:  cfg.Auth.Enabled,
		Secret:   cfg.Auth.Secret,
		TokenTTL: cfg.Auth.TokenTTL,
	}
}

func provideChatGPTClient(cfg *config.Config) (*chatgpt.Client, error) {
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
}

func provideWeatherClient(cfg *config.Config) *openmeteo.Client {
	return openmeteo.NewClient(cfg.Weather.APIBaseURL)
}

var (
	poolOnce sync.Once
	pool     *pgxpool.Pool
)

// sharedPostgresPool lazily builds one pool for every repository. A nil
// return means callers should fall back to their memory implementation.
func sharedPostgresPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	poolOnce.Do(func() {
		dsn := strings.TrimSpace(cfg.Postgres.DSN)
		if dsn == "" {
			logger.Info("postgres dsn not set, using memory repositories")
			return
		}
		poolConfig, err := pgxpool.ParseConfig(dsn)
		if err != nil {
			logger.Error("invalid postgres dsn, using memory repositories", "error", err)
			return
		}
		if cfg.Postgres.MaxConns > 0 {
			poolConfig.MaxConns = cfg.Postgres.MaxConns
		}
		if cfg.Postgres.MinConns > 0 {
			poolConfig.MinConns = cfg.Postgres.MinConns
		}
		candidate, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
		if err != nil {
			logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := candidate.Ping(ctx); err != nil {
			logger.Error("postgres ping failed, using memory repositories", "error", err)
			candidate.Close()
			return
		}
		logger.Info("postgres repositories enabled")
		pool = candidate
	})
	return pool
}

func provideWardrobeRepository(cfg *config.Config, logger *slog.Logger) wardrobe.Repository {
	if p := sharedPostgresPool(cfg, logger); p != nil {
		return wardroberepo.NewPostgresRepository(p)
	}
	return wardroberepo.NewMemoryRepository()
}

func provideWishlistRepository(cfg *config.Config, logger *slog.Logger) wishlist.Repository {
	if p := sharedPostgresPool(cfg, logger); p != nil {
		return wishlistrepo.NewPostgresRepository(p)
	}
	return wishlistrepo.NewMemoryRepository()
}

func provideScheduleRepository(cfg *config.Config, logger *slog.Logger) schedule.Repository {
	if p := sharedPostgresPool(cfg, logger); p != nil {
		return schedulerepo.NewPostgresRepository(p)
	}
	return schedulerepo.NewMemoryRepository()
}

func provideUserRepository(cfg *config.Config, logger *slog.Logger) auth.Repository {
	if p := sharedPostgresPool(cfg, logger); p != nil {
		return userrepo.NewPostgresRepository(p)
	}
	return userrepo.NewMemoryRepository()
}

func providePhotoStore(cfg *config.Config, logger *slog.Logger) wardrobe.PhotoStore {
	if strings.TrimSpace(cfg.Photos.Endpoint) == "" {
		logger.Info("photos endpoint not set, using memory photo store")
		return photostore.NewMemoryStore()
	}
	store, err := photostore.NewS3Store(cfg.Photos.Endpoint, cfg.Photos.AccessKey, cfg.Photos.SecretKey, cfg.Photos.Bucket, cfg.Photos.Region, logger)
	if err != nil {
		logger.Error("failed to initialize s3 photo store, using memory store", "error", err)
		return photostore.NewMemoryStore()
	}
	logger.Info("s3 photo store enabled", "bucket", cfg.Photos.Bucket)
	return store
}

func provideWeatherStore(cfg *config.Config, logger *slog.Logger) weather.Store {
	if cfg.Weather.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return weathercache.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return weathercache.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		} else {
			logger.Info("valkey weather cache enabled", "addr", cfg.Weather.Valkey.Addr)
			return weathercache.NewValkeyStore(client, cfg.Weather.CacheTTL)
		}
	}
	return weathercache.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Weather.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Weather.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Weather.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
