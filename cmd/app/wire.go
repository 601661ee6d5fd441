//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/linjia/ai-closet/internal/bootstrap"
	"github.com/linjia/ai-closet/internal/domain/auth"
	"github.com/linjia/ai-closet/internal/domain/schedule"
	"github.com/linjia/ai-closet/internal/domain/stylist"
	"github.com/linjia/ai-closet/internal/domain/wardrobe"
	"github.com/linjia/ai-closet/internal/domain/weather"
	"github.com/linjia/ai-closet/internal/domain/wishlist"
	"github.com/linjia/ai-closet/internal/infra/config"
	"github.com/linjia/ai-closet/internal/infra/llm/chatgpt"
	"github.com/linjia/ai-closet/internal/infra/weather/openmeteo"
	httpiface "github.com/linjia/ai-closet/internal/interface/http"
	"github.com/linjia/ai-closet/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideWardrobeConfig,
		provideStylistConfig,
		provideWishlistConfig,
		provideWeatherConfig,
		provideAuthConfig,
		provideChatGPTClient,
		provideWeatherClient,
		provideWardrobeRepository,
		provideWishlistRepository,
		provideScheduleRepository,
		provideUserRepository,
		providePhotoStore,
		provideWeatherStore,
		wardrobe.NewService,
		stylist.NewService,
		wishlist.NewService,
		schedule.NewService,
		weather.NewService,
		auth.NewService,
		wire.Bind(new(wardrobe.ChatClient), new(*chatgpt.Client)),
		wire.Bind(new(stylist.ChatClient), new(*chatgpt.Client)),
		wire.Bind(new(wishlist.ChatClient), new(*chatgpt.Client)),
		wire.Bind(new(stylist.Closet), new(wardrobe.Service)),
		wire.Bind(new(wishlist.Closet), new(wardrobe.Service)),
		wire.Bind(new(weather.Client), new(*openmeteo.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
