package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/linjia/ai-closet/internal/domain/auth"
	"github.com/linjia/ai-closet/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, authSvc auth.Service) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(nil),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/healthz", handler.Healthz)

	api := router.Group("/api/v1")

	if cfg.Auth.Enabled {
		api.POST("/auth/register", handler.Register)
		api.POST("/auth/login", handler.Login)
	}

	protected := api.Group("")
	if cfg.Auth.Enabled {
		protected.Use(authMiddleware(authSvc))
		protected.GET("/auth/me", handler.Me)
	}

	{
		protected.POST("/wardrobe/items", handler.AddWardrobeItem)
		protected.GET("/wardrobe/items", handler.ListWardrobeItems)
		protected.DELETE("/wardrobe/items/:id", handler.DeleteWardrobeItem)

		protected.POST("/stylist/outfit", handler.ComposeOutfit)
		protected.POST("/stylist/week", handler.PlanWeek)
		protected.POST("/stylist/inspiration", handler.MatchInspiration)

		protected.POST("/wishlist/analysis", handler.AnalyzeWishlistPhoto)
		protected.POST("/wishlist/items", handler.AddWishlistItem)
		protected.GET("/wishlist/items", handler.ListWishlistItems)
		protected.DELETE("/wishlist/items/:id", handler.DeleteWishlistItem)

		protected.POST("/schedule/events", handler.AddScheduleEvent)
		protected.GET("/schedule/events", handler.ListScheduleEvents)
		protected.DELETE("/schedule/events/:id", handler.DeleteScheduleEvent)

		protected.GET("/weather", handler.Weather)
		protected.GET("/photos/*key", handler.Photo)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
