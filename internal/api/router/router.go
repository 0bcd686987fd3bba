package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roster-calendar/config"
	"roster-calendar/internal/api/handler"
	"roster-calendar/internal/api/middleware"
)

// Setup builds the Gin engine. limiter may be nil, which disables rate limiting.
func Setup(cfg *config.Config, h *handler.Handler, limiter middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// ── global middleware ──
	r.Use(middleware.RequestID())
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		calendars := v1.Group("/calendars")
		calendars.Use(middleware.BodyLimit(cfg.Server.MaxUploadBytes))
		if cfg.RateLimit.Enabled && limiter != nil {
			calendars.Use(middleware.RateLimit(limiter, cfg.RateLimit.Limit, cfg.RateLimit.Window))
		}
		{
			calendars.POST("/preview", h.Calendar.Preview)
			calendars.POST("/ics", h.Calendar.DownloadICS)
			calendars.POST("/xlsx", h.Calendar.DownloadXLSX)
		}
	}

	return r
}
