package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/houndlab/orientation-backend-go/internal/config"
	"github.com/houndlab/orientation-backend-go/internal/database"
	"github.com/houndlab/orientation-backend-go/internal/handler"
	"github.com/houndlab/orientation-backend-go/internal/middleware"
	"github.com/houndlab/orientation-backend-go/internal/repository"
	"github.com/houndlab/orientation-backend-go/internal/service"
)

// SetupRouter wires repositories, services and handlers onto a gin engine
func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.MaxMultipartMemory = cfg.MaxUploadSize

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Orientation Backend API is running",
		})
	})

	db := database.GetDB()
	sessionRepo := repository.NewSessionRepository(db)
	frameRepo := repository.NewFrameRepository(db)
	labelRepo := repository.NewLabelRepository(db)

	sessionService := service.NewSessionService(sessionRepo, frameRepo, labelRepo)
	labelService := service.NewLabelService(sessionRepo, labelRepo)

	sessionHandler := handler.NewSessionHandler(sessionService)
	labelHandler := handler.NewLabelHandler(labelService)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateLimitWindow))
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		sessions := api.Group("/sessions")
		{
			sessions.POST("", sessionHandler.Create)
			sessions.GET("", sessionHandler.List)
			sessions.GET("/:id", sessionHandler.Get)
			sessions.DELETE("/:id", sessionHandler.Delete)

			sessions.GET("/:id/segments", sessionHandler.Segments)
			sessions.GET("/:id/metrics", sessionHandler.Metrics)
			sessions.PUT("/:id/classification", sessionHandler.Reclassify)

			sessions.GET("/:id/labels", labelHandler.Records)
			sessions.PUT("/:id/labels/:segment", labelHandler.SetManual)
			sessions.GET("/:id/summary", labelHandler.Summary)
			sessions.GET("/:id/export", labelHandler.Export)
		}
	}

	return r
}
