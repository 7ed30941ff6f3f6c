package main

import (
	"context"
	"net/http"
	"time"

	"event-manager/internal/shared/middleware"
	"event-manager/pkg/container"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(c *container.Container) (*gin.Engine, error) {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
		middleware.Metrics(),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupEventRoutes(v1, c)
		setupUploadRoutes(v1, c)
		setupAuthRoutes(v1, c)
	}

	if err := c.Pages.Register(router); err != nil {
		return nil, err
	}

	return router, nil
}

// ========================================
// EVENT ROUTES
// ========================================
func setupEventRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := middleware.WalletAuth(c.JWTManager, c.Config.Wallet.RequireAuth)

	events := v1.Group("/events")
	{
		events.GET("", c.EventHandler.ListEvents)
		events.GET("/:id", c.EventHandler.GetEvent)

		events.POST("", auth, c.EventHandler.CreateEvent)
		events.PUT("/:id", auth, c.EventHandler.UpdateEvent)
		events.DELETE("/:id", auth, c.EventHandler.DeleteEvent)
		events.PUT("/:id/mint-address", auth, c.EventHandler.AttachMintAddress)
	}
}

// ========================================
// UPLOAD ROUTES
// ========================================
func setupUploadRoutes(v1 *gin.RouterGroup, c *container.Container) {
	uploads := v1.Group("/uploads")
	uploads.Use(middleware.WalletAuth(c.JWTManager, c.Config.Wallet.RequireAuth))
	{
		uploads.POST("/images", c.UploadHandler.UploadImage)
	}
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/wallet/verify", c.WalletHandler.Verify)
	}
}

// healthCheckHandler reports 503 only when Postgres is down; Redis and
// MinIO are optional.
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		database := "up"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			database = "down"
			status = http.StatusServiceUnavailable
		}

		redis := "disabled"
		if c.Redis != nil {
			redis = "up"
			if err := c.Redis.Ping(checkCtx); err != nil {
				redis = "down"
			}
		}

		uploads := "disabled"
		if c.ImageService.Enabled() {
			uploads = "enabled"
		}

		ctx.JSON(status, gin.H{
			"status":   http.StatusText(status),
			"service":  c.Config.App.Name,
			"version":  c.Config.App.Version,
			"database": database,
			"redis":    redis,
			"uploads":  uploads,
			"time":     time.Now().UTC().Format(time.RFC3339),
		})
	}
}
