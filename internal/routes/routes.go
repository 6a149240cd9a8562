package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"chatlink_backend/internal/config"
	"chatlink_backend/internal/handlers"
	"chatlink_backend/internal/metrics"
	"chatlink_backend/internal/middleware"
	"chatlink_backend/internal/services"
)

// Auth endpoints are throttled harder than the rest of the API since they
// are the credential-guessing surface.
const (
	authRateLimitPerMinute = 20
	authRateBurst          = 5
)

// SetupRouter builds the Gin engine with the full middleware chain and
// every route group mounted.
func SetupRouter(db *gorm.DB, svc *services.ServiceContainer) *gin.Engine {
	cfg := config.GetConfig()
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.DBMiddleware(db))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())
	r.Static(cfg.Storage.BaseURL, cfg.Storage.BasePath)

	base := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(base, svc.Auth)
	contactHandler := handlers.NewContactHandler(base, svc.Contact)
	chatHandler := handlers.NewChatHandler(base, svc.Chat, svc.User)
	profileHandler := handlers.NewProfileHandler(base, svc.Profile, svc.User)
	notificationHandler := handlers.NewNotificationHandler(base, svc.Notification)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	limiter := middleware.NewLimiterStore(authRateLimitPerMinute, authRateBurst, 5*time.Minute)
	authGroup.Use(middleware.RateLimitMiddleware(limiter))
	authHandler.RegisterRoutes(authGroup)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	contactHandler.RegisterRoutes(protected.Group("/contacts"))
	chatHandler.RegisterRoutes(protected.Group("/chat"))
	profileHandler.RegisterRoutes(protected.Group("/profile"))
	notificationHandler.RegisterRoutes(protected.Group("/notifications"))

	return r
}
