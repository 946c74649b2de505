package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/studentbite/backend/config"
	"github.com/studentbite/backend/internal/api"
	"github.com/studentbite/backend/internal/middleware"
	"github.com/studentbite/backend/internal/service"
)

// Handlers bundles everything the route table needs.
type Handlers struct {
	Auth      *api.AuthHandler
	Dish      *api.DishHandler
	Review    *api.ReviewHandler
	Analytics *api.AnalyticsHandler
	Chatbot   *api.ChatbotHandler
}

// Setup configures the application routes.
func Setup(cfg *config.Config, h Handlers, auth *service.AuthService, redisClient *redis.Client, log *zap.Logger) *gin.Engine {
	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS())

	if cfg.RateLimit.Enabled && redisClient != nil {
		limiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    cfg.RateLimit.Window,
			Limit:     cfg.RateLimit.Limit,
			KeyPrefix: "rate_limit:api",
		})
		router.Use(limiter.Middleware())
	}

	root := router.Group("/api")

	h.Auth.RegisterRoutes(root)
	h.Dish.RegisterRoutes(root)
	h.Review.RegisterRoutes(root)
	h.Chatbot.RegisterRoutes(root)
	h.Analytics.RegisterPublicRoutes(root)

	admin := root.Group("/admin")
	admin.Use(middleware.AuthMiddleware(auth), middleware.AdminOnly())
	h.Analytics.RegisterAdminRoutes(admin)

	return router
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
