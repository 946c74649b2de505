package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/studentbite/backend/config"
	"github.com/studentbite/backend/internal/api"
	"github.com/studentbite/backend/internal/database"
	"github.com/studentbite/backend/internal/router"
	"github.com/studentbite/backend/internal/server"
	"github.com/studentbite/backend/internal/service"
	"github.com/studentbite/backend/pkg/logger"
)

func main() {
	migrate := flag.Bool("migrate", false, "run schema migration before serving")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg)
	defer logger.Log.Sync()

	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if *migrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Log.Info("Database migration completed")
	}

	var redisClient *redis.Client
	if cfg.RateLimit.Enabled {
		redisClient, err = database.NewRedisClient(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to connect to redis", zap.Error(err))
		}
	}

	// Each consumer gets its own source; a *rand.Rand is not safe to share
	// across the services' separate locks.
	seed := time.Now().UnixNano()

	authService := service.NewAuthService(db, cfg.JWT.Secret, cfg.JWT.ExpireAfter)
	dishService := service.NewDishService(db)
	analyticsService := service.NewAnalyticsService(db, rand.New(rand.NewSource(seed)), nil)
	recommendationService := service.NewRecommendationService(db, analyticsService)
	gamificationService := service.NewGamificationService(db)
	chatbotService := service.NewChatbotService(db, rand.New(rand.NewSource(seed+1)))

	handlers := router.Handlers{
		Auth:      api.NewAuthHandler(authService),
		Dish:      api.NewDishHandler(dishService, recommendationService, analyticsService),
		Review:    api.NewReviewHandler(dishService, gamificationService),
		Analytics: api.NewAnalyticsHandler(analyticsService),
		Chatbot:   api.NewChatbotHandler(chatbotService),
	}

	engine := router.Setup(cfg, handlers, authService, redisClient, logger.Log)

	logger.Log.Info("Server starting", zap.String("port", cfg.Server.Port))
	srv := server.New(engine, cfg.Server.Port)
	if err := srv.Run(); err != nil {
		logger.Log.Fatal("Server error", zap.Error(err))
	}
	logger.Log.Info("Server stopped")
}
