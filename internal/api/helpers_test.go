package api

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/studentbite/backend/internal/middleware"
	"github.com/studentbite/backend/internal/models"
	"github.com/studentbite/backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
}

// newTestEnv wires the full handler surface against an in-memory database,
// mirroring the route layout the server uses.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(models.All()...))

	auth := service.NewAuthService(db, "test-secret", time.Hour)
	dishes := service.NewDishService(db)
	analytics := service.NewAnalyticsService(db, rand.New(rand.NewSource(1)), nil)
	recommendations := service.NewRecommendationService(db, analytics)
	gamification := service.NewGamificationService(db)
	chatbot := service.NewChatbotService(db, rand.New(rand.NewSource(2)))

	router := gin.New()
	apiGroup := router.Group("/api")
	NewAuthHandler(auth).RegisterRoutes(apiGroup)
	NewDishHandler(dishes, recommendations, analytics).RegisterRoutes(apiGroup)
	NewReviewHandler(dishes, gamification).RegisterRoutes(apiGroup)
	NewChatbotHandler(chatbot).RegisterRoutes(apiGroup)

	analyticsHandler := NewAnalyticsHandler(analytics)
	analyticsHandler.RegisterPublicRoutes(apiGroup)
	adminGroup := apiGroup.Group("/admin", middleware.AuthMiddleware(auth), middleware.AdminOnly())
	analyticsHandler.RegisterAdminRoutes(adminGroup)

	return &testEnv{router: router, db: db, auth: auth}
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (e *testEnv) createUser(t *testing.T, name, role string, points int) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "unused",
		Role:         role,
		Points:       points,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createDish(t *testing.T, name, category string, price float64) *models.Dish {
	t.Helper()
	dish := &models.Dish{Name: name, Category: category, Price: price}
	require.NoError(t, e.db.Create(dish).Error)
	return dish
}

func (e *testEnv) createReview(t *testing.T, userID, dishID uint, rating int) {
	t.Helper()
	review := &models.Review{UserID: userID, DishID: dishID, Rating: rating, Comment: "test"}
	require.NoError(t, e.db.Create(review).Error)
}

// tokenFor registers a fresh account through the service and returns a valid
// token for it, bumping the role directly when an admin is needed.
func (e *testEnv) tokenFor(t *testing.T, name, role string) string {
	t.Helper()
	user, err := e.auth.Register(name, name+"@example.com", "pass123")
	require.NoError(t, err)
	if role != models.RoleStudent {
		require.NoError(t, e.db.Model(user).Update("role", role).Error)
	}
	_, token, err := e.auth.Login(name, "pass123")
	require.NoError(t, err)
	return token
}
