package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/studentbite/backend/internal/service"
)

type DishHandler struct {
	dishes          *service.DishService
	recommendations *service.RecommendationService
	analytics       *service.AnalyticsService
}

func NewDishHandler(dishes *service.DishService, recommendations *service.RecommendationService, analytics *service.AnalyticsService) *DishHandler {
	return &DishHandler{
		dishes:          dishes,
		recommendations: recommendations,
		analytics:       analytics,
	}
}

func (h *DishHandler) RegisterRoutes(router *gin.RouterGroup) {
	dishes := router.Group("/dishes")
	{
		dishes.GET("", h.ListDishes)
		dishes.GET("/top-rated", h.TopRated)
		dishes.GET("/recommendations/:user_id", h.Recommendations)
	}
}

func (h *DishHandler) ListDishes(c *gin.Context) {
	dishes, err := h.dishes.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dishes)
}

func (h *DishHandler) TopRated(c *gin.Context) {
	dishes, err := h.analytics.TopRated()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dishes)
}

func (h *DishHandler) Recommendations(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || userID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	dishes, err := h.recommendations.Recommend(uint(userID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dishes)
}
