package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/studentbite/backend/internal/service"
)

type ReviewHandler struct {
	dishes       *service.DishService
	gamification *service.GamificationService
}

func NewReviewHandler(dishes *service.DishService, gamification *service.GamificationService) *ReviewHandler {
	return &ReviewHandler{dishes: dishes, gamification: gamification}
}

func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/reviews/:dish_id", h.ListForDish)
	router.POST("/reviews", h.Create)
}

type createReviewRequest struct {
	UserID  uint   `json:"user_id" binding:"required"`
	DishID  uint   `json:"dish_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

func (h *ReviewHandler) ListForDish(c *gin.Context) {
	dishID, err := strconv.ParseUint(c.Param("dish_id"), 10, 64)
	if err != nil || dishID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dish id"})
		return
	}

	reviews, err := h.dishes.ReviewsForDish(uint(dishID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing data"})
		return
	}

	result, err := h.gamification.CreateReview(req.UserID, req.DishID, req.Rating, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	response := gin.H{
		"message":      "Review added successfully",
		"review_id":    result.ReviewID,
		"points_added": result.PointsAdded,
	}
	if result.BadgeAwarded != "" {
		response["badge_awarded"] = result.BadgeAwarded
	}
	c.JSON(http.StatusCreated, response)
}
