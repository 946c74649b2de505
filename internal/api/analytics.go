package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studentbite/backend/internal/service"
)

// AnalyticsHandler serves the public leaderboard and the admin analytics
// surface.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func (h *AnalyticsHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/leaderboard", h.Leaderboard)
}

func (h *AnalyticsHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/popularity", h.Popularity)
	router.GET("/quality", h.Quality)
	router.GET("/forecasting", h.Forecasting)
	router.GET("/trends", h.Trends)
	router.GET("/revenue", h.Revenue)
	router.GET("/heatmap", h.Heatmap)
}

func (h *AnalyticsHandler) Leaderboard(c *gin.Context) {
	entries, err := h.analytics.Leaderboard()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *AnalyticsHandler) Popularity(c *gin.Context) {
	entries, err := h.analytics.Popularity()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *AnalyticsHandler) Quality(c *gin.Context) {
	entries, err := h.analytics.Quality()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *AnalyticsHandler) Forecasting(c *gin.Context) {
	forecast, err := h.analytics.Forecast()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, forecast)
}

func (h *AnalyticsHandler) Trends(c *gin.Context) {
	trends, err := h.analytics.Trends()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trends)
}

func (h *AnalyticsHandler) Revenue(c *gin.Context) {
	revenue, err := h.analytics.Revenue()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, revenue)
}

func (h *AnalyticsHandler) Heatmap(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"points": h.analytics.Heatmap()})
}
