package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studentbite/backend/internal/service"
)

type ChatbotHandler struct {
	chatbot *service.ChatbotService
}

func NewChatbotHandler(chatbot *service.ChatbotService) *ChatbotHandler {
	return &ChatbotHandler{chatbot: chatbot}
}

func (h *ChatbotHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/chatbot", h.Chat)
}

type chatRequest struct {
	Message string `json:"message"`
}

func (h *ChatbotHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": h.chatbot.Reply(req.Message)})
}
