package controllers

import (
	"net/http"

	"civicguard-be/ai"

	"github.com/gin-gonic/gin"
)

// AskAssistant answers a free-text civic question
func AskAssistant(c *gin.Context) {
	var input struct {
		Messages []ai.ChatMessage `json:"messages" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := assistant.Chat(c.Request.Context(), input.Messages)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Assistant unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
