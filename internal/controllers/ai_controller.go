package controllers

import (
	"net/http"

	"github.com/civicdesk/backend/internal/services"
	"github.com/gin-gonic/gin"
)

type AIController struct {
	categorizer *services.Categorizer
}

func NewAIController(categorizer *services.Categorizer) *AIController {
	return &AIController{categorizer: categorizer}
}

type CategorizeRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type SuggestionsRequest struct {
	Text    string `json:"text" binding:"required"`
	Context string `json:"context"`
}

// Categorize always answers 200 with a real or fallback analysis; AI
// unavailability must never block complaint filing.
func (ai *AIController) Categorize(c *gin.Context) {
	var req CategorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Title and description are required"})
		return
	}

	analysis := ai.categorizer.Categorize(req.Title, req.Description)
	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": analysis})
}

func (ai *AIController) Suggestions(c *gin.Context) {
	var req SuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Text is required"})
		return
	}

	suggestions := ai.categorizer.Suggest(req.Text, req.Context)
	c.JSON(http.StatusOK, gin.H{"success": true, "suggestions": suggestions})
}
