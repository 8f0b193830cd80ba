package controllers

import (
	"errors"
	"net/http"

	"github.com/civicdesk/backend/internal/middleware"
	"github.com/civicdesk/backend/internal/models"
	"github.com/civicdesk/backend/internal/services"
	"github.com/gin-gonic/gin"
)

type ComplaintController struct {
	complaints *services.ComplaintService
}

func NewComplaintController(complaints *services.ComplaintService) *ComplaintController {
	return &ComplaintController{complaints: complaints}
}

type CreateComplaintRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description" binding:"required"`
	Location    string             `json:"location"`
	Category    string             `json:"category" binding:"required"`
	Department  string             `json:"department" binding:"required"`
	AIAnalysis  *models.AIAnalysis `json:"aiAnalysis"`
}

type AddCommentRequest struct {
	Text string `json:"text"`
}

type StatusUpdateRequest struct {
	Message string `json:"message" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

func (cc *ComplaintController) Create(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide all required fields"})
		return
	}

	complaint, err := cc.complaints.Create(caller, services.CreateComplaintInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
		Department:  req.Department,
		AIAnalysis:  req.AIAnalysis,
	})
	if err != nil {
		respondComplaintError(c, err, "Failed to create complaint")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Complaint created successfully",
		"complaint": complaint,
	})
}

func (cc *ComplaintController) Get(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	complaint, err := cc.complaints.Get(caller, c.Param("id"))
	if err != nil {
		respondComplaintError(c, err, "Failed to fetch complaint")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "complaint": complaint})
}

func (cc *ComplaintController) ListAll(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	complaints, err := cc.complaints.ListAll(caller)
	if err != nil {
		respondComplaintError(c, err, "Failed to fetch complaints")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "complaints": complaints})
}

func (cc *ComplaintController) ListMine(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	complaints, err := cc.complaints.ListMine(caller)
	if err != nil {
		respondComplaintError(c, err, "Failed to fetch complaints")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "complaints": complaints})
}

func (cc *ComplaintController) ListDepartment(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	complaints, err := cc.complaints.ListForDepartment(caller)
	if err != nil {
		respondComplaintError(c, err, "Failed to fetch complaints")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "complaints": complaints})
}

func (cc *ComplaintController) AddComment(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Comment text is required"})
		return
	}

	complaint, err := cc.complaints.AddComment(caller, c.Param("id"), req.Text)
	if err != nil {
		respondComplaintError(c, err, "Failed to add comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Comment added", "complaint": complaint})
}

func (cc *ComplaintController) UpdateStatus(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Message and status are required"})
		return
	}

	complaint, err := cc.complaints.UpdateStatus(caller, c.Param("id"), req.Message, models.ComplaintStatus(req.Status))
	if err != nil {
		respondComplaintError(c, err, "Failed to update status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Status updated", "complaint": complaint})
}

// respondComplaintError maps the service error taxonomy onto HTTP codes.
func respondComplaintError(c *gin.Context, err error, fallbackMessage string) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide all required fields"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Complaint not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": fallbackMessage})
	}
}
