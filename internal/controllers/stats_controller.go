package controllers

import (
	"net/http"

	"github.com/civicdesk/backend/internal/middleware"
	"github.com/civicdesk/backend/internal/models"
	"github.com/civicdesk/backend/internal/storage"
	"github.com/gin-gonic/gin"
)

type StatsController struct {
	store storage.Storage
}

func NewStatsController(store storage.Storage) *StatsController {
	return &StatsController{store: store}
}

// System returns platform counters. Developer role only.
func (sc *StatsController) System(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok || caller.Role != models.RoleDeveloper {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	statusCounts, err := sc.store.CountComplaintsByStatus()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch system stats"})
		return
	}

	userCount, err := sc.store.CountUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch system stats"})
		return
	}

	var total int64
	for _, count := range statusCounts {
		total += count
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"totalComplaints":    total,
			"complaintsByStatus": statusCounts,
			"totalUsers":         userCount,
		},
	})
}
