package controllers

import (
	"net/http"

	"github.com/civicdesk/backend/internal/storage"
	"github.com/gin-gonic/gin"
)

type DepartmentController struct {
	store storage.Storage
}

func NewDepartmentController(store storage.Storage) *DepartmentController {
	return &DepartmentController{store: store}
}

// List returns the active departments for complaint routing.
func (dc *DepartmentController) List(c *gin.Context) {
	departments, err := dc.store.ListActiveDepartments()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch departments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "departments": departments})
}
