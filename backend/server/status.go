package server

import (
	"errors"
	"net/http"

	"civicmap/backend/report"
	"civicmap/backend/server/api"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// UpdateStatus replaces a report's status. Privileged; any status may move
// to any other.
func UpdateStatus(c *gin.Context) {
	var args api.StatusArgs
	if err := c.BindJSON(&args); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}
	status, err := report.ParseStatus(args.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	updated, err := store.SetStatus(c.Request.Context(), c.Param("id"), status)
	if errors.Is(err, report.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		log.Errorf("Failed to update status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, api.NewReportView(updated))
}
