package server

import (
	"errors"
	"net/http"

	"civicmap/backend/report"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// DeleteReport removes a report permanently. Privileged and irreversible.
func DeleteReport(c *gin.Context) {
	err := store.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, report.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		log.Errorf("Failed to delete report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.Status(http.StatusNoContent)
}
