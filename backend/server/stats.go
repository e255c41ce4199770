package server

import (
	"net/http"
	"time"

	"civicmap/backend/heat"
	"civicmap/backend/server/api"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// Stats returns per-category and per-status counts over the filtered window.
func Stats(c *gin.Context) {
	filter := heat.Filter{
		Category:  c.Query("category"),
		Status:    c.Query("status"),
		SinceDays: intQuery(c, "sinceDays", 0),
		Search:    c.Query("search"),
	}

	now := time.Now()
	since := now.AddDate(0, 0, -filter.ClampedSinceDays())

	reports, err := store.ListSince(c.Request.Context(), since, heatmapLimit)
	if err != nil {
		log.Errorf("Failed to read reports for stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	filtered := heat.Apply(reports, filter, now)

	byCategory := make(map[string]int, 3)
	for k, v := range heat.AggregateByCategory(filtered) {
		byCategory[string(k)] = v
	}
	byStatus := make(map[string]int, 3)
	for k, v := range heat.AggregateByStatus(filtered) {
		byStatus[string(k)] = v
	}

	c.JSON(http.StatusOK, api.StatsResponse{
		Total:      len(filtered),
		ByCategory: byCategory,
		ByStatus:   byStatus,
	})
}
