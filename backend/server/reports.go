package server

import (
	"net/http"
	"strconv"
	"time"

	"civicmap/backend/heat"
	"civicmap/backend/server/api"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

const (
	defaultListLimit = 500
	maxListLimit     = 1000
)

// ListReports returns the filtered report collection, newest first.
func ListReports(c *gin.Context) {
	filter := heat.Filter{
		Category:  c.Query("category"),
		Status:    c.Query("status"),
		SinceDays: intQuery(c, "sinceDays", 0),
		Search:    c.Query("search"),
	}
	limit := clamp(intQuery(c, "limit", defaultListLimit), 1, maxListLimit)

	now := time.Now()
	since := now.AddDate(0, 0, -filter.ClampedSinceDays())

	reports, err := store.ListSince(c.Request.Context(), since, limit)
	if err != nil {
		log.Errorf("Failed to list reports: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, api.NewReportViews(heat.Apply(reports, filter, now)))
}

func intQuery(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
