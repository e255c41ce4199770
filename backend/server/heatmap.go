package server

import (
	"net/http"
	"strconv"
	"time"

	"civicmap/backend/heat"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

const heatmapLimit = 5000

// Heatmap returns severity-weighted points for the density layer.
// Optional: bbox=minLng,minLat,maxLng,maxLat restricts the view;
// cells=auto|N aggregates into density cells; format=geojson switches the
// point output to a FeatureCollection.
func Heatmap(c *gin.Context) {
	var bbox *heat.BBox
	if s := c.Query("bbox"); s != "" {
		var err error
		bbox, err = heat.ParseBBox(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bbox"})
			return
		}
	}

	reports, err := store.ListSince(c.Request.Context(), time.Time{}, heatmapLimit)
	if err != nil {
		log.Errorf("Failed to read reports for heatmap: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	if bbox != nil {
		filtered := reports[:0:0]
		for _, r := range reports {
			if bbox.Contains(r.Lat, r.Lng) {
				filtered = append(filtered, r)
			}
		}
		reports = filtered
	}

	if cells := c.Query("cells"); cells != "" {
		if bbox == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cells aggregation requires a bbox"})
			return
		}
		if cells == "auto" {
			a := heat.NewS2Aggregator(*bbox)
			for _, r := range reports {
				a.Add(r)
			}
			c.JSON(http.StatusOK, a.ToArray())
			return
		}
		n, err := strconv.Atoi(cells)
		if err != nil || n < 1 || n > 256 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cells must be auto or 1..256"})
			return
		}
		a := heat.NewGridAggregator(*bbox, n, n)
		for _, r := range reports {
			a.Add(r)
		}
		c.JSON(http.StatusOK, a.ToArray())
		return
	}

	if c.Query("format") == "geojson" {
		c.JSON(http.StatusOK, heat.GeoJSON(reports))
		return
	}
	c.JSON(http.StatusOK, heat.Points(reports))
}
