package server

import (
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"civicmap/backend/image"
	"civicmap/backend/metrics"
	"civicmap/backend/report"
	"civicmap/backend/server/api"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

const defaultReportTitle = "Issue report"

// CreateReport accepts a multipart submission {title, description, lat, lng,
// mode, category?, image} and runs it through classification and creation.
// Classification never fails the request: a report always gets a category.
func CreateReport(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")
	mode := c.DefaultPostForm("mode", "auto")

	lat, latErr := strconv.ParseFloat(c.PostForm("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.PostForm("lng"), 64)
	if latErr != nil || lngErr != nil ||
		math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid lat and lng are required"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		log.Errorf("Failed to open uploaded image: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}
	defer file.Close()
	imageData, err := io.ReadAll(file)
	if err != nil || len(imageData) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}
	if err := image.Validate(imageData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is not a valid photo"})
		return
	}

	var manualCategory report.Category
	if mode == "manual" {
		manualCategory, err = report.ParseCategory(c.PostForm("category"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
			return
		}
	}

	imageURL := ""
	if uploads != nil {
		imageURL, err = uploads.Upload(c.Request.Context(), imageData, fileHeader.Filename)
		if err != nil {
			log.Errorf("Image upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed"})
			return
		}
	}

	// Classification runs only in auto mode; a manual choice is the user's
	// call and no confidence is recorded for it.
	var cls report.Classification
	if manualCategory == "" {
		payload := image.ShrinkForClassifier(imageData)
		cls = pipeline.Classify(c.Request.Context(), payload, title, description)
		log.Infof("classified submission as %s (confidence %.2f, %s)",
			cls.Category, cls.Confidence, cls.Provider)
	}

	r, err := report.New(report.CreateInput{
		Title:        title,
		Description:  description,
		Category:     manualCategory,
		Lat:          lat,
		Lng:          lng,
		ImageURL:     imageURL,
		DefaultTitle: defaultReportTitle,
	}, cls, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := store.Create(c.Request.Context(), r); err != nil {
		log.Errorf("Failed to write report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save the report"})
		return
	}
	metrics.ReportsCreatedTotal.WithLabelValues(string(r.Category)).Inc()

	publishReport(r)

	c.JSON(http.StatusCreated, api.NewReportView(r))
}

// publishReport emits the created report for downstream consumers.
// Best-effort: a missing or failing publisher never fails the request.
func publishReport(r *report.Report) {
	if publisher == nil {
		return
	}
	event := api.ReportCreatedEvent{
		ID:              r.ID,
		Category:        string(r.Category),
		AutoCategorized: r.AutoCategorized,
		Lat:             r.Lat,
		Lng:             r.Lng,
		CreatedAt:       r.CreatedAt,
	}
	if err := publisher.Publish(event); err != nil {
		log.Errorf("Failed to publish report %s: %v", r.ID, err)
	}
}
