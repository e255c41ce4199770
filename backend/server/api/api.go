package api

import (
	"time"

	"civicmap/backend/report"
)

type LoginArgs struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type StatusArgs struct {
	Status string `json:"status"`
}

// ReportView is the JSON shape of a report on the wire.
type ReportView struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Status          string    `json:"status"`
	AutoCategorized bool      `json:"autoCategorized"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	Lat             float64   `json:"lat"`
	Lng             float64   `json:"lng"`
	CreatedAt       time.Time `json:"createdAt"`
}

func NewReportView(r *report.Report) ReportView {
	return ReportView{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		Category:        string(r.Category),
		Status:          string(r.Status),
		AutoCategorized: r.AutoCategorized,
		ImageURL:        r.ImageURL,
		Lat:             r.Lat,
		Lng:             r.Lng,
		CreatedAt:       r.CreatedAt,
	}
}

func NewReportViews(reports []report.Report) []ReportView {
	out := make([]ReportView, 0, len(reports))
	for i := range reports {
		out = append(out, NewReportView(&reports[i]))
	}
	return out
}

type StatsResponse struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"byCategory"`
	ByStatus   map[string]int `json:"byStatus"`
}

// ReportCreatedEvent is the message published for downstream consumers
// after a report is stored.
type ReportCreatedEvent struct {
	ID              string    `json:"id"`
	Category        string    `json:"category"`
	AutoCategorized bool      `json:"auto_categorized"`
	Lat             float64   `json:"lat"`
	Lng             float64   `json:"lng"`
	CreatedAt       time.Time `json:"created_at"`
}
