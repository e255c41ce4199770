package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateInput carries everything the creation boundary collected for a new
// report. Category is empty in auto mode; when set, the caller chose it
// explicitly and the classification is ignored for category purposes.
type CreateInput struct {
	Title        string
	Description  string
	Category     Category
	Lat          float64
	Lng          float64
	ImageURL     string
	DefaultTitle string
}

// New builds a report from the input and the classification decision.
// Status is open unconditionally; id and creation time are fixed here.
func New(in CreateInput, cls Classification, now time.Time) (*Report, error) {
	if !isFinite(in.Lat) || !isFinite(in.Lng) {
		return nil, fmt.Errorf("%w: location %v,%v is not finite", ErrValidation, in.Lat, in.Lng)
	}

	title := strings.TrimSpace(in.Title)
	desc := strings.TrimSpace(in.Description)
	if title == "" && desc == "" {
		if in.DefaultTitle == "" {
			return nil, fmt.Errorf("%w: title or description required", ErrValidation)
		}
		title = in.DefaultTitle
	}

	category := in.Category
	auto := false
	if category == "" {
		if _, err := ParseCategory(string(cls.Category)); err != nil {
			return nil, err
		}
		category = cls.Category
		auto = true
	} else if _, err := ParseCategory(string(category)); err != nil {
		return nil, err
	}

	return &Report{
		ID:              uuid.NewString(),
		Title:           title,
		Description:     desc,
		Category:        category,
		Status:          StatusOpen,
		AutoCategorized: auto,
		ImageURL:        in.ImageURL,
		Lat:             in.Lat,
		Lng:             in.Lng,
		CreatedAt:       now.UTC(),
	}, nil
}

// SetStatus replaces the status after validating the value. There is no
// check against the previous status: any state may move to any other.
func (r *Report) SetStatus(s Status) error {
	parsed, err := ParseStatus(string(s))
	if err != nil {
		return err
	}
	r.Status = parsed
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
