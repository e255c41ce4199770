package report

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Category is the issue type of a report. The set is closed; anything the
// classifier cannot place lands in CategoryOther.
type Category string

const (
	CategoryPothole Category = "pothole"
	CategoryGarbage Category = "garbage"
	CategoryOther   Category = "other"
)

// Status is the workflow state of a report. Transitions are unrestricted,
// a resolved report may be reopened.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrNotFound        = errors.New("report not found")
)

// Categories returns all categories in classifier priority order.
func Categories() []Category {
	return []Category{CategoryPothole, CategoryGarbage, CategoryOther}
}

func Statuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusResolved}
}

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryPothole, CategoryGarbage, CategoryOther:
		return Category(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusInProgress, StatusResolved:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Report is a single citizen-submitted civic issue.
type Report struct {
	ID              string
	Title           string
	Description     string
	Category        Category
	Status          Status
	AutoCategorized bool
	ImageURL        string
	Lat             float64
	Lng             float64
	CreatedAt       time.Time
}

// Provider tags which classification tier produced a result.
const (
	ProviderRemote  = "remote"
	ProviderKeyword = "keyword"
	ProviderDefault = "default"
)

// Classification is the outcome of the category pipeline. It is ephemeral:
// only the category and the provenance flag survive into the stored report.
type Classification struct {
	Category   Category
	Confidence float64
	Reason     string
	Provider   string
}

// Repository is the persistence collaborator surface. Implementations
// guarantee per-row atomicity only.
type Repository interface {
	Create(ctx context.Context, r *Report) error
	Get(ctx context.Context, id string) (*Report, error)
	// ListSince returns reports created at or after since, newest first,
	// capped at limit. A zero since means no lower bound.
	ListSince(ctx context.Context, since time.Time, limit int) ([]Report, error)
	SetStatus(ctx context.Context, id string, s Status) (*Report, error)
	Delete(ctx context.Context, id string) error
}
