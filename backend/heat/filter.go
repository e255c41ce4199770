package heat

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"civicmap/backend/report"

	"github.com/golang/geo/s2"
)

const (
	DefaultSinceDays = 30
	minSinceDays     = 1
	maxSinceDays     = 365
)

// BBox is a rectangular geographic filter (minLng, minLat, maxLng, maxLat).
// The rectangle is closed: boundary points are inside.
type BBox struct {
	MinLng, MinLat, MaxLng, MaxLat float64
}

// ParseBBox decodes the "minLng,minLat,maxLng,maxLat" wire form. A bbox
// that does not decompose into exactly four finite numbers is a caller
// error, never silently ignored.
func ParseBBox(s string) (*BBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("%w: bbox needs 4 components, got %d", report.ErrValidation, len(parts))
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: bbox component %q is not a finite number", report.ErrValidation, p)
		}
		vals[i] = v
	}
	return &BBox{MinLng: vals[0], MinLat: vals[1], MaxLng: vals[2], MaxLat: vals[3]}, nil
}

func (b *BBox) rect() s2.Rect {
	r := s2.RectFromLatLng(s2.LatLngFromDegrees(b.MinLat, b.MinLng))
	return r.AddPoint(s2.LatLngFromDegrees(b.MaxLat, b.MaxLng))
}

// Contains reports whether the point lies within the closed rectangle.
func (b *BBox) Contains(lat, lng float64) bool {
	return b.rect().ContainsLatLng(s2.LatLngFromDegrees(lat, lng))
}

// Filter selects a subset of a report snapshot. Zero values mean "all".
type Filter struct {
	Category  string
	Status    string
	SinceDays int
	Search    string
	BBox      *BBox
}

// ClampedSinceDays returns the effective time window in days.
func (f Filter) ClampedSinceDays() int {
	d := f.SinceDays
	if d == 0 {
		d = DefaultSinceDays
	}
	if d < minSinceDays {
		d = minSinceDays
	}
	if d > maxSinceDays {
		d = maxSinceDays
	}
	return d
}

// Apply returns the reports matching the filter. It is pure: the input
// snapshot is never mutated and no state is retained between calls.
func Apply(reports []report.Report, f Filter, now time.Time) []report.Report {
	cutoff := now.AddDate(0, 0, -f.ClampedSinceDays())
	search := strings.ToLower(f.Search)

	out := make([]report.Report, 0, len(reports))
	for _, r := range reports {
		if f.Category != "" && f.Category != "all" && string(r.Category) != f.Category {
			continue
		}
		if f.Status != "" && f.Status != "all" && string(r.Status) != f.Status {
			continue
		}
		if r.CreatedAt.Before(cutoff) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.Title), search) &&
			!strings.Contains(strings.ToLower(r.Description), search) {
			continue
		}
		if f.BBox != nil && !f.BBox.Contains(r.Lat, r.Lng) {
			continue
		}
		out = append(out, r)
	}
	return out
}
