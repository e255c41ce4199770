package heat

import (
	"errors"
	"testing"
	"time"

	"civicmap/backend/report"
)

func mkReport(id string, cat report.Category, st report.Status, lat, lng float64, age time.Duration, now time.Time) report.Report {
	return report.Report{
		ID:        id,
		Title:     "Report " + id,
		Category:  cat,
		Status:    st,
		Lat:       lat,
		Lng:       lng,
		CreatedAt: now.Add(-age),
	}
}

func TestWeightStrictlyDecreasing(t *testing.T) {
	open := Weight(report.StatusOpen)
	inProgress := Weight(report.StatusInProgress)
	resolved := Weight(report.StatusResolved)

	if !(open > inProgress && inProgress > resolved) {
		t.Errorf("weights not strictly decreasing: %f, %f, %f", open, inProgress, resolved)
	}
	if resolved != 0.2 {
		t.Errorf("canonical resolved weight is 0.2, got %f", resolved)
	}
	if open != 0.95 || inProgress != 0.65 {
		t.Errorf("unexpected weights: open %f, in_progress %f", open, inProgress)
	}
	if Weight(report.Status("unknown")) != 0.5 {
		t.Errorf("unknown status weight must be 0.5")
	}
}

func TestMarkerRadius(t *testing.T) {
	testCases := []struct {
		status report.Status
		radius int
	}{
		{report.StatusOpen, 8},
		{report.StatusInProgress, 6},
		{report.StatusResolved, 4},
		{report.Status("unknown"), 5},
	}
	for _, testCase := range testCases {
		if got := MarkerRadius(testCase.status); got != testCase.radius {
			t.Errorf("MarkerRadius(%s): expected %d, got %d", testCase.status, testCase.radius, got)
		}
	}
}

func TestAggregateEmptyIsZeroFilled(t *testing.T) {
	byStatus := AggregateByStatus(nil)
	if len(byStatus) != 3 {
		t.Fatalf("expected 3 status entries, got %d", len(byStatus))
	}
	for _, s := range report.Statuses() {
		if count, ok := byStatus[s]; !ok || count != 0 {
			t.Errorf("expected zero count for %s, got %d (present: %v)", s, count, ok)
		}
	}

	byCategory := AggregateByCategory(nil)
	if len(byCategory) != 3 {
		t.Fatalf("expected 3 category entries, got %d", len(byCategory))
	}
	for _, c := range report.Categories() {
		if count, ok := byCategory[c]; !ok || count != 0 {
			t.Errorf("expected zero count for %s, got %d (present: %v)", c, count, ok)
		}
	}
}

func TestAggregateCounts(t *testing.T) {
	now := time.Now()
	reports := []report.Report{
		mkReport("1", report.CategoryPothole, report.StatusOpen, 1, 1, 0, now),
		mkReport("2", report.CategoryPothole, report.StatusResolved, 1, 1, 0, now),
		mkReport("3", report.CategoryGarbage, report.StatusOpen, 1, 1, 0, now),
	}
	byCategory := AggregateByCategory(reports)
	if byCategory[report.CategoryPothole] != 2 || byCategory[report.CategoryGarbage] != 1 || byCategory[report.CategoryOther] != 0 {
		t.Errorf("unexpected category counts: %v", byCategory)
	}
	byStatus := AggregateByStatus(reports)
	if byStatus[report.StatusOpen] != 2 || byStatus[report.StatusResolved] != 1 || byStatus[report.StatusInProgress] != 0 {
		t.Errorf("unexpected status counts: %v", byStatus)
	}
}

func TestParseBBox(t *testing.T) {
	testCases := []struct {
		name  string
		input string

		errExpected bool
		bbox        BBox
	}{
		{
			name:  "Valid",
			input: "77.0,28.5,77.5,28.8",
			bbox:  BBox{MinLng: 77.0, MinLat: 28.5, MaxLng: 77.5, MaxLat: 28.8},
		},
		{
			name:  "Valid with spaces",
			input: " 77.0, 28.5, 77.5, 28.8 ",
			bbox:  BBox{MinLng: 77.0, MinLat: 28.5, MaxLng: 77.5, MaxLat: 28.8},
		},
		{name: "Too few components", input: "1,2,3", errExpected: true},
		{name: "Too many components", input: "1,2,3,4,5", errExpected: true},
		{name: "Non-numeric", input: "1,2,x,4", errExpected: true},
		{name: "NaN component", input: "1,2,NaN,4", errExpected: true},
		{name: "Infinite component", input: "1,2,+Inf,4", errExpected: true},
		{name: "Empty", input: "", errExpected: true},
	}

	for _, testCase := range testCases {
		bbox, err := ParseBBox(testCase.input)
		if testCase.errExpected {
			if !errors.Is(err, report.ErrValidation) {
				t.Errorf("%s: expected ErrValidation, got %v", testCase.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", testCase.name, err)
			continue
		}
		if *bbox != testCase.bbox {
			t.Errorf("%s: expected %+v, got %+v", testCase.name, testCase.bbox, *bbox)
		}
	}
}

func TestBBoxContainsClosedRectangle(t *testing.T) {
	bbox := BBox{MinLng: 77.0, MinLat: 28.5, MaxLng: 77.5, MaxLat: 28.8}

	testCases := []struct {
		name     string
		lat, lng float64
		inside   bool
	}{
		{name: "Center", lat: 28.65, lng: 77.25, inside: true},
		{name: "Min corner on boundary", lat: 28.5, lng: 77.0, inside: true},
		{name: "Max corner on boundary", lat: 28.8, lng: 77.5, inside: true},
		{name: "On west edge", lat: 28.6, lng: 77.0, inside: true},
		{name: "Just outside north", lat: 28.81, lng: 77.25, inside: false},
		{name: "Just outside west", lat: 28.65, lng: 76.99, inside: false},
		{name: "Far away", lat: -33.9, lng: 151.2, inside: false},
	}

	for _, testCase := range testCases {
		if got := bbox.Contains(testCase.lat, testCase.lng); got != testCase.inside {
			t.Errorf("%s: Contains(%f, %f) = %v, expected %v",
				testCase.name, testCase.lat, testCase.lng, got, testCase.inside)
		}
	}
}

func TestApply(t *testing.T) {
	now := time.Now()
	day := 24 * time.Hour
	snapshot := []report.Report{
		mkReport("fresh-pothole", report.CategoryPothole, report.StatusOpen, 28.6, 77.2, 1*day, now),
		mkReport("old-pothole", report.CategoryPothole, report.StatusOpen, 28.6, 77.2, 45*day, now),
		mkReport("garbage-resolved", report.CategoryGarbage, report.StatusResolved, 28.7, 77.3, 2*day, now),
		mkReport("far-away", report.CategoryOther, report.StatusOpen, 48.85, 2.35, 1*day, now),
	}

	testCases := []struct {
		name   string
		filter Filter
		ids    []string
	}{
		{
			name:   "Default window drops old reports",
			filter: Filter{},
			ids:    []string{"fresh-pothole", "garbage-resolved", "far-away"},
		},
		{
			name:   "Category filter",
			filter: Filter{Category: "garbage"},
			ids:    []string{"garbage-resolved"},
		},
		{
			name:   "Category all is a no-op",
			filter: Filter{Category: "all"},
			ids:    []string{"fresh-pothole", "garbage-resolved", "far-away"},
		},
		{
			name:   "Status filter",
			filter: Filter{Status: "resolved"},
			ids:    []string{"garbage-resolved"},
		},
		{
			name:   "Window wide enough for old reports",
			filter: Filter{SinceDays: 60},
			ids:    []string{"fresh-pothole", "old-pothole", "garbage-resolved", "far-away"},
		},
		{
			name:   "Oversized window clamps to a year, still includes all",
			filter: Filter{SinceDays: 10000},
			ids:    []string{"fresh-pothole", "old-pothole", "garbage-resolved", "far-away"},
		},
		{
			name:   "Search is case-insensitive over title",
			filter: Filter{Search: "FRESH"},
			ids:    []string{"fresh-pothole"},
		},
		{
			name:   "BBox keeps Delhi, drops Paris",
			filter: Filter{BBox: &BBox{MinLng: 77.0, MinLat: 28.5, MaxLng: 77.5, MaxLat: 28.8}},
			ids:    []string{"fresh-pothole", "garbage-resolved"},
		},
	}

	for _, testCase := range testCases {
		got := Apply(snapshot, testCase.filter, now)
		if len(got) != len(testCase.ids) {
			t.Errorf("%s: expected %d reports, got %d", testCase.name, len(testCase.ids), len(got))
			continue
		}
		for i, id := range testCase.ids {
			if got[i].ID != id {
				t.Errorf("%s: position %d: expected %s, got %s", testCase.name, i, id, got[i].ID)
			}
		}
	}

	// Apply must not mutate the snapshot.
	if snapshot[1].ID != "old-pothole" {
		t.Error("Apply mutated the input snapshot")
	}
}

func TestClampedSinceDays(t *testing.T) {
	testCases := []struct {
		in  int
		out int
	}{
		{0, 30},
		{-5, 1},
		{1, 1},
		{365, 365},
		{366, 365},
	}
	for _, testCase := range testCases {
		if got := (Filter{SinceDays: testCase.in}).ClampedSinceDays(); got != testCase.out {
			t.Errorf("ClampedSinceDays(%d): expected %d, got %d", testCase.in, testCase.out, got)
		}
	}
}

func TestPoints(t *testing.T) {
	now := time.Now()
	reports := []report.Report{
		mkReport("a", report.CategoryPothole, report.StatusOpen, 28.6, 77.2, 0, now),
		mkReport("b", report.CategoryGarbage, report.StatusResolved, 28.7, 77.3, 0, now),
	}
	points := Points(reports)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0] != (Point{Lat: 28.6, Lng: 77.2, Weight: 0.95}) {
		t.Errorf("unexpected first point: %+v", points[0])
	}
	if points[1] != (Point{Lat: 28.7, Lng: 77.3, Weight: 0.2}) {
		t.Errorf("unexpected second point: %+v", points[1])
	}
}

func TestGeoJSON(t *testing.T) {
	now := time.Now()
	reports := []report.Report{
		mkReport("a", report.CategoryPothole, report.StatusOpen, 28.6, 77.2, 0, now),
	}
	fc := GeoJSON(reports)
	if len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(fc.Features))
	}
	f := fc.Features[0]
	if !f.Geometry.IsPoint() {
		t.Fatal("expected a point geometry")
	}
	// GeoJSON order is lng, lat.
	if f.Geometry.Point[0] != 77.2 || f.Geometry.Point[1] != 28.6 {
		t.Errorf("unexpected coordinates: %v", f.Geometry.Point)
	}
	if w, err := f.PropertyFloat64("weight"); err != nil || w != 0.95 {
		t.Errorf("expected weight property 0.95, got %v (%v)", w, err)
	}
	if cat, err := f.PropertyString("category"); err != nil || cat != "pothole" {
		t.Errorf("expected category property pothole, got %q (%v)", cat, err)
	}
}
