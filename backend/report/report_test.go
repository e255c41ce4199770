package report

import (
	"errors"
	"math"
	"testing"
	"time"
)

func autoClassification() Classification {
	return Classification{
		Category:   CategoryPothole,
		Confidence: 0.9,
		Reason:     "matched keywords",
		Provider:   ProviderKeyword,
	}
}

func TestNew(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name  string
		input CreateInput
		cls   Classification

		errExpected      error
		category         Category
		autoExpected     bool
		titleExpected    string
	}{
		{
			name: "Auto categorized from classification",
			input: CreateInput{
				Title: "Big pothole",
				Lat:   28.6315,
				Lng:   77.2167,
			},
			cls:           autoClassification(),
			category:      CategoryPothole,
			autoExpected:  true,
			titleExpected: "Big pothole",
		},
		{
			name: "Manual category overrides classification",
			input: CreateInput{
				Title:    "Big pothole",
				Category: CategoryGarbage,
				Lat:      28.6315,
				Lng:      77.2167,
			},
			cls:           autoClassification(),
			category:      CategoryGarbage,
			autoExpected:  false,
			titleExpected: "Big pothole",
		},
		{
			name: "Empty title falls back to default when description present",
			input: CreateInput{
				Description:  "pile of trash",
				Lat:          1,
				Lng:          2,
				DefaultTitle: "Issue report",
			},
			cls:           autoClassification(),
			category:      CategoryPothole,
			autoExpected:  true,
			titleExpected: "",
		},
		{
			name: "Both empty with default title",
			input: CreateInput{
				Lat:          1,
				Lng:          2,
				DefaultTitle: "Issue report",
			},
			cls:           autoClassification(),
			category:      CategoryPothole,
			autoExpected:  true,
			titleExpected: "Issue report",
		},
		{
			name: "Both empty without default title",
			input: CreateInput{
				Lat: 1,
				Lng: 2,
			},
			cls:         autoClassification(),
			errExpected: ErrValidation,
		},
		{
			name: "NaN latitude",
			input: CreateInput{
				Title: "x",
				Lat:   math.NaN(),
				Lng:   2,
			},
			cls:         autoClassification(),
			errExpected: ErrValidation,
		},
		{
			name: "Infinite longitude",
			input: CreateInput{
				Title: "x",
				Lat:   1,
				Lng:   math.Inf(1),
			},
			cls:         autoClassification(),
			errExpected: ErrValidation,
		},
		{
			name: "Invalid manual category",
			input: CreateInput{
				Title:    "x",
				Category: Category("ufo"),
				Lat:      1,
				Lng:      2,
			},
			cls:         autoClassification(),
			errExpected: ErrInvalidCategory,
		},
		{
			name: "Invalid classification category",
			input: CreateInput{
				Title: "x",
				Lat:   1,
				Lng:   2,
			},
			cls:         Classification{Category: Category("ufo")},
			errExpected: ErrInvalidCategory,
		},
	}

	for _, testCase := range testCases {
		r, err := New(testCase.input, testCase.cls, now)
		if testCase.errExpected != nil {
			if !errors.Is(err, testCase.errExpected) {
				t.Errorf("%s: expected error %v, got %v", testCase.name, testCase.errExpected, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", testCase.name, err)
			continue
		}
		if r.Status != StatusOpen {
			t.Errorf("%s: expected status open, got %s", testCase.name, r.Status)
		}
		if r.Category != testCase.category {
			t.Errorf("%s: expected category %s, got %s", testCase.name, testCase.category, r.Category)
		}
		if r.AutoCategorized != testCase.autoExpected {
			t.Errorf("%s: expected autoCategorized %v, got %v", testCase.name, testCase.autoExpected, r.AutoCategorized)
		}
		if testCase.titleExpected != "" && r.Title != testCase.titleExpected {
			t.Errorf("%s: expected title %q, got %q", testCase.name, testCase.titleExpected, r.Title)
		}
		if r.ID == "" {
			t.Errorf("%s: expected an assigned id", testCase.name)
		}
		if !r.CreatedAt.Equal(now) {
			t.Errorf("%s: expected createdAt %v, got %v", testCase.name, now, r.CreatedAt)
		}
	}
}

func TestSetStatus(t *testing.T) {
	r, err := New(CreateInput{Title: "x", Lat: 1, Lng: 2}, autoClassification(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := *r

	// resolved -> open round trip must leave everything else untouched.
	if err := r.SetStatus(StatusResolved); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Status != StatusResolved {
		t.Errorf("expected status resolved, got %s", r.Status)
	}
	if err := r.SetStatus(StatusOpen); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *r != before {
		t.Errorf("round trip changed non-status fields: %+v != %+v", *r, before)
	}

	if err := r.SetStatus(Status("closed")); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if r.Status != StatusOpen {
		t.Errorf("rejected transition must not change status, got %s", r.Status)
	}
}

func TestParseEnums(t *testing.T) {
	for _, s := range []string{"open", "in_progress", "resolved"} {
		if _, err := ParseStatus(s); err != nil {
			t.Errorf("ParseStatus(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseStatus("done"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	for _, s := range []string{"pothole", "garbage", "other"} {
		if _, err := ParseCategory(s); err != nil {
			t.Errorf("ParseCategory(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseCategory(""); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("expected ErrInvalidCategory, got %v", err)
	}
}
