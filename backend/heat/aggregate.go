package heat

import (
	"civicmap/backend/report"
)

// AggregateByCategory counts reports per category. Every category is
// present in the output, zero-filled if unseen.
func AggregateByCategory(reports []report.Report) map[report.Category]int {
	counts := make(map[report.Category]int, 3)
	for _, c := range report.Categories() {
		counts[c] = 0
	}
	for _, r := range reports {
		counts[r.Category]++
	}
	return counts
}

// AggregateByStatus counts reports per status. Every status is present in
// the output, zero-filled if unseen.
func AggregateByStatus(reports []report.Report) map[report.Status]int {
	counts := make(map[report.Status]int, 3)
	for _, s := range report.Statuses() {
		counts[s] = 0
	}
	for _, r := range reports {
		counts[r.Status]++
	}
	return counts
}
