package classify

import (
	"fmt"
	"strings"

	"civicmap/backend/report"
)

// Per-category keyword tables, tested in priority order: the first category
// with at least one substring hit wins.
var keywordTable = []struct {
	category report.Category
	words    []string
}{
	{report.CategoryPothole, []string{
		"pothole", "potholes", "road hole", "asphalt",
		"crack", "cracked road", "damaged road",
	}},
	{report.CategoryGarbage, []string{
		"garbage", "trash", "waste", "dump", "litter",
		"bin overflow", "overflowing", "overflow",
	}},
}

// classifyKeywords matches the lowercase concatenation of title and
// description against the keyword tables. Confidence grows with the number
// of matched keywords and is capped at 0.95.
func classifyKeywords(title, description string) (report.Classification, bool) {
	text := strings.ToLower(title + " " + description)
	for _, entry := range keywordTable {
		matched := 0
		var first string
		for _, w := range entry.words {
			if strings.Contains(text, w) {
				if matched == 0 {
					first = w
				}
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		confidence := 0.7 + 0.1*float64(matched)
		if confidence > 0.95 {
			confidence = 0.95
		}
		return report.Classification{
			Category:   entry.category,
			Confidence: confidence,
			Reason:     fmt.Sprintf("matched %d keyword(s), first %q", matched, first),
			Provider:   report.ProviderKeyword,
		}, true
	}
	return report.Classification{}, false
}
