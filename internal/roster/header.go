package roster

import (
	"strings"
)

// HeaderScore number of distinct keywords found in the normalized, concatenated
// text of row.
func HeaderScore(row []string, keywords []string) int {
	var b strings.Builder
	for _, cell := range row {
		if n := Normalize(cell); n != "" {
			b.WriteString(n)
			b.WriteByte(' ')
		}
	}
	text := b.String()

	score := 0
	for _, k := range keywords {
		if k != "" && strings.Contains(text, k) {
			score++
		}
	}
	return score
}

// DetectHeaderRow picks the header among the first scanRows records: the row with
// the highest keyword score, the earliest one on ties. When no row scores above
// zero the first row is the header.
//
// Rosters come from different clinics with no common template, so the header is
// found by content instead of position.
func DetectHeaderRow(records [][]string, keywords []string, scanRows int) int {
	limit := scanRows
	if limit > len(records) {
		limit = len(records)
	}

	best, bestScore := 0, 0
	for i := 0; i < limit; i++ {
		if s := HeaderScore(records[i], keywords); s > bestScore {
			best, bestScore = i, s
		}
	}
	return best
}
