package roster

import (
	"regexp"
	"sort"
	"strconv"
)

// NoBayNumber sort position of surgery columns that carry no number.
const NoBayNumber = 999

var firstNumberPattern = regexp.MustCompile(`\d+`)

// FirstNumber first run of digits in s.
func FirstNumber(s string) (int, bool) {
	m := firstNumberPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ColumnKeywords normalized keyword roots used to group columns.
type ColumnKeywords struct {
	OnCallTeam []string
	PostCall   string
	OnCall     string
	Surgery    string
}

// ColumnGroups semantic column groups of a roster table
type ColumnGroups struct {
	// DutyTeam on-call team columns, post-call rest columns excluded
	DutyTeam []string
	// SurgeryBays numbered operating-table columns ordered by bay number;
	// a column's position is its round-robin index
	SurgeryBays []string
}

// ClassifyColumns groups labels by keyword. Labels are compared after Normalize.
func ClassifyColumns(columns []string, kw ColumnKeywords) ColumnGroups {
	var g ColumnGroups
	for _, col := range columns {
		n := Normalize(col)
		// "nöbet ertesi" shares the on-call root, so the post-call marker excludes it
		if ContainsAny(n, kw.OnCallTeam) && !ContainsAny(n, []string{kw.PostCall}) {
			g.DutyTeam = append(g.DutyTeam, col)
		}
		if ContainsAny(n, []string{kw.Surgery}) && !ContainsAny(n, []string{kw.OnCall}) {
			g.SurgeryBays = append(g.SurgeryBays, col)
		}
	}

	sort.SliceStable(g.SurgeryBays, func(i, j int) bool {
		return bayNumber(g.SurgeryBays[i]) < bayNumber(g.SurgeryBays[j])
	})
	return g
}

func bayNumber(label string) int {
	if n, ok := FirstNumber(label); ok {
		return n
	}
	return NoBayNumber
}
