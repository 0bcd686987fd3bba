package roster

import (
	"regexp"
	"strconv"
	"time"
)

// Cell one roster cell. Present is false for missing and blank cells.
type Cell struct {
	Text    string
	Present bool
}

// Row one dated roster row; Cells is aligned with Table.Columns.
type Row struct {
	Date  time.Time
	Cells []Cell
}

// Table a roster keyed by date.
//
// The date column is the row key and is not part of Columns. Labels are unique
// (see DedupLabels). Rows are in chronological order. A Table is read-only once
// built.
type Table struct {
	Columns []string
	Rows    []Row

	byDate map[string]int
}

// Lookup returns the first row dated date.
func (t *Table) Lookup(date time.Time) (Row, bool) {
	if t == nil {
		return Row{}, false
	}
	i, ok := t.byDate[DateKey(date)]
	if !ok {
		return Row{}, false
	}
	return t.Rows[i], true
}

// ColumnIndex position of label in Columns, or -1.
func (t *Table) ColumnIndex(label string) int {
	for i, c := range t.Columns {
		if c == label {
			return i
		}
	}
	return -1
}

// Cell returns the cell of row in column i; out-of-range columns are absent.
func (r Row) Cell(i int) Cell {
	if i < 0 || i >= len(r.Cells) {
		return Cell{}
	}
	return r.Cells[i]
}

// DateKey calendar-day key used for date lookups.
func DateKey(d time.Time) string {
	return d.Format("2006-01-02")
}

var dedupSuffix = regexp.MustCompile(`_\d+$`)

// DisplayLabel strips the "_N" suffix added by DedupLabels.
func DisplayLabel(label string) string {
	return dedupSuffix.ReplaceAllString(label, "")
}

// DedupLabels keeps the first occurrence of a label and suffixes later ones with
// _1, _2, … in order of appearance. Blank labels are named "Unnamed: <i>".
func DedupLabels(labels []string) []string {
	out := make([]string, len(labels))
	seen := make(map[string]bool, len(labels))
	counts := make(map[string]int, len(labels))

	for i, l := range labels {
		if l == "" {
			l = "Unnamed: " + strconv.Itoa(i)
		}
		name := l
		for seen[name] {
			counts[l]++
			name = l + "_" + strconv.Itoa(counts[l])
		}
		seen[name] = true
		out[i] = name
	}
	return out
}
