package engine

import (
	"strings"
	"unicode/utf8"

	"roster-calendar/internal/roster"
)

// matchable reports whether a normalized target name is long enough to match.
// Short names would hit duty codes and initials all over the roster.
func (e *Engine) matchable(name string) bool {
	return utf8.RuneCountInString(name) >= e.opts.MinNameLength
}

// matchRow returns the first column, in table order, whose cell contains name.
// name must already be normalized.
func matchRow(row roster.Row, name string) (int, bool) {
	if name == "" {
		return 0, false
	}
	for i, c := range row.Cells {
		if strings.Contains(roster.NormalizeCell(c), name) {
			return i, true
		}
	}
	return 0, false
}
