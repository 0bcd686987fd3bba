package roster

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var spaceReplacer = strings.NewReplacer(
	"\u00a0", " ", // no-break space
	"\u202f", " ", // narrow no-break space
	"\t", " ",
)

// Normalize canonicalizes cell or label text for comparison: no-break spaces and tabs
// become spaces, surrounding whitespace is trimmed and the text is lower-cased with
// Turkish rules (I→ı, İ→i).
//
// Every name and label comparison goes through here. strings.ToLower maps "I" to "i"
// and leaves "İ" as "i̇", which breaks matching for names like "IŞIK" or "İNCİ".
func Normalize(s string) string {
	s = strings.TrimSpace(spaceReplacer.Replace(s))
	if s == "" {
		return ""
	}
	// a Caser is stateful, so one per call
	return cases.Lower(language.Turkish).String(s)
}

// NormalizeCell normalizes a cell; absent cells become "".
func NormalizeCell(c Cell) string {
	if !c.Present {
		return ""
	}
	return Normalize(c.Text)
}

// NormalizeAll normalizes every element, dropping the ones that end up empty.
func NormalizeAll(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if n := Normalize(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// ContainsAny reports whether text contains any of the (normalized) keywords.
func ContainsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(text, k) {
			return true
		}
	}
	return false
}
