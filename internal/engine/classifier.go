package engine

import (
	"roster-calendar/internal/model"
	"roster-calendar/internal/roster"
)

// dutyRule one entry of the classification table
type dutyRule struct {
	kind  model.DutyKind
	match func(label string) bool
}

// newDutyRules builds the classification table. Rules are evaluated in order
// and the first match wins: post-call rest shares the on-call root, so it is
// checked first, and "acil ameliyat" is an on-call duty rather than a surgery.
func newDutyRules(kw Keywords) []dutyRule {
	return []dutyRule{
		{kind: model.DutyPostCallRest, match: containing(kw.PostCall)},
		{kind: model.DutyOnCall, match: containing(kw.OnCall, kw.Backup, kw.Emergency)},
		{kind: model.DutySurgery, match: containing(kw.Surgery)},
		{kind: model.DutyClinic, match: containing(kw.Clinic...)},
		{kind: model.DutyOther, match: func(string) bool { return true }},
	}
}

func containing(keywords ...string) func(string) bool {
	return func(label string) bool { return roster.ContainsAny(label, keywords) }
}

// Classify returns the duty kind of a column label. The "_N" suffix of
// repeated labels is ignored.
func (e *Engine) Classify(label string) model.DutyKind {
	n := roster.Normalize(roster.DisplayLabel(label))
	for _, r := range e.rules {
		if r.match(n) {
			return r.kind
		}
	}
	return model.DutyOther
}
