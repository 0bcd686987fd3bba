package model

import "time"

// DutyKind classification of a duty column
type DutyKind string

const (
	DutyOnCall       DutyKind = "on_call"
	DutyPostCallRest DutyKind = "post_call_rest"
	DutySurgery      DutyKind = "surgery"
	DutyClinic       DutyKind = "clinic"
	DutyOther        DutyKind = "other"
)

// DutyKinds lists every kind in reporting order.
var DutyKinds = []DutyKind{DutyOnCall, DutyPostCallRest, DutySurgery, DutyClinic, DutyOther}

var dutyKindLabels = map[DutyKind]string{
	DutyOnCall:       "Nöbet",
	DutyPostCallRest: "Nöbet Ertesi",
	DutySurgery:      "Ameliyat",
	DutyClinic:       "Poliklinik",
	DutyOther:        "Diğer",
}

// Label display name in the roster's language
func (k DutyKind) Label() string {
	if l, ok := dutyKindLabels[k]; ok {
		return l
	}
	return string(k)
}

// ColumnLabel a (deduplicated) column header of a roster table
type ColumnLabel string

// DutyMatch pairs a roster date with the column holding the target name on that date.
type DutyMatch struct {
	Date     time.Time
	Column   ColumnLabel
	RowIndex int
}

// Supervisor a staff member resolved for a duty.
// Staff rosters carry the person in the column header, not in the cell, so the
// identity is the staff table's column label.
type Supervisor struct {
	StaffIdentity ColumnLabel
	CellText      string
}

// SupervisorAssignment zero or more supervisors for one duty-day
type SupervisorAssignment struct {
	Supervisors []Supervisor
}

// Resolved reports whether anyone was assigned.
func (a SupervisorAssignment) Resolved() bool { return len(a.Supervisors) > 0 }

// CalendarEntry one all-day event of the personal calendar
type CalendarEntry struct {
	Date        time.Time
	Title       string
	Description string
	Kind        DutyKind
	Column      ColumnLabel
	Supervisors []Supervisor
}
