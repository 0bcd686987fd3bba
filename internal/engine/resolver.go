package engine

import (
	"time"

	"roster-calendar/internal/model"
	"roster-calendar/internal/roster"
)

// resolve finds the staff member(s) backing a duty. Without a staff table, or
// when the staff table has no row for date, nothing is assigned.
func (e *Engine) resolve(staff *roster.Table, bays []string, date time.Time, column string, kind model.DutyKind) model.SupervisorAssignment {
	row, ok := staff.Lookup(date)
	if !ok {
		return model.SupervisorAssignment{}
	}

	kw := e.opts.Keywords
	switch kind {
	case model.DutyOnCall:
		return firstStaff(staff, row, func(cell string) bool {
			return roster.ContainsAny(cell, []string{kw.OnCall})
		})

	case model.DutySurgery:
		var candidates []model.Supervisor
		for i, label := range staff.Columns {
			cell := roster.NormalizeCell(row.Cell(i))
			if roster.ContainsAny(cell, []string{kw.Surgery}) && !roster.ContainsAny(cell, []string{kw.OnCall}) {
				candidates = append(candidates, supervisorAt(label, row.Cell(i)))
			}
		}
		if len(candidates) == 0 {
			return model.SupervisorAssignment{}
		}
		// more bays than supervisors wrap around
		idx := bayIndex(bays, column)
		return model.SupervisorAssignment{Supervisors: []model.Supervisor{candidates[idx%len(candidates)]}}

	case model.DutyClinic:
		want, numbered := roster.FirstNumber(roster.DisplayLabel(column))
		return firstStaff(staff, row, func(cell string) bool {
			if !roster.ContainsAny(cell, kw.Clinic) {
				return false
			}
			n, ok := roster.FirstNumber(cell)
			if !numbered {
				return !ok
			}
			return ok && n == want
		})
	}
	return model.SupervisorAssignment{}
}

// firstStaff assigns the first staff column whose normalized cell satisfies match.
func firstStaff(staff *roster.Table, row roster.Row, match func(cell string) bool) model.SupervisorAssignment {
	for i, label := range staff.Columns {
		cell := roster.NormalizeCell(row.Cell(i))
		if cell != "" && match(cell) {
			return model.SupervisorAssignment{Supervisors: []model.Supervisor{supervisorAt(label, row.Cell(i))}}
		}
	}
	return model.SupervisorAssignment{}
}

// supervisorAt staff rosters name the person in the column header.
func supervisorAt(label string, c roster.Cell) model.Supervisor {
	return model.Supervisor{StaffIdentity: model.ColumnLabel(label), CellText: c.Text}
}

// bayIndex position of column among the sorted surgery bays, 0 when absent.
func bayIndex(bays []string, column string) int {
	for i, b := range bays {
		if b == column {
			return i
		}
	}
	return 0
}
