package engine

import (
	"strings"

	"roster-calendar/internal/model"
	"roster-calendar/internal/roster"
)

const (
	textDuty          = "Görev: "
	textOnCallStaff   = "Nöbetçi Uzman: "
	textResponsible   = "Sorumlu Uzman: "
	textOnCallTeam    = "Nöbet Ekibi:"
	textNotSpecified  = "Belirtilmemiş"
	textNotAssigned   = "Atanmamış"
	textPostCallNotes = "Nöbet sonrası dinlenme günü."
)

// teamMember one filled on-call team cell of the day
type teamMember struct {
	name  string
	label string
}

// onCallTeam lists the filled, non-placeholder on-call team cells of row.
func (e *Engine) onCallTeam(assistant *roster.Table, teamColumns []string, row roster.Row) []teamMember {
	var team []teamMember
	for _, col := range teamColumns {
		c := row.Cell(assistant.ColumnIndex(col))
		n := roster.NormalizeCell(c)
		if n == "" || e.opts.isPlaceholder(n) {
			continue
		}
		team = append(team, teamMember{name: strings.TrimSpace(c.Text), label: roster.DisplayLabel(col)})
	}
	return team
}

// buildEntry assembles title and description of one duty-day.
func buildEntry(m model.DutyMatch, kind model.DutyKind, a model.SupervisorAssignment, team []teamMember) model.CalendarEntry {
	label := roster.DisplayLabel(string(m.Column))
	sup, resolved := supervisorName(a)

	title := label
	lines := []string{textDuty + label}

	switch kind {
	case model.DutyOnCall:
		if resolved {
			title += " (" + sup + ")"
		} else {
			sup = textNotSpecified
		}
		lines = append(lines, textOnCallStaff+sup)
		if len(team) > 0 {
			lines = append(lines, textOnCallTeam)
			for _, tm := range team {
				lines = append(lines, "- "+tm.name+" ("+tm.label+")")
			}
		}

	case model.DutyPostCallRest:
		lines = append(lines, textPostCallNotes)

	case model.DutySurgery, model.DutyClinic:
		if resolved {
			title += " - " + sup
		} else {
			sup = textNotAssigned
		}
		lines = append(lines, textResponsible+sup)
	}

	return model.CalendarEntry{
		Date:        m.Date,
		Title:       title,
		Description: strings.Join(lines, "\n"),
		Kind:        kind,
		Column:      m.Column,
		Supervisors: a.Supervisors,
	}
}

func supervisorName(a model.SupervisorAssignment) (string, bool) {
	if !a.Resolved() {
		return "", false
	}
	return roster.DisplayLabel(string(a.Supervisors[0].StaffIdentity)), true
}
