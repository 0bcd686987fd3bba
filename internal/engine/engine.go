// Package engine interprets a loaded assistant roster for one person: it finds
// the person's duty on each date, classifies it, resolves the supervising staff
// member from the optional staff roster and builds the calendar entries.
package engine

import (
	"errors"

	"go.uber.org/zap"

	"roster-calendar/internal/model"
	"roster-calendar/internal/roster"
)

var (
	ErrEmptyTargetName  = errors.New("target name is empty")
	ErrNoAssistantTable = errors.New("assistant roster is required")
)

// Result outcome of one run. Found is false when the name matched no row,
// which is a normal outcome and not an error.
type Result struct {
	Entries []model.CalendarEntry
	Stats   model.Statistics
	Found   bool
}

// Engine is stateless between runs and safe for concurrent use.
type Engine struct {
	opts   Options
	rules  []dutyRule
	logger *zap.Logger
}

// New creates an Engine.
func New(opts Options, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = opts.normalized()
	return &Engine{
		opts:   opts,
		rules:  newDutyRules(opts.Keywords),
		logger: logger,
	}
}

// accumulator is threaded through the per-date loop by value.
type accumulator struct {
	entries []model.CalendarEntry
	stats   model.Statistics
}

func (a accumulator) add(entry model.CalendarEntry) accumulator {
	a.entries = append(a.entries, entry)
	a.stats = a.stats.Inc(entry.Kind)
	return a
}

// Run builds the calendar entries of target. staff may be nil. Entries come in
// the chronological order of the assistant roster, one per matched row.
func (e *Engine) Run(assistant, staff *roster.Table, target string) (*Result, error) {
	if assistant == nil {
		return nil, ErrNoAssistantTable
	}
	name := roster.Normalize(target)
	if name == "" {
		return nil, ErrEmptyTargetName
	}
	if !e.matchable(name) {
		e.logger.Debug("target name too short to match",
			zap.String("name", target),
			zap.Int("min_length", e.opts.MinNameLength),
		)
		return &Result{}, nil
	}

	groups := roster.ClassifyColumns(assistant.Columns, e.opts.columnKeywords())

	acc := accumulator{}
	for i, row := range assistant.Rows {
		col, ok := matchRow(row, name)
		if !ok {
			continue
		}
		m := model.DutyMatch{
			Date:     row.Date,
			Column:   model.ColumnLabel(assistant.Columns[col]),
			RowIndex: i,
		}
		acc = acc.add(e.entryFor(assistant, staff, groups, row, m))
	}

	e.logger.Debug("roster interpreted",
		zap.Int("rows", len(assistant.Rows)),
		zap.Int("entries", len(acc.entries)),
		zap.Bool("staff_roster", staff != nil),
		zap.Strings("duty_team_columns", groups.DutyTeam),
		zap.Strings("surgery_bays", groups.SurgeryBays),
	)

	return &Result{
		Entries: acc.entries,
		Stats:   acc.stats,
		Found:   len(acc.entries) > 0,
	}, nil
}

func (e *Engine) entryFor(assistant, staff *roster.Table, groups roster.ColumnGroups, row roster.Row, m model.DutyMatch) model.CalendarEntry {
	kind := e.Classify(string(m.Column))

	var (
		assignment model.SupervisorAssignment
		team       []teamMember
	)
	switch kind {
	case model.DutyOnCall:
		assignment = e.resolve(staff, groups.SurgeryBays, m.Date, string(m.Column), kind)
		team = e.onCallTeam(assistant, groups.DutyTeam, row)
	case model.DutySurgery, model.DutyClinic:
		assignment = e.resolve(staff, groups.SurgeryBays, m.Date, string(m.Column), kind)
	}
	return buildEntry(m, kind, assignment, team)
}
