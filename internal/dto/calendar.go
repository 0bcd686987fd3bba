package dto

import (
	"roster-calendar/internal/model"
	"roster-calendar/internal/roster"
)

// ── calendar module requests ──

// CalendarForm multipart fields of the calendar endpoints
//
//	name            target person (required)
//	assistant_file  assistant roster (required)
//	staff_file      staff roster (optional unless the server requires it)
const (
	FormFieldName      = "name"
	FormFieldAssistant = "assistant_file"
	FormFieldStaff     = "staff_file"
)

// ── calendar module responses ──

// StatisticsResponse entry count per duty kind
type StatisticsResponse struct {
	OnCall       int `json:"on_call"`
	PostCallRest int `json:"post_call_rest"`
	Surgery      int `json:"surgery"`
	Clinic       int `json:"clinic"`
	Other        int `json:"other"`
	Total        int `json:"total"`
}

// CalendarEntryResponse one all-day calendar entry
type CalendarEntryResponse struct {
	Date        string   `json:"date"` // YYYY-MM-DD
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Kind        string   `json:"kind"`
	KindLabel   string   `json:"kind_label"`
	Column      string   `json:"column"`
	Supervisors []string `json:"supervisors"`
}

// CalendarPreviewResponse result of POST /calendars/preview.
// Found=false with no entries when the name is not in the roster.
type CalendarPreviewResponse struct {
	Name       string                  `json:"name"`
	Found      bool                    `json:"found"`
	EntryCount int                     `json:"entry_count"`
	Statistics StatisticsResponse      `json:"statistics"`
	Entries    []CalendarEntryResponse `json:"entries"`
}

// NewCalendarPreviewResponse converts an engine result.
func NewCalendarPreviewResponse(name string, found bool, entries []model.CalendarEntry, stats model.Statistics) CalendarPreviewResponse {
	out := make([]CalendarEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, newCalendarEntryResponse(e))
	}
	return CalendarPreviewResponse{
		Name:       name,
		Found:      found,
		EntryCount: len(out),
		Statistics: StatisticsResponse{
			OnCall:       stats.OnCall,
			PostCallRest: stats.PostCallRest,
			Surgery:      stats.Surgery,
			Clinic:       stats.Clinic,
			Other:        stats.Other,
			Total:        stats.Total(),
		},
		Entries: out,
	}
}

func newCalendarEntryResponse(e model.CalendarEntry) CalendarEntryResponse {
	sups := make([]string, 0, len(e.Supervisors))
	for _, s := range e.Supervisors {
		sups = append(sups, roster.DisplayLabel(string(s.StaffIdentity)))
	}
	return CalendarEntryResponse{
		Date:        roster.DateKey(e.Date),
		Title:       e.Title,
		Description: e.Description,
		Kind:        string(e.Kind),
		KindLabel:   e.Kind.Label(),
		Column:      string(e.Column),
		Supervisors: sups,
	}
}
