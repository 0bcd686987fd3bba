package service

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"roster-calendar/config"
	"roster-calendar/internal/model"
	"roster-calendar/internal/roster"
)

// ── iCalendar writer ────────────────────────────────────────
//
// One all-day VEVENT per entry. Event UIDs are name-based UUIDs of
// (owner, date, column), so importing a regenerated calendar updates the
// existing events instead of duplicating them.
// ─────────────────────────────────────────────────────────────

var eventNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("roster-calendar/events"))

// ICSWriter renders calendar entries as an iCalendar document.
type ICSWriter struct {
	name      string
	productID string
	now       func() time.Time
}

// NewICSWriter creates an ICSWriter.
func NewICSWriter(cfg *config.CalendarConfig) *ICSWriter {
	return &ICSWriter{
		name:      cfg.Name,
		productID: cfg.ProductID,
		now:       time.Now,
	}
}

// Render serializes entries in order.
func (w *ICSWriter) Render(owner string, entries []model.CalendarEntry) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	if w.productID != "" {
		cal.SetProductId(w.productID)
	}
	cal.SetXWRCalName(calendarTitle(w.name, owner))

	stamp := w.now().UTC()
	for _, e := range entries {
		event := cal.AddEvent(eventUID(owner, e))
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(e.Date)
		event.SetAllDayEndAt(e.Date.AddDate(0, 0, 1))
		event.SetSummary(e.Title)
		event.SetDescription(e.Description)
		event.SetProperty(ics.ComponentPropertyCategories, e.Kind.Label())
	}
	return cal.Serialize()
}

func eventUID(owner string, e model.CalendarEntry) string {
	key := fmt.Sprintf("%s|%s|%s", roster.Normalize(owner), roster.DateKey(e.Date), e.Column)
	return uuid.NewSHA1(eventNamespace, []byte(key)).String()
}

func calendarTitle(name, owner string) string {
	if name == "" {
		return owner
	}
	return name + " - " + owner
}

// CalendarFilename download name of owner's calendar, e.g. "Ali_Veli_Program.ics".
func CalendarFilename(owner, suffix, ext string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', '"':
			return '_'
		}
		return r
	}, strings.TrimSpace(owner))
	return safe + suffix + ext
}
