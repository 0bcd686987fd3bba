package handler

import "roster-calendar/internal/service"

// Handler aggregates all handlers.
type Handler struct {
	Calendar *CalendarHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Calendar: NewCalendarHandler(svc.Calendar),
	}
}
