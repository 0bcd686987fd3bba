package service

import (
	"go.uber.org/zap"

	"roster-calendar/config"
)

// Service aggregates all services.
type Service struct {
	Calendar CalendarService
}

// NewService creates the Service aggregate. The workbook exporter is only
// reached through the calendar service.
func NewService(cfg *config.Config, logger *zap.Logger) *Service {
	return &Service{
		Calendar: NewCalendarService(cfg, NewExportService(logger), logger),
	}
}
