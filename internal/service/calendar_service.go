package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"roster-calendar/config"
	"roster-calendar/internal/engine"
	"roster-calendar/internal/model"
	"roster-calendar/internal/roster"
	apperrors "roster-calendar/pkg/errors"
)

// ── calendar errors ──

var (
	ErrCalendarNameRequired      = errors.New("name is required")
	ErrCalendarAssistantRequired = errors.New("assistant roster is required")
	ErrCalendarStaffRequired     = errors.New("staff roster is required")
	ErrCalendarNoDuties          = errors.New("name was not found in the roster")
)

// roster sources reported in load errors
const (
	SourceAssistant = "assistant"
	SourceStaff     = "staff"
)

// RosterUpload one uploaded roster file
type RosterUpload struct {
	Filename string
	Content  io.Reader
}

// CalendarRequest input of one calendar build
type CalendarRequest struct {
	Name      string
	Assistant *RosterUpload
	// Staff is optional unless engine.require_staff_roster is set
	Staff *RosterUpload
}

// CalendarResult entries and statistics of one person
type CalendarResult struct {
	Owner   string
	Entries []model.CalendarEntry
	Stats   model.Statistics
	Found   bool
}

// CalendarService turns uploaded rosters into a personal calendar.
//
// Every call loads its own tables; nothing is kept between calls.
// Load failures are returned as *apperrors.LoadError with Source set.
type CalendarService interface {
	// Build interprets the rosters; a name that matches nothing gives Found=false
	Build(ctx context.Context, req CalendarRequest) (*CalendarResult, error)
	// ExportICS returns the iCalendar document and its download filename
	ExportICS(ctx context.Context, req CalendarRequest) (*bytes.Buffer, string, error)
	// ExportXLSX returns the schedule workbook and its download filename
	ExportXLSX(ctx context.Context, req CalendarRequest) (*bytes.Buffer, string, error)
}

type calendarService struct {
	loader         *roster.Loader
	engine         *engine.Engine
	ics            *ICSWriter
	export         ExportService
	requireStaff   bool
	filenameSuffix string
	logger         *zap.Logger
}

// NewCalendarService creates a CalendarService.
func NewCalendarService(cfg *config.Config, export ExportService, logger *zap.Logger) CalendarService {
	return &calendarService{
		loader:         roster.NewLoader(roster.LoaderOptionsFromConfig(&cfg.Engine), logger),
		engine:         engine.New(engine.OptionsFromConfig(&cfg.Engine), logger),
		ics:            NewICSWriter(&cfg.Calendar),
		export:         export,
		requireStaff:   cfg.Engine.RequireStaffRoster,
		filenameSuffix: cfg.Calendar.FilenameSuffix,
		logger:         logger,
	}
}

// ═══════════════════════════════════════════════════════════
// Build - load both rosters and run the engine
// ═══════════════════════════════════════════════════════════

func (s *calendarService) Build(ctx context.Context, req CalendarRequest) (*CalendarResult, error) {
	// 1. validate input
	owner := strings.TrimSpace(req.Name)
	if owner == "" {
		return nil, ErrCalendarNameRequired
	}
	if req.Assistant == nil || req.Assistant.Content == nil {
		return nil, ErrCalendarAssistantRequired
	}
	hasStaff := req.Staff != nil && req.Staff.Content != nil
	if !hasStaff && s.requireStaff {
		return nil, ErrCalendarStaffRequired
	}

	// 2. load tables
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	assistant, err := s.load(SourceAssistant, req.Assistant)
	if err != nil {
		return nil, err
	}
	var staff *roster.Table
	if hasStaff {
		if staff, err = s.load(SourceStaff, req.Staff); err != nil {
			return nil, err
		}
	}

	// 3. interpret
	res, err := s.engine.Run(assistant, staff, owner)
	if err != nil {
		if errors.Is(err, engine.ErrEmptyTargetName) {
			return nil, ErrCalendarNameRequired
		}
		return nil, fmt.Errorf("interpret roster: %w", err)
	}

	s.logger.Info("calendar built",
		zap.Int("entries", len(res.Entries)),
		zap.Bool("found", res.Found),
		zap.Bool("staff_roster", staff != nil),
	)

	return &CalendarResult{
		Owner:   owner,
		Entries: res.Entries,
		Stats:   res.Stats,
		Found:   res.Found,
	}, nil
}

// ═══════════════════════════════════════════════════════════
// ExportICS / ExportXLSX - downloads; an empty result is ErrCalendarNoDuties
// ═══════════════════════════════════════════════════════════

func (s *calendarService) ExportICS(ctx context.Context, req CalendarRequest) (*bytes.Buffer, string, error) {
	res, err := s.buildFound(ctx, req)
	if err != nil {
		return nil, "", err
	}
	body := s.ics.Render(res.Owner, res.Entries)
	return bytes.NewBufferString(body), CalendarFilename(res.Owner, s.filenameSuffix, ".ics"), nil
}

func (s *calendarService) ExportXLSX(ctx context.Context, req CalendarRequest) (*bytes.Buffer, string, error) {
	res, err := s.buildFound(ctx, req)
	if err != nil {
		return nil, "", err
	}
	buf, err := s.export.ExportSchedule(ctx, res.Owner, res.Entries, res.Stats)
	if err != nil {
		return nil, "", err
	}
	return buf, CalendarFilename(res.Owner, s.filenameSuffix, ".xlsx"), nil
}

func (s *calendarService) buildFound(ctx context.Context, req CalendarRequest) (*CalendarResult, error) {
	res, err := s.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	if !res.Found {
		return nil, ErrCalendarNoDuties
	}
	return res, nil
}

func (s *calendarService) load(source string, up *RosterUpload) (*roster.Table, error) {
	t, err := s.loader.Load(up.Filename, up.Content)
	if err != nil {
		if le, ok := apperrors.AsLoadError(err); ok {
			le.Source = source
		}
		s.logger.Warn("roster load failed",
			zap.String("source", source),
			zap.String("file", up.Filename),
			zap.Error(err),
		)
		return nil, err
	}
	return t, nil
}
