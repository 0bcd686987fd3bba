package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"roster-calendar/internal/model"
	"roster-calendar/internal/roster"
)

// ── export errors ──

var (
	ErrExportNoEntries    = errors.New("no calendar entries to export")
	ErrExportGenerateFail = errors.New("failed to generate Excel workbook")
)

const (
	scheduleSheet = "Takvim"
	summarySheet  = "Özet"
)

// ExportService writes a personal schedule as an Excel workbook.
//
// Layout:
//   - sheet "Takvim": one row per entry (Tarih | Gün | Görev | Tür | Uzman | Açıklama)
//   - sheet "Özet": entry count per duty kind and the total
type ExportService interface {
	ExportSchedule(ctx context.Context, owner string, entries []model.CalendarEntry, stats model.Statistics) (*bytes.Buffer, error)
}

type exportService struct {
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(logger *zap.Logger) ExportService {
	return &exportService{logger: logger}
}

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "Pazartesi",
	time.Tuesday:   "Salı",
	time.Wednesday: "Çarşamba",
	time.Thursday:  "Perşembe",
	time.Friday:    "Cuma",
	time.Saturday:  "Cumartesi",
	time.Sunday:    "Pazar",
}

// ═══════════════════════════════════════════════════════════
// ExportSchedule - workbook of one person's entries
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportSchedule(ctx context.Context, owner string, entries []model.CalendarEntry, stats model.Statistics) (*bytes.Buffer, error) {
	if len(entries) == 0 {
		return nil, ErrExportNoEntries
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(scheduleSheet)
	if err != nil {
		s.logger.Error("create sheet failed", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	// drop the default sheet
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	wrapStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})

	// column widths
	f.SetColWidth(scheduleSheet, "A", "A", 12)
	f.SetColWidth(scheduleSheet, "B", "B", 12)
	f.SetColWidth(scheduleSheet, "C", "C", 22)
	f.SetColWidth(scheduleSheet, "D", "D", 14)
	f.SetColWidth(scheduleSheet, "E", "E", 22)
	f.SetColWidth(scheduleSheet, "F", "F", 60)

	// title row
	f.SetCellValue(scheduleSheet, "A1", fmt.Sprintf("%s - Görev Takvimi", owner))
	f.MergeCell(scheduleSheet, "A1", "F1")
	f.SetCellStyle(scheduleSheet, "A1", "F1", headerStyle)

	// header
	for i, h := range []string{"Tarih", "Gün", "Görev", "Tür", "Uzman", "Açıklama"} {
		f.SetCellValue(scheduleSheet, cell(colName(i), 2), h)
	}
	f.SetCellStyle(scheduleSheet, "A2", "F2", headerStyle)

	// data rows
	row := 3
	for _, e := range entries {
		f.SetCellValue(scheduleSheet, cell("A", row), e.Date.Format("02.01.2006"))
		f.SetCellValue(scheduleSheet, cell("B", row), weekdayNames[e.Date.Weekday()])
		f.SetCellValue(scheduleSheet, cell("C", row), roster.DisplayLabel(string(e.Column)))
		f.SetCellValue(scheduleSheet, cell("D", row), e.Kind.Label())
		f.SetCellValue(scheduleSheet, cell("E", row), supervisorNames(e.Supervisors))
		f.SetCellValue(scheduleSheet, cell("F", row), e.Description)
		row++
	}
	f.SetCellStyle(scheduleSheet, "F3", cell("F", row-1), wrapStyle)

	// summary
	if _, err := f.NewSheet(summarySheet); err != nil {
		s.logger.Error("create sheet failed", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	f.SetColWidth(summarySheet, "A", "A", 18)
	f.SetCellValue(summarySheet, "A1", "Tür")
	f.SetCellValue(summarySheet, "B1", "Sayı")
	f.SetCellStyle(summarySheet, "A1", "B1", headerStyle)
	row = 2
	for _, kind := range model.DutyKinds {
		f.SetCellValue(summarySheet, cell("A", row), kind.Label())
		f.SetCellValue(summarySheet, cell("B", row), stats.Get(kind))
		row++
	}
	f.SetCellValue(summarySheet, cell("A", row), "Toplam")
	f.SetCellValue(summarySheet, cell("B", row), stats.Total())

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write workbook failed", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	return buf, nil
}

func supervisorNames(sups []model.Supervisor) string {
	names := make([]string, 0, len(sups))
	for _, s := range sups {
		names = append(names, roster.DisplayLabel(string(s.StaffIdentity)))
	}
	return strings.Join(names, ", ")
}

// ── helpers ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
