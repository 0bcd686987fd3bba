package roster

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"roster-calendar/config"
	apperrors "roster-calendar/pkg/errors"
)

// LoaderOptions controls decoding and header detection.
type LoaderOptions struct {
	// Encodings candidate text encodings, tried in order
	Encodings []string
	// HeaderScanRows how many leading rows may hold the header
	HeaderScanRows int
	// HeaderKeywords terms that mark a header row; normalized by NewLoader
	HeaderKeywords []string
}

// LoaderOptionsFromConfig maps the engine section of the configuration.
func LoaderOptionsFromConfig(cfg *config.EngineConfig) LoaderOptions {
	return LoaderOptions{
		Encodings:      cfg.Encodings,
		HeaderScanRows: cfg.HeaderScanRows,
		HeaderKeywords: cfg.HeaderKeywords,
	}
}

func (o LoaderOptions) withDefaults() LoaderOptions {
	if len(o.Encodings) == 0 {
		o.Encodings = []string{"utf-8", "windows-1254", "iso-8859-9"}
	}
	if o.HeaderScanRows <= 0 {
		o.HeaderScanRows = 20
	}
	if len(o.HeaderKeywords) == 0 {
		o.HeaderKeywords = config.DefaultHeaderKeywords
	}
	o.HeaderKeywords = NormalizeAll(o.HeaderKeywords)
	return o
}

// Loader turns uploaded roster files into Tables.
type Loader struct {
	opts   LoaderOptions
	logger *zap.Logger
}

// NewLoader creates a Loader.
func NewLoader(opts LoaderOptions, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{opts: opts.withDefaults(), logger: logger}
}

// Load reads a whole roster file. filename only serves format detection and
// messages. Failures are *apperrors.LoadError; rows that cannot be dated are
// dropped silently.
func (l *Loader) Load(filename string, r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.NewLoadError(filename, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, apperrors.NewLoadError(filename, apperrors.ErrNoTabularData)
	}

	format := DetectFormat(filename, raw)
	var (
		records  [][]string
		encoding string
	)
	switch format {
	case FormatXLSX:
		records, err = readXLSX(raw)
	case FormatXLS:
		records, encoding, err = readXLS(raw, l.opts.Encodings)
	default:
		records, encoding, err = readDelimited(raw, l.opts.Encodings)
	}
	if err != nil {
		return nil, apperrors.NewLoadError(filename, err)
	}

	table, stats, err := buildTable(records, l.opts)
	if err != nil {
		return nil, apperrors.NewLoadError(filename, err)
	}

	l.logger.Debug("roster loaded",
		zap.String("file", filename),
		zap.String("format", string(format)),
		zap.String("encoding", encoding),
		zap.Int("header_row", stats.headerRow),
		zap.Int("columns", len(table.Columns)),
		zap.Int("rows", len(table.Rows)),
		zap.Int("undated_rows", stats.undated),
	)
	return table, nil
}

// FromRecords builds a Table from raw rows that have no header yet, applying
// header detection, label deduplication and date indexing.
func FromRecords(records [][]string, opts LoaderOptions) (*Table, error) {
	t, _, err := buildTable(records, opts.withDefaults())
	return t, err
}

type buildStats struct {
	headerRow int
	undated   int
}

func buildTable(records [][]string, opts LoaderOptions) (*Table, buildStats, error) {
	var stats buildStats

	records = trimBlankRecords(records)
	if len(records) == 0 {
		return nil, stats, apperrors.ErrNoTabularData
	}

	stats.headerRow = DetectHeaderRow(records, opts.HeaderKeywords, opts.HeaderScanRows)
	header := records[stats.headerRow]
	body := records[stats.headerRow+1:]

	width := len(header)
	for _, r := range body {
		if len(r) > width {
			width = len(r)
		}
	}
	if width < 2 {
		return nil, stats, fmt.Errorf("%w: a date column and at least one duty column are required", apperrors.ErrNoTabularData)
	}

	labels := make([]string, width)
	for i := range labels {
		if i < len(header) {
			labels[i] = strings.TrimSpace(header[i])
		}
	}
	labels = DedupLabels(labels)

	t := &Table{Columns: labels[1:]}
	for _, rec := range body {
		if len(rec) == 0 {
			continue
		}
		date, ok := ParseDate(rec[0])
		if !ok {
			stats.undated++
			continue
		}
		cells := make([]Cell, width-1)
		for i := 1; i < width && i < len(rec); i++ {
			text := strings.TrimSpace(rec[i])
			cells[i-1] = Cell{Text: text, Present: text != ""}
		}
		t.Rows = append(t.Rows, Row{Date: date, Cells: cells})
	}
	if len(t.Rows) == 0 {
		return nil, stats, fmt.Errorf("%w: no row has a readable date in column %q", apperrors.ErrNoTabularData, labels[0])
	}

	sort.SliceStable(t.Rows, func(i, j int) bool { return t.Rows[i].Date.Before(t.Rows[j].Date) })
	t.byDate = make(map[string]int, len(t.Rows))
	for i, r := range t.Rows {
		if _, dup := t.byDate[DateKey(r.Date)]; !dup {
			t.byDate[DateKey(r.Date)] = i
		}
	}
	return t, stats, nil
}
