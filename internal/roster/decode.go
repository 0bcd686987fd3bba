package roster

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"roster-calendar/pkg/charset"
	apperrors "roster-calendar/pkg/errors"
)

// Format physical layout of an uploaded roster
type Format string

const (
	FormatDelimited Format = "delimited"
	FormatXLSX      Format = "xlsx"
	FormatXLS       Format = "xls"
)

var (
	zipMagic = []byte{'P', 'K', 0x03, 0x04}
	cfbMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// DetectFormat infers the format from the file extension, falling back to the
// leading bytes when the extension is missing or unknown.
func DetectFormat(filename string, raw []byte) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	case ".xls":
		return FormatXLS
	case ".csv", ".tsv", ".txt":
		return FormatDelimited
	}
	switch {
	case bytes.HasPrefix(raw, zipMagic):
		return FormatXLSX
	case bytes.HasPrefix(raw, cfbMagic):
		return FormatXLS
	default:
		return FormatDelimited
	}
}

// decodeStrict decodes raw and fails where a lenient decoder would substitute
// U+FFFD (invalid UTF-8, bytes undefined in a code page).
func decodeStrict(raw []byte, name string) (string, error) {
	enc, ok := charset.Lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown encoding %q", name)
	}
	if charset.IsUTF8(name) && !utf8.Valid(raw) {
		return "", fmt.Errorf("invalid %s", name)
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	if bytes.ContainsRune(out, utf8.RuneError) && !bytes.ContainsRune(raw, utf8.RuneError) {
		return "", fmt.Errorf("undefined bytes under %s", name)
	}
	return string(out), nil
}

var delimiterCandidates = []rune{',', ';', '\t', '|'}

// sniffDelimiter picks the candidate that occurs on the most of the first lines,
// then the one with the most occurrences. Defaults to comma.
func sniffDelimiter(text string) rune {
	lines := strings.Split(text, "\n")
	if len(lines) > 20 {
		lines = lines[:20]
	}

	best, bestLines, bestTotal := ',', 0, 0
	for _, d := range delimiterCandidates {
		nLines, total := 0, 0
		for _, l := range lines {
			if c := strings.Count(l, string(d)); c > 0 {
				nLines++
				total += c
			}
		}
		if nLines > bestLines || (nLines == bestLines && total > bestTotal) {
			best, bestLines, bestTotal = d, nLines, total
		}
	}
	return best
}

func parseDelimited(text string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sniffDelimiter(text)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

// readDelimited tries the candidate encodings in order and returns the records of
// the first decoding that parses, with the encoding used.
func readDelimited(raw []byte, encodings []string) ([][]string, string, error) {
	var errs []error
	for _, name := range encodings {
		text, err := decodeStrict(raw, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		records, err := parseDelimited(text)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		return records, name, nil
	}
	return nil, "", fmt.Errorf("%w: %v", apperrors.ErrUndecodable, errors.Join(errs...))
}

// readXLSX returns the rows of the first non-empty sheet. Raw cell values keep
// date cells as serial numbers instead of the month-first display format.
func readXLSX(raw []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUndecodable, err)
	}
	defer func() { _ = f.Close() }()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			continue
		}
		if len(trimBlankRecords(rows)) > 0 {
			return rows, nil
		}
	}
	return nil, apperrors.ErrNoTabularData
}

// readXLS opens a legacy workbook and re-decodes its 8-bit strings with the
// first candidate encoding that reads every cell.
func readXLS(raw []byte, encodings []string) ([][]string, string, error) {
	records, err := readXLSRecords(raw)
	if err != nil {
		return nil, "", err
	}
	return redecodeXLS(records, encodings)
}

func readXLSRecords(raw []byte) (rows [][]string, err error) {
	// the xls reader panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, fmt.Errorf("%w: malformed workbook: %v", apperrors.ErrUndecodable, r)
		}
	}()

	// the charset argument is not used by the reader
	wb, err := xls.OpenReader(bytes.NewReader(raw), "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUndecodable, err)
	}
	if wb == nil {
		return nil, fmt.Errorf("%w: no workbook stream", apperrors.ErrUndecodable)
	}

	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		var records [][]string
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				records = append(records, nil)
				continue
			}
			cells := make([]string, row.LastCol())
			for c := 0; c < row.LastCol(); c++ {
				cells[c] = row.Col(c)
			}
			records = append(records, cells)
		}
		if len(trimBlankRecords(records)) > 0 {
			return records, nil
		}
	}
	return nil, apperrors.ErrNoTabularData
}

// redecodeXLS the xls reader widens each byte of a compressed (8-bit) string
// to the rune of the same value, i.e. it always reads Latin-1. The original
// bytes are recovered and decoded with each candidate in turn; the first one
// that decodes every cell strictly wins.
func redecodeXLS(records [][]string, encodings []string) ([][]string, string, error) {
	var errs []error
	for _, name := range encodings {
		out, err := redecodeRecords(records, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		return out, name, nil
	}
	return nil, "", fmt.Errorf("%w: %v", apperrors.ErrUndecodable, errors.Join(errs...))
}

func redecodeRecords(records [][]string, name string) ([][]string, error) {
	out := make([][]string, len(records))
	for i, rec := range records {
		if rec == nil {
			continue
		}
		out[i] = make([]string, len(rec))
		for j, cell := range rec {
			text, err := redecodeCell(cell, name)
			if err != nil {
				return nil, err
			}
			out[i][j] = text
		}
	}
	return out, nil
}

// redecodeCell strings holding runes above U+00FF came from a UTF-16 record
// and are kept as they are.
func redecodeCell(cell, name string) (string, error) {
	raw, err := charmap.ISO8859_1.NewEncoder().String(cell)
	if err != nil {
		if !charset.Known(name) {
			return "", fmt.Errorf("unknown encoding %q", name)
		}
		return cell, nil
	}
	return decodeStrict([]byte(raw), name)
}

// trimBlankRecords drops records whose cells are all blank.
func trimBlankRecords(records [][]string) [][]string {
	out := records[:0:0]
	for _, r := range records {
		for _, c := range r {
			if strings.TrimSpace(c) != "" {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
