package roster

import (
	"math"
	"regexp"
	"strconv"
	"time"
)

var (
	isoDatePattern      = regexp.MustCompile(`^(\d{4})[-./](\d{1,2})[-./](\d{1,2})(?:\D|$)`)
	dayFirstPattern     = regexp.MustCompile(`^(\d{1,2})[-./](\d{1,2})[-./](\d{4}|\d{2})(?:\D|$)`)
	monthNamePattern    = regexp.MustCompile(`^(\d{1,2})\.?\s+(\p{L}+)\.?\s+(\d{4})(?:\D|$)`)
	serialNumberPattern = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

// Excel serial day numbers accepted as dates (1954-10-03 .. 2119-01-10); small
// integers in the first column are day-of-month counters, not dates.
const (
	minExcelSerial = 20000
	maxExcelSerial = 80000
)

var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var monthNames = map[string]time.Month{
	"ocak": time.January, "oca": time.January, "january": time.January, "jan": time.January,
	"şubat": time.February, "şub": time.February, "february": time.February, "feb": time.February,
	"mart": time.March, "mar": time.March, "march": time.March,
	"nisan": time.April, "nis": time.April, "april": time.April, "apr": time.April,
	"mayıs": time.May, "may": time.May,
	"haziran": time.June, "haz": time.June, "june": time.June, "jun": time.June,
	"temmuz": time.July, "tem": time.July, "july": time.July, "jul": time.July,
	"ağustos": time.August, "ağu": time.August, "august": time.August, "aug": time.August,
	"eylül": time.September, "eyl": time.September, "september": time.September, "sep": time.September,
	"ekim": time.October, "eki": time.October, "october": time.October, "oct": time.October,
	"kasım": time.November, "kas": time.November, "november": time.November, "nov": time.November,
	"aralık": time.December, "ara": time.December, "december": time.December, "dec": time.December,
}

// ParseDate reads a roster date cell, day first: "05.03.2024", "5/3/24",
// "05-03-2024 Salı", "5 Mart 2024", ISO "2024-03-05" and Excel serial numbers.
// The result is midnight UTC of that calendar day.
func ParseDate(s string) (time.Time, bool) {
	s = Normalize(s)
	if s == "" {
		return time.Time{}, false
	}

	if m := isoDatePattern.FindStringSubmatch(s); m != nil {
		return civilDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := dayFirstPattern.FindStringSubmatch(s); m != nil {
		return civilDate(expandYear(m[3]), atoi(m[2]), atoi(m[1]))
	}
	if m := monthNamePattern.FindStringSubmatch(s); m != nil {
		month, ok := monthNames[m[2]]
		if !ok {
			return time.Time{}, false
		}
		return civilDate(atoi(m[3]), int(month), atoi(m[1]))
	}
	if serialNumberPattern.MatchString(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < minExcelSerial || f > maxExcelSerial {
			return time.Time{}, false
		}
		return excelEpoch.AddDate(0, 0, int(math.Floor(f))), true
	}
	return time.Time{}, false
}

// civilDate rejects overflowing values (31.02.2024) that time.Date would normalize.
func civilDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// expandYear two-digit years pivot at 69: 00-68 → 20xx, 69-99 → 19xx.
func expandYear(s string) int {
	y := atoi(s)
	if len(s) == 4 {
		return y
	}
	if y < 69 {
		return 2000 + y
	}
	return 1900 + y
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
