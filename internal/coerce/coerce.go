// =============================================================================
// Fechamento - Field Coercion
// =============================================================================
//
// Cell values arrive as strings from the spreadsheet readers and have to be
// coerced into their canonical types. Coercion never fails with an error:
// every function returns the coerced value plus an ok flag, and a false
// flag means "null". Rejecting rows built on nulls is the validator's job,
// not this package's.
//
// DATE STRATEGY:
//   Source spreadsheets mix ISO dates with Brazilian day-first dates, so
//   parsing is two-pass: the ISO layouts are tried first, then the
//   day-first layouts. The order matters: trying day-first first would
//   silently misread unambiguous ISO dates. A third pass accepts raw Excel
//   serial numbers for sheets whose date cells lost their number format.
//
// =============================================================================

package coerce

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// isoLayouts are tried first; they are unambiguous.
var isoLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
}

// dayFirstLayouts resolve the DD/MM ambiguity the Brazilian way.
var dayFirstLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02/01/2006 15:04:05",
}

// Excel serial dates worth accepting: 1 = 1899-12-31, 219146 = year 2500.
// Anything outside is far more likely a stray numeric column.
const (
	minSerialDate = 1
	maxSerialDate = 219146
)

// Date coerces a cell value to a calendar date. The time component of the
// result is always zero, in UTC.
func Date(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncate(t), true
		}
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncate(t), true
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil &&
		serial >= minSerialDate && serial <= maxSerialDate {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return truncate(t), true
		}
	}

	return time.Time{}, false
}

// Quantity coerces a cell value to an integral quantity. Numeric values
// with a fractional part ("3.5") are treated as invalid, while float
// renderings of whole numbers ("3.0") are accepted.
func Quantity(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if math.Trunc(f) != f || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// Price coerces a cell value to a decimal unit price. Anything that is not
// a plain decimal number (currency symbols, comma decimal separators)
// coerces to null rather than being guessed at.
func Price(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Identifier coerces a store or product identifier. Identifiers are opaque
// strings; only trimming is applied, and empty means null.
func Identifier(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
