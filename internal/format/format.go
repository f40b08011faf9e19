// Package format renders prices and dates for display.
package format

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	NairaSign   = "₦"
	InvalidDate = "Invalid Date"
	dateLayout  = "2 Jan 2006"
)

var (
	printer = message.NewPrinter(language.English)
	// West Africa Time has no daylight saving.
	lagos = time.FixedZone("WAT", 60*60)
)

// FormatNaira prefixes amount with the Naira sign and groups its digits.
// Fractions are kept up to three digits; no currency rounding is applied.
func FormatNaira(amount float64) string {
	return NairaSign + printer.Sprint(number.Decimal(amount, number.MaxFractionDigits(3)))
}

// FormatDate renders t as "D MMM YYYY" in Lagos time. The zero time renders
// as InvalidDate.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return InvalidDate
	}
	return t.In(lagos).Format(dateLayout)
}

// FormatISODate parses a calendar date (YYYY-MM-DD) or an RFC 3339 timestamp
// and formats it like FormatDate. Unparseable input renders as InvalidDate.
func FormatISODate(s string) string {
	if t, err := time.ParseInLocation(time.DateOnly, s, lagos); err == nil {
		return FormatDate(t)
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return FormatDate(t)
	}
	return InvalidDate
}
