// Package format renders raw record values for display.
package format

import (
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"hrms/internal/domain/hr"
)

const Placeholder = "-"

var printer = message.NewPrinter(language.English)

// Currency renders an amount in USD, e.g. "$85,000.00".
func Currency(amount float64) string {
	return money.NewFromFloat(amount, money.USD).Display()
}

// Number renders a value with thousands separators and the given precision.
func Number(v float64, precision int) string {
	return printer.Sprintf("%.*f", precision, v)
}

// Hours renders a duration in hours with one decimal, e.g. "7.5h".
func Hours(h float64) string {
	return printer.Sprintf("%.1fh", h)
}

// Date renders a raw date or timestamp as "Jan 2, 2006", or the placeholder.
func Date(raw string) string {
	t, ok := hr.ParseTime(raw)
	if !ok {
		return Placeholder
	}
	return t.Format("Jan 2, 2006")
}

// Clock renders the time-of-day of a timestamp, e.g. "9:05 AM".
func Clock(raw string) string {
	t, ok := hr.ParseTime(raw)
	if !ok {
		return Placeholder
	}
	return t.Format(time.Kitchen)
}

// Label turns an enum value such as "FULL_TIME" into "Full Time".
func Label(raw string) string {
	if raw == "" {
		return Placeholder
	}
	return cases.Title(language.English).String(strings.ReplaceAll(strings.ToLower(raw), "_", " "))
}

// Days renders a day count with its unit.
func Days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return printer.Sprintf("%d days", n)
}
