package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// RoundCurrency rounds an amount to cents, half away from zero
func RoundCurrency(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// HasCentPrecision reports whether the amount has at most two fractional digits
func HasCentPrecision(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(2))
}

// MonthsBetween returns the calendar-month difference between two dates.
// Day of month is ignored: Jan 31 -> Feb 1 counts as one month.
func MonthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()-start.Month())
}

// CalculateDueDate returns the due date of the installment at index n (0-based)
// Each call builds a new time.Time value.
func CalculateDueDate(startDate time.Time, n, intervalMonths int) time.Time {
	return startDate.AddDate(0, n*intervalMonths, 0)
}

// DateOnly returns the calendar date of t (as seen in t's own location) at UTC midnight,
// so dates from different locations compare by calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses the date formats accepted on creation requests
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}

// IsDateOverdue checks if a due date lies strictly before the day of now
func IsDateOverdue(dueDate, now time.Time) bool {
	return DateOnly(dueDate).Before(DateOnly(now))
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}
