package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the ISO date format used as the store key.
const DateLayout = "2006-01-02"

// ToMinutes parses a 24-hour "HH:MM" clock string into minutes since
// midnight. Empty or malformed input yields 0 rather than an error, so a
// half-filled form never breaks a recompute.
func ToMinutes(clock string) int {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return 0
	}
	h, m, ok := strings.Cut(clock, ":")
	if !ok {
		return 0
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0
	}
	return hours*60 + minutes
}

// FormatDecimalHours renders a minute count as decimal hours with exactly
// two places, e.g. 90 -> "1.50". Negative input clamps to "0.00".
func FormatDecimalHours(minutes int) string {
	if minutes < 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(minutes)/60)
}

// DayOfWeek returns the full weekday name for an ISO date string, or ""
// if the date does not parse. The date is evaluated at local midnight so
// the weekday never drifts across a timezone boundary.
func DayOfWeek(date string) string {
	t, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}

// ValidDate reports whether date is a well-formed ISO calendar date.
func ValidDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

// WeekRange returns the Monday and Sunday of the ISO week containing t,
// formatted as store date keys.
func WeekRange(t time.Time) (string, string) {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	monday := t.AddDate(0, 0, -(wd - 1))
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format(DateLayout), sunday.Format(DateLayout)
}

// AddDays shifts an ISO date key by n calendar days. An invalid date is
// returned unchanged.
func AddDays(date string, n int) string {
	t, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, n).Format(DateLayout)
}
