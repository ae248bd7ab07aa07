// Package timezone provides timezone helpers shared by configuration,
// time normalization and summary rendering.
package timezone

import (
	"fmt"
	"time"
)

const (
	// TimezoneLocal selects the process-local timezone.
	TimezoneLocal = "Local"

	// TimezoneUTC is the UTC timezone identifier.
	TimezoneUTC = "UTC"
)

// ParseTimezone parses an IANA timezone identifier (e.g., "Europe/Berlin").
// An empty identifier or "Local" selects the process-local timezone.
// If the timezone is invalid, returns time.Local and an error.
func ParseTimezone(tz string) (*time.Location, error) {
	switch tz {
	case "", TimezoneLocal:
		return time.Local, nil
	case TimezoneUTC:
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Local, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

// IsValidTimezone checks if a timezone identifier is valid.
func IsValidTimezone(tz string) bool {
	_, err := ParseTimezone(tz)
	return err == nil
}

// StartOfDay returns the start of the day (00:00:00) in the given timezone.
func StartOfDay(t time.Time, tz *time.Location) time.Time {
	if tz == nil {
		tz = time.Local
	}
	local := t.In(tz)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, tz)
}

// EndOfDay returns the end of the day (23:59:59.999999999) in the given timezone.
func EndOfDay(t time.Time, tz *time.Location) time.Time {
	return StartOfDay(t, tz).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// FormatSpan formats an activity's time extent for display.
// Rules:
//   - No end: "2006-01-02 15:04"
//   - Same day: "2006-01-02 15:04 - 16:00"
//   - Spanning days: "2006-01-02 23:10 - 2006-01-03 01:00"
func FormatSpan(start time.Time, end *time.Time, tz *time.Location) string {
	if tz == nil {
		tz = time.Local
	}
	s := start.In(tz)
	if end == nil {
		return s.Format("2006-01-02 15:04")
	}
	e := end.In(tz)
	if s.Year() == e.Year() && s.YearDay() == e.YearDay() {
		return fmt.Sprintf("%s - %s", s.Format("2006-01-02 15:04"), e.Format("15:04"))
	}
	return fmt.Sprintf("%s - %s", s.Format("2006-01-02 15:04"), e.Format("2006-01-02 15:04"))
}
