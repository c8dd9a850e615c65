package utils

import (
	"fmt"
	"time"
)

// ParseDate parses an ISO 8601 date (YYYY-MM-DD) or RFC3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date: %q", s)
}

// ParseClock parses a wall-clock time (HH:MM or HH:MM:SS) onto the given
// date, so that entries carry full timestamps.
func ParseClock(date time.Time, s string) (time.Time, error) {
	var clock time.Time
	var err error
	if clock, err = time.Parse("15:04:05", s); err != nil {
		if clock, err = time.Parse("15:04", s); err != nil {
			return time.Time{}, fmt.Errorf("invalid time: %q", s)
		}
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, date.Location()), nil
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatClock formats a timestamp's wall-clock part as HH:MM.
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// FormatTimestamp formats a full timestamp as RFC3339.
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}
