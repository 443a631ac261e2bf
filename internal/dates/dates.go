// Package dates holds the date parsing and calendar arithmetic shared by
// the ingest and enrichment stages. All dates are normalized to midnight
// UTC so that day comparisons are exact regardless of source timezone.
package dates

import (
	"strings"
	"time"
)

// layouts are tried in order when parsing a date cell. Spreadsheet
// exports commonly carry a time component even for pure dates.
var layouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"02/01/2006",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// Parse converts a free-text date cell to a normalized date. Empty and
// malformed input both yield nil; a bad date is never an error.
func Parse(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := Day(t)
			return &d
		}
	}
	return nil
}

// Day truncates a timestamp to midnight UTC on the same calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Between returns the whole days from a to b (positive when b is later).
// Both arguments are normalized first, so partial days never round.
func Between(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)) / (24 * time.Hour))
}

// AddDays returns the date n days after d.
func AddDays(d time.Time, n int) time.Time {
	return Day(d).AddDate(0, 0, n)
}

// Format renders a date as ISO (YYYY-MM-DD), or "" for nil.
func Format(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format("2006-01-02")
}
