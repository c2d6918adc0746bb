package service

import (
	"strings"
	"time"
)

// Roster imports arrive with dates typed by hand in several regional
// conventions. ISO forms are tried first so unambiguous input never gets
// reinterpreted.
var flexibleDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"02-01-2006",
	"01/02/2006",
	"2006/01/02",
	"02 Jan 2006",
	"Jan 02, 2006",
	"02-01-06",
	"01/02/06",
}

// parseFlexibleDate parses a date string against the accepted layouts in
// order. The boolean is false when no layout matches.
func parseFlexibleDate(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range flexibleDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseExamDate exposes the flexible date parser to callers outside the
// service layer, chiefly query-parameter handling.
func ParseExamDate(raw string) (time.Time, bool) {
	return parseFlexibleDate(raw)
}

// dayKey reduces a timestamp to its calendar day for comparisons that must
// ignore clock time and zone offsets within a day.
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// sameCalendarDay reports whether two timestamps fall on the same day.
func sameCalendarDay(a, b time.Time) bool {
	return dayKey(a) == dayKey(b)
}
