package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlexibleDate(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"2025-04-10", "2025-04-10"},
		{"2025-04-10T09:30:00Z", "2025-04-10"},
		{"10-04-2025", "2025-04-10"},
		{"04/10/2025", "2025-04-10"},
		{"2025/04/10", "2025-04-10"},
		{"10 Apr 2025", "2025-04-10"},
		{"Apr 10, 2025", "2025-04-10"},
		{"10-04-25", "2025-04-10"},
		{" 2025-04-10 ", "2025-04-10"},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			parsed, ok := parseFlexibleDate(tc.raw)
			require.True(t, ok)
			assert.Equal(t, tc.want, dayKey(parsed))
		})
	}
}

func TestParseFlexibleDateRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "   ", "not a date", "99/99/9999"} {
		_, ok := parseFlexibleDate(raw)
		assert.False(t, ok, "expected %q to fail", raw)
	}
}

func TestSameCalendarDayIgnoresClockTime(t *testing.T) {
	morning := time.Date(2025, 4, 10, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 4, 10, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, sameCalendarDay(morning, evening))
	assert.False(t, sameCalendarDay(evening, nextDay))
}
