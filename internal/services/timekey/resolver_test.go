package timekey

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveHour(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
		ok       bool
	}{
		{name: "12 AM is midnight", raw: "12 AM", expected: 0, ok: true},
		{name: "12 PM is noon", raw: "12 PM", expected: 12, ok: true},
		{name: "1 AM", raw: "1 AM", expected: 1, ok: true},
		{name: "11 PM", raw: "11 PM", expected: 23, ok: true},
		{name: "lowercase pm", raw: "3 pm", expected: 15, ok: true},
		{name: "no space before meridiem", raw: "7AM", expected: 7, ok: true},
		{name: "US datetime", raw: "07/30/2025 11:03", expected: 11, ok: true},
		{name: "ISO datetime with seconds", raw: "2025-07-30 23:03:00", expected: 23, ok: true},
		{name: "ISO datetime without seconds", raw: "2025-07-30 09:03", expected: 9, ok: true},
		{name: "US datetime with seconds", raw: "07/30/2025 11:03:45", expected: 11, ok: true},
		{name: "RFC3339 via fallback", raw: "2025-07-30T14:00:00Z", expected: 14, ok: true},
		{name: "surrounding whitespace", raw: "  2 PM  ", expected: 14, ok: true},
		{name: "meridiem hour out of range", raw: "13 PM", ok: false},
		{name: "meridiem hour zero", raw: "0 AM", ok: false},
		{name: "meridiem with trailing minutes", raw: "11:30 AM", ok: false},
		{name: "garbage", raw: "not-a-date", ok: false},
		{name: "empty", raw: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, ok := ResolveHour(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, hour)
			}
		})
	}
}

func TestResolveHourAllTwelveHourValues(t *testing.T) {
	// Standard 12-hour conversion over the full clock.
	for h := 1; h <= 12; h++ {
		am, ok := ResolveHour(strconv.Itoa(h) + " AM")
		assert.True(t, ok)
		pm, ok2 := ResolveHour(strconv.Itoa(h) + " PM")
		assert.True(t, ok2)

		if h == 12 {
			assert.Equal(t, 0, am)
			assert.Equal(t, 12, pm)
		} else {
			assert.Equal(t, h, am)
			assert.Equal(t, h+12, pm)
		}
	}
}

func TestResolveBusinessDate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		cutoff   int
		expected time.Time
		ok       bool
	}{
		{
			name:     "before cutoff shifts to previous day",
			raw:      "2025-05-16 01:00",
			cutoff:   5,
			expected: time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "after cutoff stays on same day",
			raw:      "2025-05-16 06:00",
			cutoff:   5,
			expected: time.Date(2025, 5, 16, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "exactly at cutoff stays on same day",
			raw:      "2025-05-16 05:00",
			cutoff:   5,
			expected: time.Date(2025, 5, 16, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "midnight cutoff never shifts",
			raw:      "2025-05-16 00:30",
			cutoff:   0,
			expected: time.Date(2025, 5, 16, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "shift across month boundary",
			raw:      "06/01/2025 02:00",
			cutoff:   4,
			expected: time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "date-only form has hour zero",
			raw:      "2025-05-16",
			cutoff:   5,
			expected: time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "day month year with weekday",
			raw:      "16 May 2025 (Friday)",
			cutoff:   0,
			expected: time.Date(2025, 5, 16, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "day month year",
			raw:      "16 May 2025",
			cutoff:   0,
			expected: time.Date(2025, 5, 16, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{name: "nan token rejected", raw: "nan", cutoff: 0, ok: false},
		{name: "None token rejected", raw: "None", cutoff: 0, ok: false},
		{name: "null token rejected", raw: "null", cutoff: 0, ok: false},
		{name: "empty rejected", raw: "", cutoff: 0, ok: false},
		{name: "garbage rejected", raw: "yesterday-ish", cutoff: 0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, ok := ResolveBusinessDate(tt.raw, tt.cutoff)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, date)
			}
		})
	}
}

func TestResolveReportDateDoesNotShift(t *testing.T) {
	// Report exports already carry business dates; no cutoff is applied
	// regardless of configuration.
	date, ok := ResolveReportDate("16 May 2025 (Friday)")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 5, 16, 0, 0, 0, 0, time.UTC), date)
}

func TestResolveReportDate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected time.Time
		ok       bool
	}{
		{name: "weekday form", raw: "2 Jun 2025 (Monday)", expected: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "day month year", raw: "2 Jun 2025", expected: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "US date", raw: "06/02/2025", expected: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "ISO date", raw: "2025-06-02", expected: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "blank token", raw: "nan", ok: false},
		{name: "garbage", raw: "??", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, ok := ResolveReportDate(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, date)
			}
		})
	}
}

func TestResolveCutoff(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
	}{
		{name: "five am", raw: "05:00", expected: 5},
		{name: "single digit hour", raw: "5:00", expected: 5},
		{name: "late evening", raw: "23:30", expected: 23},
		{name: "midnight", raw: "00:00", expected: 0},
		{name: "blank defaults to midnight", raw: "", expected: 0},
		{name: "whitespace defaults to midnight", raw: "   ", expected: 0},
		{name: "unparsable defaults to midnight", raw: "late", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveCutoff(tt.raw))
		})
	}
}
