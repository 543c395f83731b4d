// Package timekey resolves the inconsistently formatted timestamp and date
// strings found in sales exports into bucket keys: an hour of day, or a
// business date shifted by the operating-hours cutoff.
package timekey

import (
	"strconv"
	"strings"
	"time"
)

// Layouts tried for timestamps carrying a time component. Order matters:
// some layouts are prefixes of others, so the first match wins.
var datetimeLayouts = []string{
	"1/2/2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 15:04:05",
}

// Layouts tried when resolving business dates: the datetime layouts first,
// then date-only forms.
var businessDateLayouts = []string{
	"1/2/2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006",
	"2006-01-02",
	"2 Jan 2006 (Monday)",
	"2 Jan 2006",
}

// Layouts for report exports, which carry date-only values.
var reportDateLayouts = []string{
	"2 Jan 2006 (Monday)",
	"2 Jan 2006",
	"1/2/2006",
	"2006-01-02",
}

// Last-resort layouts tried when none of the fixed lists match.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"1/2/2006 3:04 PM",
	"1/2/2006 3:04:05 PM",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
	"02-01-2006 15:04",
	"Jan 2, 2006 15:04",
	"Jan 2, 2006",
	"2 January 2006",
}

// Tokens that spreadsheet exports emit for missing values.
var blankTokens = map[string]struct{}{
	"":     {},
	"nan":  {},
	"none": {},
	"null": {},
}

// ResolveHour extracts the hour of day from a raw time string. Plain
// 12-hour forms like "11 AM" are handled first, then the datetime layouts,
// then the generic fallback. Returns ok=false when no hour can be
// determined; callers drop the row rather than abort.
func ResolveHour(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	upper := strings.ToUpper(s)

	if strings.Contains(upper, "AM") || strings.Contains(upper, "PM") {
		digits := strings.TrimSpace(strings.NewReplacer("AM", "", "PM", "").Replace(upper))
		hour, err := strconv.Atoi(digits)
		if err != nil || hour < 1 || hour > 12 {
			return 0, false
		}
		if strings.Contains(upper, "PM") && hour != 12 {
			hour += 12
		} else if strings.Contains(upper, "AM") && hour == 12 {
			hour = 0
		}
		return hour, true
	}

	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour(), true
		}
	}
	if t, ok := parseAny(s); ok {
		return t.Hour(), true
	}
	return 0, false
}

// ResolveBusinessDate resolves a timestamp to the business date it belongs
// to: a timestamp whose hour is strictly before cutoffHour counts toward
// the previous calendar day. Pure function of (raw, cutoffHour).
func ResolveBusinessDate(raw string, cutoffHour int) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if _, blank := blankTokens[strings.ToLower(s)]; blank {
		return time.Time{}, false
	}

	ts, ok := parseFirst(s, businessDateLayouts)
	if !ok {
		ts, ok = parseAny(s)
	}
	if !ok {
		return time.Time{}, false
	}

	date := midnight(ts)
	if ts.Hour() < cutoffHour {
		date = date.AddDate(0, 0, -1)
	}
	return date, true
}

// ResolveReportDate parses a date from a report export. Report exports are
// already expressed in business-date terms, so no cutoff shift is applied;
// shifting here would double-shift the date.
func ResolveReportDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if _, blank := blankTokens[strings.ToLower(s)]; blank {
		return time.Time{}, false
	}
	if t, ok := parseFirst(s, reportDateLayouts); ok {
		return midnight(t), true
	}
	if t, ok := parseAny(s); ok {
		return midnight(t), true
	}
	return time.Time{}, false
}

// ResolveCutoff parses an operating-hours cutoff like "05:00". Blank or
// unparsable input means the business day starts at midnight.
func ResolveCutoff(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0
	}
	return t.Hour()
}

func parseFirst(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseAny(s string) (time.Time, bool) {
	return parseFirst(s, fallbackLayouts)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
