package expiration

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dateOnlyPattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	datePrefixPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	estimatePattern   = regexp.MustCompile(`(?i)(\d+)\s*(day|week|month|year)s?`)
)

// ParseExpiration normalizes an expiration value into a single in-memory
// time. Two source shapes are accepted: a bare local date ("2026-01-05")
// and a full RFC3339 timestamp. A bare date maps to the last second of
// that day, so a date-only item expiring "today" still counts down rather
// than reading as already expired.
//
// Anything else is a validation error; callers at the ingestion boundary
// must reject the record rather than store it.
func ParseExpiration(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("expiration date is empty")
	}

	if dateOnlyPattern.MatchString(s) {
		d, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid expiration date %q: %w", s, err)
		}
		// Build 23:59:59 from the date's components rather than adding a
		// duration; on DST transition days the day is not 24 hours long and
		// an elapsed-time add lands on the wrong wall clock.
		y, m, day := d.Date()
		return time.Date(y, m, day, 23, 59, 59, 0, time.Local), nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unparseable expiration date %q", s)
}

// IsValidDate reports whether s is a strict YYYY-MM-DD calendar date.
// Non-ISO shapes ("02/09/2026", "2026-2-9") and impossible dates
// ("2026-02-30") are rejected; leap days are honored.
func IsValidDate(s string) bool {
	if !dateOnlyPattern.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// DayKey derives the canonical "YYYY-MM-DD" calendar-day key an expiration
// value falls on, in local time. Bare-date and date-prefixed values take
// the fast path (the first 10 characters, verified to be a real date);
// everything else goes through full timestamp parsing. Returns false for
// values that cannot be placed on any calendar day.
func DayKey(expiration string) (string, bool) {
	s := strings.TrimSpace(expiration)
	if datePrefixPattern.MatchString(s) {
		prefix := s[:10]
		if _, err := time.Parse("2006-01-02", prefix); err == nil {
			return prefix, true
		}
		return "", false
	}

	t, err := ParseExpiration(s)
	if err != nil {
		return "", false
	}
	return t.Local().Format("2006-01-02"), true
}

// ParseEstimate converts a shelf-life phrase produced by the image scanner,
// like "3 days", "2 weeks" or "1 month", into a concrete expiration date
// counted from now. Returns false when no duration can be recognized
// (e.g. "Unknown").
func ParseEstimate(s string, now time.Time) (time.Time, bool) {
	m := estimatePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}

	switch strings.ToLower(m[2]) {
	case "day":
		return now.AddDate(0, 0, n), true
	case "week":
		return now.AddDate(0, 0, 7*n), true
	case "month":
		return now.AddDate(0, n, 0), true
	case "year":
		return now.AddDate(n, 0, 0), true
	}
	return time.Time{}, false
}
