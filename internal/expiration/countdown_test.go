package expiration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeRemainingFuture(t *testing.T) {
	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		until    time.Duration
		expected string
	}{
		{"days and hours", 51 * time.Hour, "2 days, 3 hours left"},
		{"single day", 24 * time.Hour, "1 day left"},
		{"single hour", 60 * time.Minute, "1 hour left"},
		{"hours only", 5 * time.Hour, "5 hours left"},
		{"days only", 72 * time.Hour, "3 days left"},
		{"under an hour", 30 * time.Minute, "Less than 1 hour left"},
		{"a few seconds", 5 * time.Second, "Less than 1 hour left"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TimeRemaining(now.Add(tc.until), now))
		})
	}
}

func TestTimeRemainingPast(t *testing.T) {
	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		ago      time.Duration
		expected string
	}{
		{"one day ago", 26 * time.Hour, "Expired 1 day ago"},
		{"several days ago", 5 * 24 * time.Hour, "Expired 5 days ago"},
		{"one hour ago", 90 * time.Minute, "Expired 1 hour ago"},
		{"several hours ago", 7 * time.Hour, "Expired 7 hours ago"},
		{"just now", 10 * time.Minute, "Expired"},
		{"exactly now", 0, "Expired"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TimeRemaining(now.Add(-tc.ago), now))
		})
	}
}

func TestTimeRemainingTodayNotReportedExpired(t *testing.T) {
	// A date-only expiration lands on the end of its day, so "today" still
	// counts down.
	now := time.Date(2026, time.January, 15, 14, 0, 0, 0, time.Local)
	expiresAt, err := ParseExpiration("2026-01-15")
	assert.NoError(t, err)
	assert.NotContains(t, TimeRemaining(expiresAt, now), "Expired")
}

func TestFormatWindowBound(t *testing.T) {
	assert.Equal(t, "Jan 5 at 2:30PM",
		FormatWindowBound(time.Date(2026, time.January, 5, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, "Dec 31 at 12:00AM",
		FormatWindowBound(time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Jun 1 at 12:05PM",
		FormatWindowBound(time.Date(2026, time.June, 1, 12, 5, 0, 0, time.UTC)))
}
