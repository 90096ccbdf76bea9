package expiration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpirationBareDate(t *testing.T) {
	got, err := ParseExpiration("2026-02-09")
	require.NoError(t, err)

	// A bare date counts through the end of its day.
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.February, got.Month())
	assert.Equal(t, 9, got.Day())
	assert.Equal(t, 23, got.Hour())
	assert.Equal(t, 59, got.Minute())
}

func TestParseExpirationTimestamp(t *testing.T) {
	got, err := ParseExpiration("2026-02-09T10:30:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, time.February, 9, 10, 30, 0, 0, time.UTC)))

	got, err = ParseExpiration("2026-02-09T10:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, 30, got.Minute())
}

func TestParseExpirationRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "   ", "soon", "02/09/2026", "2026-13-01", "2026-02-30", "Invalid Date"} {
		_, err := ParseExpiration(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2026-02-09"))

	// Non-ISO shapes.
	assert.False(t, IsValidDate("02/09/2026"))
	assert.False(t, IsValidDate("2026-2-9"))

	// Impossible months and days.
	assert.False(t, IsValidDate("2026-13-01"))
	assert.False(t, IsValidDate("2026-00-10"))
	assert.False(t, IsValidDate("2026-02-30"))
	assert.False(t, IsValidDate("2026-04-31"))

	// Leap years.
	assert.True(t, IsValidDate("2024-02-29"))
	assert.False(t, IsValidDate("2025-02-29"))
}

func TestDayKeyDualPath(t *testing.T) {
	// Bare date and date-prefixed timestamp take the prefix fast path.
	key, ok := DayKey("2026-03-05")
	require.True(t, ok)
	assert.Equal(t, "2026-03-05", key)

	key, ok = DayKey("2026-03-05T08:00:00Z")
	require.True(t, ok)
	assert.Equal(t, "2026-03-05", key)

	key, ok = DayKey("  2026-03-05  ")
	require.True(t, ok)
	assert.Equal(t, "2026-03-05", key)
}

func TestDayKeyRoundTrip(t *testing.T) {
	// Bare date and full timestamp for the same calendar day must agree.
	noon := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.Local)

	fromBare, ok := DayKey("2026-03-05")
	require.True(t, ok)
	fromFull, ok := DayKey(noon.Format(time.RFC3339))
	require.True(t, ok)
	assert.Equal(t, fromBare, fromFull)
}

func TestDayKeyMalformed(t *testing.T) {
	for _, s := range []string{"", "not a date", "2026-13-40T00:00:00Z", "9999-99-99"} {
		_, ok := DayKey(s)
		assert.False(t, ok, "input %q", s)
	}
}

func TestParseEstimate(t *testing.T) {
	now := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		in       string
		expected time.Time
	}{
		{"3 days", now.AddDate(0, 0, 3)},
		{"1 day", now.AddDate(0, 0, 1)},
		{"2 weeks", now.AddDate(0, 0, 14)},
		{"1 month", now.AddDate(0, 1, 0)},
		{"About 5 days if refrigerated", now.AddDate(0, 0, 5)},
		{"1 year", now.AddDate(1, 0, 0)},
	}
	for _, tc := range cases {
		got, ok := ParseEstimate(tc.in, now)
		require.True(t, ok, "input %q", tc.in)
		assert.True(t, got.Equal(tc.expected), "input %q", tc.in)
	}
}

func TestParseEstimateUnknown(t *testing.T) {
	for _, s := range []string{"Unknown", "", "fresh", "a while"} {
		_, ok := ParseEstimate(s, time.Now())
		assert.False(t, ok, "input %q", s)
	}
}

func TestParseExpirationDSTTransitionDays(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	orig := time.Local
	time.Local = loc
	defer func() { time.Local = orig }()

	// 2026-03-08 is only 23 hours long (spring forward); the end of the
	// day must still be 23:59:59 of March 8, not an hour into March 9.
	got, err := ParseExpiration("2026-03-08")
	require.NoError(t, err)
	assert.Equal(t, 8, got.Day())
	assert.Equal(t, 23, got.Hour())
	assert.Equal(t, 59, got.Minute())

	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, loc)
	assert.Equal(t, -2, DaysUntil(got, now))

	// 2026-11-01 is 25 hours long (fall back); same invariant.
	got, err = ParseExpiration("2026-11-01")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Day())
	assert.Equal(t, 23, got.Hour())
	assert.Equal(t, 59, got.Minute())
}
