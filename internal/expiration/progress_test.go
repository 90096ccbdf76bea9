package expiration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressMidWindow(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 10)

	assert.Equal(t, 50, Progress(start, end, start.AddDate(0, 0, 5)))
	assert.Equal(t, 10, Progress(start, end, start.AddDate(0, 0, 1)))
	assert.Equal(t, 90, Progress(start, end, start.AddDate(0, 0, 9)))
}

func TestProgressClamped(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	assert.Equal(t, 0, Progress(start, end, start))
	assert.Equal(t, 0, Progress(start, end, start.Add(-time.Hour)))
	assert.Equal(t, 100, Progress(start, end, end))
	assert.Equal(t, 100, Progress(start, end, end.Add(48*time.Hour)))
}

func TestProgressDegenerateWindows(t *testing.T) {
	at := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	// start == end: no division happens, the end-of-window check wins.
	assert.Equal(t, 100, Progress(at, at, at))
	assert.Equal(t, 100, Progress(at, at, at.Add(time.Hour)))
	assert.Equal(t, 0, Progress(at, at, at.Add(-time.Hour)))

	// Inverted window: still clamped to [0, 100].
	inverted := Progress(at.AddDate(0, 0, 5), at, at.AddDate(0, 0, 2))
	assert.GreaterOrEqual(t, inverted, 0)
	assert.LessOrEqual(t, inverted, 100)
}

func TestProgressAlwaysInRange(t *testing.T) {
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	offsets := []int{-20, -7, -1, 0, 1, 7, 20}

	for _, s := range offsets {
		for _, e := range offsets {
			for _, n := range offsets {
				p := Progress(base.AddDate(0, 0, s), base.AddDate(0, 0, e), base.AddDate(0, 0, n))
				assert.GreaterOrEqual(t, p, 0, "start=%d end=%d now=%d", s, e, n)
				assert.LessOrEqual(t, p, 100, "start=%d end=%d now=%d", s, e, n)
			}
		}
	}
}

func TestProgressExpiredItemWithoutCreationDate(t *testing.T) {
	// Expired 10 days ago, no recorded creation: synthesized window ends in
	// the past, progress pegs at 100 and classification reads Expired.
	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)
	expiresAt := now.AddDate(0, 0, -10)

	assert.Equal(t, 100, Progress(DefaultStart(expiresAt, 0), expiresAt, now))
	assert.Equal(t, StatusExpired, Classify(expiresAt, now).Status)
}

func TestDefaultStart(t *testing.T) {
	expiresAt := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	// Zero shelf life falls back to the stock 7 days.
	assert.Equal(t, expiresAt.AddDate(0, 0, -7), DefaultStart(expiresAt, 0))

	// A configured shelf life sizes the window directly.
	assert.Equal(t, expiresAt.AddDate(0, 0, -14), DefaultStart(expiresAt, 14*24*time.Hour))
}
