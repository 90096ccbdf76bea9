package expiration

import (
	"math"
	"time"
)

// Progress returns the percentage of the shelf-life window [start, end]
// elapsed at now, clamped to [0, 100]. The degenerate cases (start == end,
// start after end) are caught by the boundary checks before any division
// happens, so the result is always a valid percentage.
func Progress(start, end, now time.Time) int {
	if !now.Before(end) {
		return 100
	}
	if !now.After(start) {
		return 0
	}
	frac := float64(now.Sub(start)) / float64(end.Sub(start))
	return int(math.Round(frac * 100))
}

// DefaultStart synthesizes a progress-window start for items with no
// recorded creation time: the expiration minus the assumed shelf life.
// shelfLife <= 0 falls back to DefaultShelfLife.
func DefaultStart(expiresAt time.Time, shelfLife time.Duration) time.Time {
	if shelfLife <= 0 {
		shelfLife = DefaultShelfLife
	}
	return expiresAt.Add(-shelfLife)
}
