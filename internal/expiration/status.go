package expiration

import "time"

// Status is the freshness category of a pantry item.
type Status string

const (
	StatusExpired      Status = "expired"
	StatusExpiringSoon Status = "expiring_soon"
	StatusFresh        Status = "fresh"
)

const (
	// DefaultSoonHorizonDays is how many days before expiration an item is
	// surfaced as "expiring soon".
	DefaultSoonHorizonDays = 3

	// DefaultShelfLife is assumed for the progress window when an item has
	// no recorded creation time.
	DefaultShelfLife = 7 * 24 * time.Hour
)

// Classification pairs a freshness status with its display label and the
// style tokens the rendering layer uses for the status dot and progress bar.
type Classification struct {
	Status   Status `json:"status"`
	Label    string `json:"label"`
	DotColor string `json:"dot_color"`
	BarColor string `json:"bar_color"`
}

// Classify maps an expiration time to a freshness classification using the
// default 3-day horizon. now must be supplied by the caller so results are
// deterministic.
func Classify(expiresAt, now time.Time) Classification {
	return ClassifyHorizon(expiresAt, now, DefaultSoonHorizonDays)
}

// ClassifyHorizon classifies with an explicit "expiring soon" horizon.
// The comparison is at day granularity: an item expiring later today is
// never Expired, and one expiring exactly horizonDays from today is still
// ExpiringSoon. Total for any valid time, never errors.
func ClassifyHorizon(expiresAt, now time.Time, horizonDays int) Classification {
	diff := DaysUntil(expiresAt, now)
	switch {
	case diff < 0:
		return Classification{Status: StatusExpired, Label: "Expired", DotColor: "red", BarColor: "red"}
	case diff <= horizonDays:
		return Classification{Status: StatusExpiringSoon, Label: "Expiring Soon", DotColor: "orange", BarColor: "orange"}
	default:
		return Classification{Status: StatusFresh, Label: "Fresh", DotColor: "green", BarColor: "blue"}
	}
}

// DaysUntil returns the signed calendar-day distance from now's day to the
// expiration's day: 0 for today, -1 for yesterday, 3 for three days out.
// Both times are reduced to their local calendar date first, so an item
// counts as expired only once its whole day has passed.
func DaysUntil(expiresAt, now time.Time) int {
	e := civilDate(expiresAt)
	n := civilDate(now)
	return int(e.Sub(n) / (24 * time.Hour))
}

// civilDate pins a time to midnight of its local calendar date in UTC, so
// day arithmetic is immune to DST transitions.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
