package expiration

import (
	"fmt"
	"strings"
	"time"
)

// TimeRemaining renders a human-readable countdown (or overdue notice) at
// day+hour granularity: "2 days, 3 hours left", "Expired 1 day ago",
// "Less than 1 hour left". Unlike Classify, this compares full timestamps.
func TimeRemaining(expiresAt, now time.Time) string {
	diff := expiresAt.Sub(now)

	if diff <= 0 {
		elapsed := -diff
		days := int(elapsed / (24 * time.Hour))
		hours := int(elapsed % (24 * time.Hour) / time.Hour)
		if days > 0 {
			return fmt.Sprintf("Expired %d %s ago", days, pluralize(days, "day"))
		}
		if hours > 0 {
			return fmt.Sprintf("Expired %d %s ago", hours, pluralize(hours, "hour"))
		}
		return "Expired"
	}

	days := int(diff / (24 * time.Hour))
	hours := int(diff % (24 * time.Hour) / time.Hour)

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", days, pluralize(days, "day")))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", hours, pluralize(hours, "hour")))
	}
	if len(parts) == 0 {
		return "Less than 1 hour left"
	}
	return strings.Join(parts, ", ") + " left"
}

// FormatWindowBound renders a progress-window endpoint for display,
// e.g. "Jan 5 at 2:30PM".
func FormatWindowBound(t time.Time) string {
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	ampm := "AM"
	if t.Hour() >= 12 {
		ampm = "PM"
	}
	return fmt.Sprintf("%s %d at %d:%02d%s", t.Format("Jan"), t.Day(), hour, t.Minute(), ampm)
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
