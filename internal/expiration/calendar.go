package expiration

import (
	"time"

	"pantrypal-api/internal/model"
)

// MaxVisiblePerDay caps how many item names a calendar day cell lists
// before collapsing the rest into a "+N more" indicator.
const MaxVisiblePerDay = 2

// CalendarDay is everything rendered inside one day cell.
type CalendarDay struct {
	Items   []model.PantryItem `json:"items"`
	Visible []string           `json:"visible"`
	More    int                `json:"more"`
}

// Calendar is the month view over a pantry snapshot: the 7-column grid plus
// the per-day expiration buckets.
type Calendar struct {
	Year        int                    `json:"year"`
	Month       time.Month             `json:"month"`
	Label       string                 `json:"label"` // e.g. "January 2026"
	Weeks       [][7]int               `json:"weeks"` // 0 marks padding cells
	Days        map[string]CalendarDay `json:"days"`  // keyed "YYYY-MM-DD"
	Today       string                 `json:"today,omitempty"`
	Unparseable []model.PantryItem     `json:"unparseable,omitempty"`
}

// MonthGrid lays out a month as full weeks of 7 day numbers, Sunday first,
// with 0 padding the cells before day 1 and after the last day.
func MonthGrid(year int, month time.Month) [][7]int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	var weeks [][7]int
	var week [7]int
	pos := int(first.Weekday())

	for d := 1; d <= daysInMonth; d++ {
		week[pos] = d
		pos++
		if pos == 7 {
			weeks = append(weeks, week)
			week = [7]int{}
			pos = 0
		}
	}
	if pos > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// GroupByDay buckets items by the calendar day their expiration falls on.
// Items whose expiration cannot be placed on a day land in the second
// return value instead of crashing the view.
func GroupByDay(items []model.PantryItem) (map[string][]model.PantryItem, []model.PantryItem) {
	byDay := make(map[string][]model.PantryItem)
	var unparseable []model.PantryItem

	for _, item := range items {
		key, ok := DayKey(item.Expiration)
		if !ok {
			unparseable = append(unparseable, item)
			continue
		}
		byDay[key] = append(byDay[key], item)
	}
	return byDay, unparseable
}

// BuildCalendar produces the month view for year/month over the given
// snapshot. Only days carrying at least one item appear in Days; the grid
// itself always covers the whole month.
func BuildCalendar(items []model.PantryItem, year int, month time.Month, now time.Time) Calendar {
	byDay, unparseable := GroupByDay(items)

	days := make(map[string]CalendarDay, len(byDay))
	for key, dayItems := range byDay {
		day := CalendarDay{Items: dayItems}
		for i, item := range dayItems {
			if i == MaxVisiblePerDay {
				day.More = len(dayItems) - MaxVisiblePerDay
				break
			}
			day.Visible = append(day.Visible, item.Name)
		}
		days[key] = day
	}

	cal := Calendar{
		Year:        year,
		Month:       month,
		Label:       time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006"),
		Weeks:       MonthGrid(year, month),
		Days:        days,
		Unparseable: unparseable,
	}

	if now.Year() == year && now.Month() == month {
		cal.Today = now.Format("2006-01-02")
	}
	return cal
}

// NextMonth returns the year/month one month after the given view.
func NextMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return t.Year(), t.Month()
}

// PrevMonth returns the year/month one month before the given view.
func PrevMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return t.Year(), t.Month()
}
