package expiration

import (
	"sort"
	"time"

	"pantrypal-api/internal/model"
)

// ListState tells the rendering layer which of the three reminder-list
// situations it is looking at, so an empty pantry and a pantry with
// nothing urgent get different empty states.
type ListState string

const (
	ListPantryEmpty    ListState = "pantry_empty"
	ListAllCaughtUp    ListState = "all_caught_up"
	ListNeedsAttention ListState = "needs_attention"
)

// ReminderRow is one item needing attention, with everything the UI shows:
// classification, countdown text, shelf-life progress and the formatted
// window bounds.
type ReminderRow struct {
	Item           model.PantryItem `json:"item"`
	Classification Classification   `json:"classification"`
	TimeRemaining  string           `json:"time_remaining"`
	ProgressPct    int              `json:"progress_pct"`
	WindowStart    string           `json:"window_start"`
	WindowEnd      string           `json:"window_end"`

	expiresAt time.Time
}

// ReminderList is the read-side reminder projection over a pantry snapshot.
// TotalItems counts the whole snapshot, not just the urgent rows, which is
// what lets State distinguish "pantry is empty" from "all caught up".
type ReminderList struct {
	State      ListState     `json:"state"`
	TotalItems int           `json:"total_items"`
	Rows       []ReminderRow `json:"rows"`
}

// BuildReminders filters a pantry snapshot to the items that are expired or
// expiring within horizonDays, sorted most urgent first (ties keep input
// order). shelfLife sizes the progress window for items with no recorded
// creation time; <= 0 falls back to DefaultShelfLife. Pure: no I/O, no
// clock reads, deterministic for a given snapshot and now. Items whose
// expiration cannot be parsed are counted in TotalItems but never produce
// a row.
func BuildReminders(items []model.PantryItem, now time.Time, horizonDays int, shelfLife time.Duration) ReminderList {
	list := ReminderList{
		TotalItems: len(items),
		Rows:       []ReminderRow{},
	}

	for _, item := range items {
		expiresAt, err := ParseExpiration(item.Expiration)
		if err != nil {
			continue
		}

		cls := ClassifyHorizon(expiresAt, now, horizonDays)
		if cls.Status == StatusFresh {
			continue
		}

		start := item.CreatedAt
		if start.IsZero() {
			start = DefaultStart(expiresAt, shelfLife)
		}

		list.Rows = append(list.Rows, ReminderRow{
			Item:           item,
			Classification: cls,
			TimeRemaining:  TimeRemaining(expiresAt, now),
			ProgressPct:    Progress(start, expiresAt, now),
			WindowStart:    FormatWindowBound(start),
			WindowEnd:      FormatWindowBound(expiresAt),
			expiresAt:      expiresAt,
		})
	}

	sort.SliceStable(list.Rows, func(i, j int) bool {
		return list.Rows[i].expiresAt.Before(list.Rows[j].expiresAt)
	})

	switch {
	case list.TotalItems == 0:
		list.State = ListPantryEmpty
	case len(list.Rows) == 0:
		list.State = ListAllCaughtUp
	default:
		list.State = ListNeedsAttention
	}

	return list
}
