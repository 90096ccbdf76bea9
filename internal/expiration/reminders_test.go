package expiration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantrypal-api/internal/model"
)

func reminderItem(id, name, expiration string) model.PantryItem {
	return model.PantryItem{
		ID:         id,
		UserID:     "user-1",
		Name:       name,
		Expiration: expiration,
	}
}

func dateOffset(now time.Time, days int) string {
	return now.AddDate(0, 0, days).Format("2006-01-02")
}

func TestBuildRemindersEmptyPantry(t *testing.T) {
	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.Local)

	list := BuildReminders(nil, now, DefaultSoonHorizonDays, 0)
	assert.Equal(t, ListPantryEmpty, list.State)
	assert.Equal(t, 0, list.TotalItems)
	assert.Empty(t, list.Rows)
}

func TestBuildRemindersAllCaughtUp(t *testing.T) {
	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.Local)

	var items []model.PantryItem
	for i := 0; i < 5; i++ {
		items = append(items, reminderItem("i", "Fresh thing", dateOffset(now, 10+i)))
	}

	list := BuildReminders(items, now, DefaultSoonHorizonDays, 0)
	assert.Equal(t, ListAllCaughtUp, list.State)
	assert.Equal(t, 5, list.TotalItems)
	assert.Empty(t, list.Rows)
}

func TestBuildRemindersFiltersAndSorts(t *testing.T) {
	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.Local)

	items := []model.PantryItem{
		reminderItem("yogurt", "Yogurt", dateOffset(now, 2)),
		reminderItem("cheese", "Cheese", dateOffset(now, 30)), // fresh, filtered out
		reminderItem("spinach", "Spinach", dateOffset(now, -1)),
		reminderItem("milk", "Milk", dateOffset(now, 0)),
	}

	list := BuildReminders(items, now, DefaultSoonHorizonDays, 0)
	require.Equal(t, ListNeedsAttention, list.State)
	assert.Equal(t, 4, list.TotalItems)
	require.Len(t, list.Rows, 3)

	names := []string{list.Rows[0].Item.Name, list.Rows[1].Item.Name, list.Rows[2].Item.Name}
	assert.Equal(t, []string{"Spinach", "Milk", "Yogurt"}, names)

	assert.Equal(t, StatusExpired, list.Rows[0].Classification.Status)
	assert.Equal(t, StatusExpiringSoon, list.Rows[1].Classification.Status)
	for _, row := range list.Rows {
		assert.NotEqual(t, StatusFresh, row.Classification.Status)
	}
}

func TestBuildRemindersSortedNonDecreasing(t *testing.T) {
	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.Local)

	items := []model.PantryItem{
		reminderItem("a", "A", dateOffset(now, 3)),
		reminderItem("b", "B", dateOffset(now, -5)),
		reminderItem("c", "C", dateOffset(now, 1)),
		reminderItem("d", "D", dateOffset(now, -1)),
		reminderItem("e", "E", dateOffset(now, 2)),
	}

	list := BuildReminders(items, now, DefaultSoonHorizonDays, 0)
	require.Len(t, list.Rows, 5)
	for i := 1; i < len(list.Rows); i++ {
		prev, _ := ParseExpiration(list.Rows[i-1].Item.Expiration)
		cur, _ := ParseExpiration(list.Rows[i].Item.Expiration)
		assert.False(t, cur.Before(prev), "row %d out of order", i)
	}
}

func TestBuildRemindersStableTies(t *testing.T) {
	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.Local)
	sameDay := dateOffset(now, 1)

	items := []model.PantryItem{
		reminderItem("first", "First", sameDay),
		reminderItem("second", "Second", sameDay),
		reminderItem("third", "Third", sameDay),
	}

	list := BuildReminders(items, now, DefaultSoonHorizonDays, 0)
	require.Len(t, list.Rows, 3)
	assert.Equal(t, "first", list.Rows[0].Item.ID)
	assert.Equal(t, "second", list.Rows[1].Item.ID)
	assert.Equal(t, "third", list.Rows[2].Item.ID)
}

func TestBuildRemindersSkipsMalformedDates(t *testing.T) {
	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.Local)

	items := []model.PantryItem{
		reminderItem("good", "Good", dateOffset(now, 1)),
		reminderItem("bad", "Bad", "not a date"),
		reminderItem("empty", "Empty", ""),
	}

	list := BuildReminders(items, now, DefaultSoonHorizonDays, 0)
	assert.Equal(t, 3, list.TotalItems)
	require.Len(t, list.Rows, 1)
	assert.Equal(t, "good", list.Rows[0].Item.ID)
}

func TestBuildRemindersRowFields(t *testing.T) {
	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.Local)

	item := reminderItem("milk", "Milk", dateOffset(now, 1))
	item.CreatedAt = now.AddDate(0, 0, -6)

	list := BuildReminders([]model.PantryItem{item}, now, DefaultSoonHorizonDays, 0)
	require.Len(t, list.Rows, 1)
	row := list.Rows[0]

	assert.NotEmpty(t, row.TimeRemaining)
	assert.NotContains(t, row.TimeRemaining, "Expired")
	assert.GreaterOrEqual(t, row.ProgressPct, 0)
	assert.LessOrEqual(t, row.ProgressPct, 100)
	assert.NotEmpty(t, row.WindowStart)
	assert.NotEmpty(t, row.WindowEnd)
}

func TestBuildRemindersDefaultWindowWhenNoCreationDate(t *testing.T) {
	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.Local)

	// Expired 10 days ago with no creation timestamp: progress pegs at 100.
	item := reminderItem("old", "Old", dateOffset(now, -10))
	list := BuildReminders([]model.PantryItem{item}, now, DefaultSoonHorizonDays, 0)
	require.Len(t, list.Rows, 1)
	assert.Equal(t, 100, list.Rows[0].ProgressPct)
	assert.Equal(t, StatusExpired, list.Rows[0].Classification.Status)
}

func TestBuildRemindersConfiguredShelfLife(t *testing.T) {
	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.Local)

	// No creation timestamp, expiring tomorrow: the synthesized window
	// start must honor the shelf life passed in, not a fixed 7 days.
	item := reminderItem("milk", "Milk", dateOffset(now, 1))

	week := BuildReminders([]model.PantryItem{item}, now, DefaultSoonHorizonDays, 7*24*time.Hour)
	fortnight := BuildReminders([]model.PantryItem{item}, now, DefaultSoonHorizonDays, 14*24*time.Hour)
	require.Len(t, week.Rows, 1)
	require.Len(t, fortnight.Rows, 1)

	// Same time remaining inside a wider window means more of it elapsed.
	assert.Greater(t, fortnight.Rows[0].ProgressPct, week.Rows[0].ProgressPct)
	assert.NotEqual(t, week.Rows[0].WindowStart, fortnight.Rows[0].WindowStart)
}
