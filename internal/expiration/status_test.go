package expiration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, time.January, 15, 14, 30, 0, 0, time.Local)

func TestClassifyExpired(t *testing.T) {
	cases := map[string]time.Time{
		"yesterday":      testNow.AddDate(0, 0, -1),
		"last week":      testNow.AddDate(0, 0, -7),
		"ten days ago":   testNow.AddDate(0, 0, -10),
		"previous month": testNow.AddDate(0, -1, 0),
	}
	for name, expiresAt := range cases {
		t.Run(name, func(t *testing.T) {
			cls := Classify(expiresAt, testNow)
			assert.Equal(t, StatusExpired, cls.Status)
			assert.Equal(t, "Expired", cls.Label)
			assert.Equal(t, "red", cls.DotColor)
		})
	}
}

func TestClassifyExpiringSoon(t *testing.T) {
	for offset := 0; offset <= 3; offset++ {
		expiresAt := testNow.AddDate(0, 0, offset)
		cls := Classify(expiresAt, testNow)
		assert.Equal(t, StatusExpiringSoon, cls.Status, "offset %d days", offset)
		assert.Equal(t, "orange", cls.BarColor)
	}
}

func TestClassifyFresh(t *testing.T) {
	for _, offset := range []int{4, 5, 10, 30, 365} {
		expiresAt := testNow.AddDate(0, 0, offset)
		cls := Classify(expiresAt, testNow)
		assert.Equal(t, StatusFresh, cls.Status, "offset %d days", offset)
		assert.Equal(t, "green", cls.DotColor)
		assert.Equal(t, "blue", cls.BarColor)
	}
}

func TestClassifyTodayIsNotExpired(t *testing.T) {
	// Expiring later today, and even earlier today: the item holds its day.
	earlier := time.Date(2026, time.January, 15, 8, 0, 0, 0, time.Local)
	later := time.Date(2026, time.January, 15, 23, 0, 0, 0, time.Local)

	assert.Equal(t, StatusExpiringSoon, Classify(earlier, testNow).Status)
	assert.Equal(t, StatusExpiringSoon, Classify(later, testNow).Status)
}

func TestClassifyHorizonBoundary(t *testing.T) {
	in5 := testNow.AddDate(0, 0, 5)
	assert.Equal(t, StatusFresh, ClassifyHorizon(in5, testNow, 3).Status)
	assert.Equal(t, StatusExpiringSoon, ClassifyHorizon(in5, testNow, 5).Status)
	assert.Equal(t, StatusExpiringSoon, ClassifyHorizon(in5, testNow, 7).Status)
}

func TestDaysUntil(t *testing.T) {
	assert.Equal(t, 0, DaysUntil(testNow, testNow))
	assert.Equal(t, -1, DaysUntil(testNow.AddDate(0, 0, -1), testNow))
	assert.Equal(t, 3, DaysUntil(testNow.AddDate(0, 0, 3), testNow))

	// Time of day is irrelevant: late evening vs early morning same answer.
	lateTomorrow := time.Date(2026, time.January, 16, 23, 59, 0, 0, time.Local)
	earlyTomorrow := time.Date(2026, time.January, 16, 0, 1, 0, 0, time.Local)
	assert.Equal(t, 1, DaysUntil(lateTomorrow, testNow))
	assert.Equal(t, 1, DaysUntil(earlyTomorrow, testNow))
}
