package trainingload

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekInBlock(t *testing.T) {
	start := day(2025, time.March, 3) // a Monday

	tests := []struct {
		name    string
		current time.Time
		want    int
	}{
		{"before block start", start.AddDate(0, 0, -1), 0},
		{"first day", start, 1},
		{"last day of week 1", start.AddDate(0, 0, 6), 1},
		{"first day of week 2", start.AddDate(0, 0, 7), 2},
		{"week 8", start.AddDate(0, 0, 49), 8},
		{"capped at 8 past block end", start.AddDate(0, 0, 120), 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekInBlock(start, tt.current))
		})
	}
}

func TestWeekInBlock_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2025, time.March, 3, 23, 50, 0, 0, time.UTC)
	current := time.Date(2025, time.March, 9, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, 1, WeekInBlock(start, current))
}

func TestWeekStart(t *testing.T) {
	monday := day(2025, time.February, 3)
	assert.Equal(t, monday, WeekStart(day(2025, time.February, 3)))
	assert.Equal(t, monday, WeekStart(day(2025, time.February, 5)))
	// Sunday belongs to the week started by the previous Monday.
	assert.Equal(t, monday, WeekStart(day(2025, time.February, 9)))
	// Time of day is stripped.
	assert.Equal(t, monday, WeekStart(time.Date(2025, time.February, 5, 18, 30, 0, 0, time.UTC)))
}

func TestWeekBoundaries(t *testing.T) {
	// 2025-02-05 is a Wednesday.
	tests := []struct {
		name string
		date time.Time
	}{
		{"Monday", day(2025, time.February, 3)},
		{"Wednesday", day(2025, time.February, 5)},
		{"Saturday", day(2025, time.February, 8)},
		{"Sunday", day(2025, time.February, 9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekBoundaries(tt.date)
			assert.Equal(t, "2025-02-03", start)
			assert.Equal(t, "2025-02-09", end)
		})
	}
}

func TestWeekBoundaries_StartIsAlwaysMonday(t *testing.T) {
	for i := range 14 {
		d := day(2025, time.June, 1).AddDate(0, 0, i)
		start, end := WeekBoundaries(d)
		startDate, err := time.Parse("2006-01-02", start)
		assert.NoError(t, err)
		endDate, err := time.Parse("2006-01-02", end)
		assert.NoError(t, err)
		assert.Equal(t, time.Monday, startDate.Weekday())
		assert.Equal(t, time.Sunday, endDate.Weekday())
		assert.Equal(t, startDate.AddDate(0, 0, 6), endDate)
	}
}
