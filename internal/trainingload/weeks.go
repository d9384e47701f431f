package trainingload

import (
	"time"

	"alcyxob/wellness-coach/internal/domain"
)

// WeekInBlock returns the 1-based training-block week containing currentDate,
// 0 if it precedes blockStartDate, capped at domain.MesocycleWeeks. Dates are
// compared at day granularity in the local calendar.
func WeekInBlock(blockStartDate, currentDate time.Time) int {
	start := time.Date(blockStartDate.Year(), blockStartDate.Month(), blockStartDate.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(currentDate.Year(), currentDate.Month(), currentDate.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(start) {
		return 0
	}
	week := int(day.Sub(start).Hours()/24)/7 + 1
	if week > domain.MesocycleWeeks {
		return domain.MesocycleWeeks
	}
	return week
}

// WeekStart returns UTC midnight of the Monday of the week containing date.
// Sunday belongs to the week started by the previous Monday.
func WeekStart(date time.Time) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	offset := int(time.Monday - day.Weekday())
	if offset > 0 { // Sunday
		offset = -6
	}
	return day.AddDate(0, 0, offset)
}

// WeekBoundaries returns the Monday and Sunday of the week containing date,
// formatted YYYY-MM-DD. Every day of a week maps to the same pair.
func WeekBoundaries(date time.Time) (start, end string) {
	monday := WeekStart(date)
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format("2006-01-02"), sunday.Format("2006-01-02")
}
