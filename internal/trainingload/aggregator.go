// Package trainingload builds daily training stress series from sparse
// activity records and derives the classic fatigue/fitness/form numbers
// (ATL, CTL, TSB) from them.
package trainingload

import (
	"math"
	"sort"
	"time"

	"alcyxob/wellness-coach/internal/domain"
)

// EMA window lengths in days. ATL reacts fast (fatigue), CTL slow (fitness).
const (
	atlDays = 7
	ctlDays = 42
)

// DefaultLookbackDays is how far back Metrics reaches when building the
// daily series.
const DefaultLookbackDays = 60

// TrainingLoad bundles the three headline numbers.
type TrainingLoad struct {
	ATL float64 `json:"atl"`
	CTL float64 `json:"ctl"`
	TSB float64 `json:"tsb"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// utcDay truncates t to its UTC calendar day. All series bucketing happens on
// UTC days so results do not drift with the server's timezone.
func utcDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// BuildDailyTSSArray expands sparse entries into a contiguous daily series
// from startDate to endDate inclusive. Entries on the same UTC calendar day
// are summed; days without entries default to 0.
func BuildDailyTSSArray(sparse []domain.DailyTSS, startDate, endDate time.Time) []domain.DailyTSS {
	start := utcDay(startDate)
	end := utcDay(endDate)
	if end.Before(start) {
		return nil
	}

	byDay := make(map[time.Time]float64, len(sparse))
	for _, e := range sparse {
		byDay[utcDay(e.Date)] += e.TSS
	}

	days := int(end.Sub(start).Hours()/24) + 1
	series := make([]domain.DailyTSS, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		series = append(series, domain.DailyTSS{Date: d, TSS: byDay[d]})
	}
	return series
}

// ema computes an exponential moving average over the series in date order,
// seeded at 0, with smoothing factor k = 2/(n+1).
func ema(series []domain.DailyTSS, n int) float64 {
	sorted := make([]domain.DailyTSS, len(series))
	copy(sorted, series)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	k := 2.0 / float64(n+1)
	avg := 0.0
	for _, day := range sorted {
		avg += (day.TSS - avg) * k
	}
	return round1(avg)
}

// CalculateATL computes the 7-day acute training load. The series is sorted
// internally so input order does not matter.
func CalculateATL(series []domain.DailyTSS) float64 {
	return ema(series, atlDays)
}

// CalculateCTL computes the 42-day chronic training load.
func CalculateCTL(series []domain.DailyTSS) float64 {
	return ema(series, ctlDays)
}

// CalculateTSB computes the training stress balance (form): CTL - ATL.
func CalculateTSB(ctl, atl float64) float64 {
	return round1(ctl - atl)
}

// Metrics computes ATL/CTL/TSB over the activities of the trailing
// lookbackDays window ending today (UTC). lookbackDays <= 0 falls back to
// DefaultLookbackDays.
func Metrics(activities []domain.Activity, lookbackDays int) TrainingLoad {
	return MetricsAt(activities, lookbackDays, time.Now())
}

// MetricsAt is Metrics with an explicit reference time.
func MetricsAt(activities []domain.Activity, lookbackDays int, now time.Time) TrainingLoad {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	end := utcDay(now)
	start := end.AddDate(0, 0, -lookbackDays)

	sparse := make([]domain.DailyTSS, 0, len(activities))
	for _, a := range activities {
		sparse = append(sparse, domain.DailyTSS{Date: a.StartDate, TSS: a.TSS})
	}

	series := BuildDailyTSSArray(sparse, start, end)
	atl := CalculateATL(series)
	ctl := CalculateCTL(series)
	return TrainingLoad{ATL: atl, CTL: ctl, TSB: CalculateTSB(ctl, atl)}
}
