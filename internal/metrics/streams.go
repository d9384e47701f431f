package metrics

import "math"

// CalculatePeakPower finds the best average power over any window of roughly
// windowSeconds in the given streams. timeSeries holds elapsed seconds per
// sample; recording gaps make windows cover more samples of wall time than
// their sample count suggests. Windows within 1 second of the requested
// duration are accepted. Returns 0 when the input is empty or no window is
// long enough.
func CalculatePeakPower(wattsSeries []float64, timeSeries []int, windowSeconds int) int {
	n := len(wattsSeries)
	if n == 0 || len(timeSeries) != n || windowSeconds <= 0 {
		return 0
	}

	best := 0.0
	found := false
	for start := 0; start < n; start++ {
		sum := 0.0
		count := 0
		for i := start; i < n && timeSeries[i]-timeSeries[start] < windowSeconds; i++ {
			sum += wattsSeries[i]
			count++
		}
		if count == 0 {
			continue
		}
		elapsed := timeSeries[start+count-1] - timeSeries[start]
		if elapsed < windowSeconds-1 {
			continue
		}
		mean := sum / float64(count)
		if !found || mean > best {
			best = mean
			found = true
		}
	}
	if !found {
		return 0
	}
	return int(math.Round(best))
}

// CalculateHRCompleteness returns the percentage (0..100, rounded) of
// strictly positive samples in a heart-rate stream. 0 for empty input.
func CalculateHRCompleteness(hrSeries []float64) int {
	if len(hrSeries) == 0 {
		return 0
	}
	positive := 0
	for _, hr := range hrSeries {
		if hr > 0 {
			positive++
		}
	}
	return int(math.Round(float64(positive) / float64(len(hrSeries)) * 100))
}
