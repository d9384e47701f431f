package metrics

import (
	"errors"
	"math"

	"alcyxob/wellness-coach/internal/domain"
)

// ErrInvalidFTP is returned by the strict calculation paths used for batch
// training-load math. Ad-hoc activity processing uses the lenient *ForActivity
// variants instead, which degrade to 0.
var ErrInvalidFTP = errors.New("ftp must be positive")

// Intensity factor breakpoints for workout type classification.
const (
	ifVO2Max    = 1.05
	ifThreshold = 0.88
	ifFun       = 0.75
)

// roundTo rounds half away from zero to the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}

// CalculateTSS computes the Training Stress Score for a ride. One hour at
// threshold power scores exactly 100. Returns 0 for non-positive duration or
// power; fails if ftp is not positive.
func CalculateTSS(durationSeconds int, normalizedPower, ftp float64) (float64, error) {
	if ftp <= 0 {
		return 0, ErrInvalidFTP
	}
	if durationSeconds <= 0 || normalizedPower <= 0 {
		return 0, nil
	}
	intensity := normalizedPower / ftp
	tss := float64(durationSeconds) * normalizedPower * intensity / (ftp * 3600) * 100
	return roundTo(tss, 1), nil
}

// CalculateIntensityFactor computes NP/FTP rounded to 2 decimals. Returns 0
// for non-positive power; fails if ftp is not positive.
func CalculateIntensityFactor(normalizedPower, ftp float64) (float64, error) {
	if ftp <= 0 {
		return 0, ErrInvalidFTP
	}
	if normalizedPower <= 0 {
		return 0, nil
	}
	return roundTo(normalizedPower/ftp, 2), nil
}

// TSSForActivity is the lenient variant used when processing a single
// incoming activity: missing or invalid FTP yields 0 rather than an error,
// because upstream data is frequently incomplete.
func TSSForActivity(durationSeconds int, normalizedPower, ftp float64) float64 {
	if ftp <= 0 {
		return 0
	}
	tss, _ := CalculateTSS(durationSeconds, normalizedPower, ftp)
	return tss
}

// IntensityFactorForActivity is the lenient variant of
// CalculateIntensityFactor.
func IntensityFactorForActivity(normalizedPower, ftp float64) float64 {
	if ftp <= 0 {
		return 0
	}
	intensity, _ := CalculateIntensityFactor(normalizedPower, ftp)
	return intensity
}

// ClassifyWorkoutType buckets a ride by its intensity factor.
func ClassifyWorkoutType(intensityFactor float64) domain.WorkoutType {
	switch {
	case intensityFactor >= ifVO2Max:
		return domain.WorkoutTypeVO2Max
	case intensityFactor >= ifThreshold:
		return domain.WorkoutTypeThreshold
	case intensityFactor >= ifFun:
		return domain.WorkoutTypeFun
	case intensityFactor > 0:
		return domain.WorkoutTypeRecovery
	default:
		return domain.WorkoutTypeUnknown
	}
}
