package metrics

// EFCategory buckets an efficiency factor value.
type EFCategory string

const (
	EFBeginner     EFCategory = "beginner"
	EFIntermediate EFCategory = "intermediate"
	EFTrained      EFCategory = "trained"
	EFWellTrained  EFCategory = "well_trained"
)

// Efficiency factor category cutoffs.
const (
	efIntermediateMin = 1.1
	efTrainedMin      = 1.3
	efWellTrainedMin  = 1.5
)

// CalculateEF computes the Efficiency Factor (normalized power over average
// heart rate), rounded to 2 decimals. Returns nil when either input is
// missing or non-positive; rides without a heart-rate sensor are common.
func CalculateEF(normalizedPower, avgHeartRate float64) *float64 {
	if normalizedPower <= 0 || avgHeartRate <= 0 {
		return nil
	}
	ef := roundTo(normalizedPower/avgHeartRate, 2)
	return &ef
}

// CategorizeEF buckets an efficiency factor value.
func CategorizeEF(ef float64) EFCategory {
	switch {
	case ef >= efWellTrainedMin:
		return EFWellTrained
	case ef >= efTrainedMin:
		return EFTrained
	case ef >= efIntermediateMin:
		return EFIntermediate
	default:
		return EFBeginner
	}
}
