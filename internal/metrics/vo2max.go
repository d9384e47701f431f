package metrics

// PeakPowerMethod selects how a peak-power sample maps to a VO2max estimate.
type PeakPowerMethod string

const (
	Peak5Min  PeakPowerMethod = "peak_5min"
	Peak20Min PeakPowerMethod = "peak_20min"
)

// VO2MaxCategory buckets a VO2max estimate.
type VO2MaxCategory string

const (
	VO2MaxPoor      VO2MaxCategory = "poor"
	VO2MaxFair      VO2MaxCategory = "fair"
	VO2MaxGood      VO2MaxCategory = "good"
	VO2MaxExcellent VO2MaxCategory = "excellent"
	VO2MaxElite     VO2MaxCategory = "elite"
)

const (
	// FTP is conventionally ~80% of the power at VO2max.
	ftpToVO2MaxPowerRatio = 0.80
	// A 20-minute peak overestimates FTP by ~5%.
	peak20MinToFTPRatio = 0.95
)

// ApplyACSMFormula converts a sustained power output and body weight into a
// VO2max estimate (ml/kg/min) via the ACSM cycling equation, rounded to 1
// decimal.
func ApplyACSMFormula(powerWatts, weightKg float64) float64 {
	return roundTo((10.8*powerWatts/weightKg)+7, 1)
}

// EstimateVO2MaxFromFTP estimates VO2max from threshold power. Returns nil
// when either input is non-positive.
func EstimateVO2MaxFromFTP(ftp, weightKg float64) *float64 {
	if ftp <= 0 || weightKg <= 0 {
		return nil
	}
	vo2 := ApplyACSMFormula(ftp/ftpToVO2MaxPowerRatio, weightKg)
	return &vo2
}

// EstimateVO2MaxFromPeakPower estimates VO2max from a rolling-window peak
// power sample. A 5-minute peak approximates power at VO2max and feeds the
// ACSM formula directly; a 20-minute peak is first scaled down to an
// estimated FTP. Returns nil when power or weight is non-positive.
func EstimateVO2MaxFromPeakPower(peakPowerWatts, weightKg float64, method PeakPowerMethod) *float64 {
	if peakPowerWatts <= 0 || weightKg <= 0 {
		return nil
	}
	switch method {
	case Peak5Min:
		vo2 := ApplyACSMFormula(peakPowerWatts, weightKg)
		return &vo2
	case Peak20Min:
		estimatedFTP := peakPowerWatts * peak20MinToFTPRatio
		return EstimateVO2MaxFromFTP(estimatedFTP, weightKg)
	default:
		return nil
	}
}

// CategorizeVO2Max buckets a VO2max estimate.
func CategorizeVO2Max(value float64) VO2MaxCategory {
	switch {
	case value < 35:
		return VO2MaxPoor
	case value < 45:
		return VO2MaxFair
	case value < 55:
		return VO2MaxGood
	case value < 65:
		return VO2MaxExcellent
	default:
		return VO2MaxElite
	}
}
