package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyACSMFormula(t *testing.T) {
	assert.Equal(t, 45.6, ApplyACSMFormula(250, 70))
	assert.Equal(t, 61.0, ApplyACSMFormula(350, 70))
}

func TestEstimateVO2MaxFromFTP(t *testing.T) {
	vo2 := EstimateVO2MaxFromFTP(250, 70)
	require.NotNil(t, vo2)
	// 250 / 0.80 = 312.5 W at VO2max, then ACSM.
	assert.Equal(t, 55.2, *vo2)

	assert.Nil(t, EstimateVO2MaxFromFTP(0, 70))
	assert.Nil(t, EstimateVO2MaxFromFTP(250, 0))
}

func TestEstimateVO2MaxFromPeakPower(t *testing.T) {
	vo2 := EstimateVO2MaxFromPeakPower(312.5, 70, Peak5Min)
	require.NotNil(t, vo2)
	assert.Equal(t, 55.2, *vo2)

	// 20-minute peak scales to estimated FTP first: 300 * 0.95 = 285.
	vo2 = EstimateVO2MaxFromPeakPower(300, 70, Peak20Min)
	require.NotNil(t, vo2)
	assert.Equal(t, 62.0, *vo2)

	assert.Nil(t, EstimateVO2MaxFromPeakPower(0, 70, Peak5Min))
	assert.Nil(t, EstimateVO2MaxFromPeakPower(300, 0, Peak20Min))
	assert.Nil(t, EstimateVO2MaxFromPeakPower(300, 70, PeakPowerMethod("peak_60min")))
}

func TestCategorizeVO2Max(t *testing.T) {
	tests := []struct {
		value float64
		want  VO2MaxCategory
	}{
		{30, VO2MaxPoor},
		{34.9, VO2MaxPoor},
		{35, VO2MaxFair},
		{44.9, VO2MaxFair},
		{45, VO2MaxGood},
		{54.9, VO2MaxGood},
		{55, VO2MaxExcellent},
		{64.9, VO2MaxExcellent},
		{65, VO2MaxElite},
		{80, VO2MaxElite},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CategorizeVO2Max(tt.value), "vo2max %v", tt.value)
	}
}
