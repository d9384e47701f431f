package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetsForWeek(t *testing.T) {
	calc := NewCalculator()
	base := BasePrescription{
		BaseWeight:      100,
		BaseReps:        8,
		BaseSets:        3,
		WeightIncrement: 2.5,
	}

	tests := []struct {
		week       int
		wantWeight float64
		wantReps   int
		wantSets   int
	}{
		{1, 100, 8, 3},
		{2, 100, 9, 3},   // rep step
		{3, 102.5, 8, 3}, // weight step, reps reset
		{4, 102.5, 9, 3},
		{5, 105, 8, 3},
		{6, 105, 9, 3},
		{7, 107.5, 8, 3}, // peak week
		{8, 100, 8, 2},   // deload: base intensity, reduced volume
	}
	for _, tt := range tests {
		got := calc.TargetsForWeek(base, tt.week, true)
		assert.Equal(t, tt.wantWeight, got.TargetWeight, "week %d weight", tt.week)
		assert.Equal(t, tt.wantReps, got.TargetReps, "week %d reps", tt.week)
		assert.Equal(t, tt.wantSets, got.TargetSets, "week %d sets", tt.week)
	}
}

func TestTargetsForWeek_NoProgression(t *testing.T) {
	calc := NewCalculator()
	base := BasePrescription{BaseWeight: 60, BaseReps: 10, BaseSets: 4, WeightIncrement: 5}

	for week := 1; week <= 8; week++ {
		got := calc.TargetsForWeek(base, week, false)
		assert.Equal(t, Targets{TargetWeight: 60, TargetReps: 10, TargetSets: 4}, got, "week %d", week)
	}
}

func TestTargetsForWeek_Deterministic(t *testing.T) {
	calc := NewCalculator()
	base := BasePrescription{BaseWeight: 80, BaseReps: 5, BaseSets: 5, WeightIncrement: 2.5}

	first := calc.TargetsForWeek(base, 5, true)
	for range 10 {
		assert.Equal(t, first, calc.TargetsForWeek(base, 5, true))
	}
}

func TestTargetsForWeek_DeloadKeepsAtLeastOneSet(t *testing.T) {
	calc := NewCalculator()
	base := BasePrescription{BaseWeight: 40, BaseReps: 12, BaseSets: 1, WeightIncrement: 2.5}

	got := calc.TargetsForWeek(base, 8, true)
	assert.Equal(t, 1, got.TargetSets)
}

func TestTargetsForWeek_NonPositiveWeek(t *testing.T) {
	calc := NewCalculator()
	base := BasePrescription{BaseWeight: 50, BaseReps: 8, BaseSets: 3, WeightIncrement: 2.5}

	assert.Equal(t, Targets{TargetWeight: 50, TargetReps: 8, TargetSets: 3}, calc.TargetsForWeek(base, 0, true))
	assert.Equal(t, Targets{TargetWeight: 50, TargetReps: 8, TargetSets: 3}, calc.TargetsForWeek(base, -3, true))
}
