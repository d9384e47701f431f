// Package progression computes the per-week target prescription of an
// exercise inside a mesocycle. The propagation engine depends only on the
// Calculator contract so the overload rule lives in exactly one place.
package progression

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"alcyxob/wellness-coach/internal/domain"
)

// BasePrescription is the week-1 baseline progression starts from.
type BasePrescription struct {
	ExerciseID      primitive.ObjectID
	PlanExerciseID  primitive.ObjectID
	BaseWeight      float64
	BaseReps        int
	BaseSets        int
	WeightIncrement float64
}

// Targets is the prescription for one week of the block.
type Targets struct {
	TargetWeight float64
	TargetReps   int
	TargetSets   int
}

// Calculator computes week targets. Implementations must be pure: the
// propagation engine calls TargetsForWeek once per (exercise, week) pair and
// relies on identical inputs producing identical outputs.
type Calculator interface {
	TargetsForWeek(base BasePrescription, weekNumber int, applyProgression bool) Targets
}

// calculator implements the default overload rule:
//
//   - week 1 (and anything non-positive) prescribes the base values
//   - weeks 2..7 alternate a rep increase with a weight increase: odd steps
//     add one rep, even steps add one weight increment and drop back to base
//     reps, so weight accumulates floor((week-1)/2) increments
//   - week 8 deloads: base weight and reps at one set fewer (minimum one set)
type calculator struct{}

// NewCalculator returns the default progression calculator.
func NewCalculator() Calculator {
	return calculator{}
}

func (calculator) TargetsForWeek(base BasePrescription, weekNumber int, applyProgression bool) Targets {
	targets := Targets{
		TargetWeight: base.BaseWeight,
		TargetReps:   base.BaseReps,
		TargetSets:   base.BaseSets,
	}
	if !applyProgression || weekNumber <= 1 {
		return targets
	}

	if weekNumber >= domain.MesocycleWeeks {
		// Deload week: volume comes down, intensity back to base.
		targets.TargetSets = base.BaseSets - 1
		if targets.TargetSets < 1 {
			targets.TargetSets = 1
		}
		return targets
	}

	steps := weekNumber - 1
	targets.TargetWeight = base.BaseWeight + base.WeightIncrement*float64(steps/2)
	targets.TargetReps = base.BaseReps + steps%2
	return targets
}
