package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanDay is one recurring day template of a lifting plan (e.g. "Day 1: Push").
type PlanDay struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	DayOfWeek *int               `bson:"dayOfWeek,omitempty" json:"dayOfWeek,omitempty"` // 1 (Mon) - 7 (Sun)
	SortOrder int                `bson:"sortOrder" json:"sortOrder"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PlanDayExercise is the prescription template for one exercise on a plan day.
// Diffs between old and new prescription lists drive propagation to future
// workouts.
type PlanDayExercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanDayID   primitive.ObjectID `bson:"planDayId" json:"planDayId"`
	ExerciseID  primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Sets        int                `bson:"sets" json:"sets"`
	Reps        int                `bson:"reps" json:"reps"`
	Weight      float64            `bson:"weight" json:"weight"`
	RestSeconds int                `bson:"restSeconds" json:"restSeconds"`
	SortOrder   int                `bson:"sortOrder" json:"sortOrder"`
	MinReps     int                `bson:"minReps,omitempty" json:"minReps,omitempty"`
	MaxReps     int                `bson:"maxReps,omitempty" json:"maxReps,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
