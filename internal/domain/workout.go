package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutStatus tracks the lifecycle of a lifting workout.
type WorkoutStatus string

const (
	WorkoutPending    WorkoutStatus = "pending"
	WorkoutInProgress WorkoutStatus = "in_progress"
	WorkoutCompleted  WorkoutStatus = "completed"
	WorkoutSkipped    WorkoutStatus = "skipped"
)

// Workout is one scheduled lifting session inside a mesocycle. Only pending
// workouts are mutable by bulk plan propagation; in_progress already has
// logged work, completed/skipped are finalized.
type Workout struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MesocycleID   primitive.ObjectID `bson:"mesocycleId" json:"mesocycleId"`
	PlanDayID     primitive.ObjectID `bson:"planDayId" json:"planDayId"`
	WeekNumber    int                `bson:"weekNumber" json:"weekNumber"`
	ScheduledDate time.Time          `bson:"scheduledDate" json:"scheduledDate"`
	Status        WorkoutStatus      `bson:"status" json:"status"`
	StartedAt     *time.Time         `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	CompletedAt   *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Editable reports whether set-level operations (log/skip/unlog/add/remove)
// are allowed against this workout.
func (w *Workout) Editable() bool {
	return w.Status == WorkoutPending || w.Status == WorkoutInProgress
}

// SetStatus tracks the lifecycle of an individual set.
type SetStatus string

const (
	SetPending   SetStatus = "pending"
	SetCompleted SetStatus = "completed"
	SetSkipped   SetStatus = "skipped"
)

// WorkoutSet is one prescribed set of an exercise within a workout.
// Invariant: completed implies both actuals are non-nil; pending/skipped
// implies both are nil.
type WorkoutSet struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutID    primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	ExerciseID   primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	SetNumber    int                `bson:"setNumber" json:"setNumber"` // 1-based, dense per exercise
	TargetReps   int                `bson:"targetReps" json:"targetReps"`
	TargetWeight float64            `bson:"targetWeight" json:"targetWeight"`
	ActualReps   *int               `bson:"actualReps,omitempty" json:"actualReps,omitempty"`
	ActualWeight *float64           `bson:"actualWeight,omitempty" json:"actualWeight,omitempty"`
	Status       SetStatus          `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasLoggedData reports whether the set carries recorded performance. Sets
// with logged data must never be deleted or overwritten by bulk operations.
func (s *WorkoutSet) HasLoggedData() bool {
	return s.Status == SetCompleted || s.ActualReps != nil || s.ActualWeight != nil
}
