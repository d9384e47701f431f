package repository

import (
	"alcyxob/wellness-coach/internal/domain" // Import our defined domain models
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive" // For using ObjectIDs
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// ActivityRepository defines the interface for interacting with processed
// cycling activities.
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Activity, error)
	GetByExternalID(ctx context.Context, userID primitive.ObjectID, externalID string) (*domain.Activity, error)
	GetByUserAndDateRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.Activity, error)
}

// WeeklyPlanRepository defines the interface for weekly cycling plans.
type WeeklyPlanRepository interface {
	Create(ctx context.Context, plan *domain.WeeklyPlan) (primitive.ObjectID, error)
	GetByUserAndWeekStart(ctx context.Context, userID primitive.ObjectID, weekStart time.Time) (*domain.WeeklyPlan, error)
}

// MesocycleRepository defines the interface for lifting blocks.
type MesocycleRepository interface {
	Create(ctx context.Context, mesocycle *domain.Mesocycle) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Mesocycle, error)
	GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Mesocycle, error)
}

// WorkoutRepository defines the interface for scheduled lifting workouts.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	GetByMesocycleID(ctx context.Context, mesocycleID primitive.ObjectID) ([]domain.Workout, error)
	// GetPendingByMesocycleID returns the mutable "future" workouts of a
	// block: status pending, in a stable scheduled-date order. Future is a
	// status predicate, not a date predicate.
	GetPendingByMesocycleID(ctx context.Context, mesocycleID primitive.ObjectID) ([]domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
}

// WorkoutSetRepository defines the interface for individual workout sets.
type WorkoutSetRepository interface {
	Create(ctx context.Context, set *domain.WorkoutSet) (primitive.ObjectID, error)
	CreateMany(ctx context.Context, sets []domain.WorkoutSet) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSet, error)
	GetByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.WorkoutSet, error)
	GetByWorkoutAndExercise(ctx context.Context, workoutID, exerciseID primitive.ObjectID) ([]domain.WorkoutSet, error)
	Update(ctx context.Context, set *domain.WorkoutSet) error
	// DeletePending deletes the set only while its status is still pending.
	// The conditional filter is what keeps a concurrent log() from racing a
	// propagation delete: a set that picked up logged data between our read
	// and this write survives, and ErrNotFound is returned instead.
	DeletePending(ctx context.Context, id primitive.ObjectID) error
}

// PlanDayRepository defines the interface for lifting plan day templates.
type PlanDayRepository interface {
	Create(ctx context.Context, day *domain.PlanDay) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlanDay, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.PlanDay, error)
}

// PlanDayExerciseRepository defines the interface for plan day prescriptions.
type PlanDayExerciseRepository interface {
	Create(ctx context.Context, pde *domain.PlanDayExercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlanDayExercise, error)
	GetByPlanDayID(ctx context.Context, planDayID primitive.ObjectID) ([]domain.PlanDayExercise, error)
	Update(ctx context.Context, pde *domain.PlanDayExercise) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ExerciseRepository defines the interface for the exercise library.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
}
