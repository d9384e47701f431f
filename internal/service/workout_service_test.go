package service

import (
	"context"
	"testing"
	"time"

	"alcyxob/wellness-coach/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type lifecycleFixture struct {
	svc         *workoutService
	workoutRepo *fakeWorkoutRepo
	setRepo     *fakeSetRepo
	workout     domain.Workout
	sets        []domain.WorkoutSet
	exerciseID  primitive.ObjectID
	now         time.Time
}

// newLifecycleFixture builds a pending workout with three pending sets of a
// single exercise.
func newLifecycleFixture(t *testing.T) *lifecycleFixture {
	t.Helper()
	workoutRepo := newFakeWorkoutRepo()
	setRepo := newFakeSetRepo()

	now := time.Date(2025, time.April, 7, 18, 0, 0, 0, time.UTC)
	svc := NewWorkoutService(workoutRepo, setRepo).(*workoutService)
	svc.now = fixedClock(now)

	exerciseID := primitive.NewObjectID()
	workout := workoutRepo.add(domain.Workout{
		MesocycleID:   primitive.NewObjectID(),
		PlanDayID:     primitive.NewObjectID(),
		WeekNumber:    1,
		ScheduledDate: now,
		Status:        domain.WorkoutPending,
	})

	sets := make([]domain.WorkoutSet, 0, 3)
	for i := 1; i <= 3; i++ {
		sets = append(sets, setRepo.add(domain.WorkoutSet{
			WorkoutID:    workout.ID,
			ExerciseID:   exerciseID,
			SetNumber:    i,
			TargetReps:   8,
			TargetWeight: 100,
			Status:       domain.SetPending,
		}))
	}

	return &lifecycleFixture{
		svc:         svc,
		workoutRepo: workoutRepo,
		setRepo:     setRepo,
		workout:     workout,
		sets:        sets,
		exerciseID:  exerciseID,
		now:         now,
	}
}

func TestLogSet(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	set, err := f.svc.LogSet(ctx, f.sets[0].ID, 8, 100)
	require.NoError(t, err)
	assert.Equal(t, domain.SetCompleted, set.Status)
	require.NotNil(t, set.ActualReps)
	require.NotNil(t, set.ActualWeight)
	assert.Equal(t, 8, *set.ActualReps)
	assert.Equal(t, 100.0, *set.ActualWeight)
}

func TestLogSet_ZeroValuesAreValid(t *testing.T) {
	f := newLifecycleFixture(t)

	set, err := f.svc.LogSet(context.Background(), f.sets[0].ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.SetCompleted, set.Status)
	assert.Equal(t, 0, *set.ActualReps)
	assert.Equal(t, 0.0, *set.ActualWeight)
}

func TestLogSet_NegativeActualsRejected(t *testing.T) {
	f := newLifecycleFixture(t)

	_, err := f.svc.LogSet(context.Background(), f.sets[0].ID, -1, 100)
	require.ErrorIs(t, err, ErrNegativeActuals)

	_, err = f.svc.LogSet(context.Background(), f.sets[0].ID, 8, -0.5)
	require.ErrorIs(t, err, ErrNegativeActuals)
}

func TestLogSet_NotFound(t *testing.T) {
	f := newLifecycleFixture(t)

	_, err := f.svc.LogSet(context.Background(), primitive.NewObjectID(), 8, 100)
	require.ErrorIs(t, err, ErrSetNotFound)
}

func TestLogSet_AutoStartsWorkoutOnce(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	_, err := f.svc.LogSet(ctx, f.sets[0].ID, 8, 100)
	require.NoError(t, err)

	workout, err := f.workoutRepo.GetByID(ctx, f.workout.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkoutInProgress, workout.Status)
	require.NotNil(t, workout.StartedAt)
	firstStarted := *workout.StartedAt

	// Logging a second set must not move started_at.
	f.svc.now = fixedClock(f.now.Add(10 * time.Minute))
	_, err = f.svc.LogSet(ctx, f.sets[1].ID, 8, 100)
	require.NoError(t, err)

	workout, err = f.workoutRepo.GetByID(ctx, f.workout.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkoutInProgress, workout.Status)
	assert.Equal(t, firstStarted, *workout.StartedAt)
}

func TestSkipSet_AutoStartsAndClearsActuals(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	set, err := f.svc.SkipSet(ctx, f.sets[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SetSkipped, set.Status)
	assert.Nil(t, set.ActualReps)
	assert.Nil(t, set.ActualWeight)

	workout, err := f.workoutRepo.GetByID(ctx, f.workout.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkoutInProgress, workout.Status)
	assert.NotNil(t, workout.StartedAt)
}

func TestUnlogSet(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	_, err := f.svc.LogSet(ctx, f.sets[0].ID, 8, 100)
	require.NoError(t, err)

	set, err := f.svc.UnlogSet(ctx, f.sets[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SetPending, set.Status)
	assert.Nil(t, set.ActualReps)
	assert.Nil(t, set.ActualWeight)

	// Unlogging does not revert the auto-started workout.
	workout, err := f.workoutRepo.GetByID(ctx, f.workout.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkoutInProgress, workout.Status)
}

func TestUnlogSet_SkippedSetNotUnloggable(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	_, err := f.svc.SkipSet(ctx, f.sets[0].ID)
	require.NoError(t, err)

	_, err = f.svc.UnlogSet(ctx, f.sets[0].ID)
	require.ErrorIs(t, err, ErrSetNotUnloggable)
}

func TestSetOperations_GatedByWorkoutStatus(t *testing.T) {
	for _, status := range []domain.WorkoutStatus{domain.WorkoutCompleted, domain.WorkoutSkipped} {
		t.Run(string(status), func(t *testing.T) {
			f := newLifecycleFixture(t)
			ctx := context.Background()

			f.workout.Status = status
			require.NoError(t, f.workoutRepo.Update(ctx, &f.workout))

			_, err := f.svc.LogSet(ctx, f.sets[0].ID, 8, 100)
			require.ErrorIs(t, err, ErrWorkoutNotEditable)

			_, err = f.svc.SkipSet(ctx, f.sets[0].ID)
			require.ErrorIs(t, err, ErrWorkoutNotEditable)

			_, err = f.svc.UnlogSet(ctx, f.sets[0].ID)
			require.ErrorIs(t, err, ErrWorkoutNotEditable)

			// No set was mutated by the failed attempts.
			set, err := f.setRepo.GetByID(ctx, f.sets[0].ID)
			require.NoError(t, err)
			assert.Equal(t, domain.SetPending, set.Status)
			assert.Nil(t, set.ActualReps)
		})
	}
}

func TestAddSetToExercise(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	// A future pending sibling workout of the same plan day.
	sibling := f.workoutRepo.add(domain.Workout{
		MesocycleID:   f.workout.MesocycleID,
		PlanDayID:     f.workout.PlanDayID,
		WeekNumber:    2,
		ScheduledDate: f.now.AddDate(0, 0, 7),
		Status:        domain.WorkoutPending,
	})
	f.setRepo.add(domain.WorkoutSet{
		WorkoutID: sibling.ID, ExerciseID: f.exerciseID, SetNumber: 1,
		TargetReps: 9, TargetWeight: 100, Status: domain.SetPending,
	})

	result, err := f.svc.AddSetToExercise(ctx, f.workout.ID, f.exerciseID)
	require.NoError(t, err)
	require.NotNil(t, result.CurrentWorkoutSet)
	assert.Equal(t, 4, result.CurrentWorkoutSet.SetNumber)
	assert.Equal(t, 8, result.CurrentWorkoutSet.TargetReps, "targets copied from highest existing set")
	assert.Equal(t, 100.0, result.CurrentWorkoutSet.TargetWeight)
	assert.Equal(t, 1, result.FutureWorkoutsAffected)
	assert.Equal(t, 1, result.FutureSetsModified)

	siblingSets, err := f.setRepo.GetByWorkoutAndExercise(ctx, sibling.ID, f.exerciseID)
	require.NoError(t, err)
	require.Len(t, siblingSets, 2)
	assert.Equal(t, 2, siblingSets[1].SetNumber)
	assert.Equal(t, 9, siblingSets[1].TargetReps, "sibling copies its own targets")
}

func TestAddSetToExercise_NoTemplateSets(t *testing.T) {
	f := newLifecycleFixture(t)

	_, err := f.svc.AddSetToExercise(context.Background(), f.workout.ID, primitive.NewObjectID())
	require.ErrorIs(t, err, ErrNoSetsForExercise)
}

func TestRemoveSetFromExercise(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	result, err := f.svc.RemoveSetFromExercise(ctx, f.workout.ID, f.exerciseID)
	require.NoError(t, err)
	assert.Nil(t, result.CurrentWorkoutSet)

	remaining, err := f.setRepo.GetByWorkoutAndExercise(ctx, f.workout.ID, f.exerciseID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, 2, remaining[1].SetNumber, "highest-numbered pending set removed")
}

func TestRemoveSetFromExercise_SkipsLoggedSets(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	// Log set 3; the removable pending set becomes set 2.
	_, err := f.svc.LogSet(ctx, f.sets[2].ID, 8, 100)
	require.NoError(t, err)

	_, err = f.svc.RemoveSetFromExercise(ctx, f.workout.ID, f.exerciseID)
	require.NoError(t, err)

	remaining, err := f.setRepo.GetByWorkoutAndExercise(ctx, f.workout.ID, f.exerciseID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, 1, remaining[0].SetNumber)
	assert.Equal(t, 3, remaining[1].SetNumber, "logged set survives")
	assert.Equal(t, domain.SetCompleted, remaining[1].Status)
}

func TestRemoveSetFromExercise_LastSet(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	// Remove down to one set.
	_, err := f.svc.RemoveSetFromExercise(ctx, f.workout.ID, f.exerciseID)
	require.NoError(t, err)
	_, err = f.svc.RemoveSetFromExercise(ctx, f.workout.ID, f.exerciseID)
	require.NoError(t, err)

	_, err = f.svc.RemoveSetFromExercise(ctx, f.workout.ID, f.exerciseID)
	require.ErrorIs(t, err, ErrLastSet)
}

func TestRemoveSetFromExercise_NoPendingSets(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	for _, set := range f.sets {
		_, err := f.svc.LogSet(ctx, set.ID, 8, 100)
		require.NoError(t, err)
	}

	_, err := f.svc.RemoveSetFromExercise(ctx, f.workout.ID, f.exerciseID)
	require.ErrorIs(t, err, ErrNoPendingSets)
}

func TestStructuralOperations_GatedByWorkoutStatus(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	f.workout.Status = domain.WorkoutCompleted
	require.NoError(t, f.workoutRepo.Update(ctx, &f.workout))

	_, err := f.svc.AddSetToExercise(ctx, f.workout.ID, f.exerciseID)
	require.ErrorIs(t, err, ErrWorkoutNotEditable)

	_, err = f.svc.RemoveSetFromExercise(ctx, f.workout.ID, f.exerciseID)
	require.ErrorIs(t, err, ErrWorkoutNotEditable)
}
