package service

import (
	"alcyxob/wellness-coach/internal/domain"
	"alcyxob/wellness-coach/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound    = errors.New("workout not found")
	ErrSetNotFound        = errors.New("workout set not found")
	ErrWorkoutNotEditable = errors.New("workout is completed or skipped and cannot be modified")
	ErrNegativeActuals    = errors.New("actual reps and weight must not be negative")
	ErrNoSetsForExercise  = errors.New("no sets exist for this exercise in this workout")
	ErrLastSet            = errors.New("cannot remove the last set of an exercise")
	ErrNoPendingSets      = errors.New("no pending set available to remove")
	ErrSetNotUnloggable   = errors.New("only a completed set can be unlogged")
)

// SetModificationResult reports a set add/remove on the current workout plus
// how far the change propagated into future pending workouts of the block.
type SetModificationResult struct {
	CurrentWorkoutSet      *domain.WorkoutSet `json:"currentWorkoutSet"`
	FutureWorkoutsAffected int                `json:"futureWorkoutsAffected"`
	FutureSetsModified     int                `json:"futureSetsModified"`
}

// --- Service Interface ---
type WorkoutService interface {
	GetWorkout(ctx context.Context, workoutID primitive.ObjectID) (*domain.Workout, []domain.WorkoutSet, error)
	LogSet(ctx context.Context, setID primitive.ObjectID, actualReps int, actualWeight float64) (*domain.WorkoutSet, error)
	SkipSet(ctx context.Context, setID primitive.ObjectID) (*domain.WorkoutSet, error)
	UnlogSet(ctx context.Context, setID primitive.ObjectID) (*domain.WorkoutSet, error)
	AddSetToExercise(ctx context.Context, workoutID, exerciseID primitive.ObjectID) (*SetModificationResult, error)
	RemoveSetFromExercise(ctx context.Context, workoutID, exerciseID primitive.ObjectID) (*SetModificationResult, error)
}

// --- Service Implementation ---

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo repository.WorkoutRepository
	setRepo     repository.WorkoutSetRepository
	now         func() time.Time
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, setRepo repository.WorkoutSetRepository) WorkoutService {
	return &workoutService{
		workoutRepo: workoutRepo,
		setRepo:     setRepo,
		now:         time.Now,
	}
}

// GetWorkout returns a workout together with all its sets.
func (s *workoutService) GetWorkout(ctx context.Context, workoutID primitive.ObjectID) (*domain.Workout, []domain.WorkoutSet, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrWorkoutNotFound
		}
		return nil, nil, err
	}
	sets, err := s.setRepo.GetByWorkoutID(ctx, workoutID)
	if err != nil {
		return nil, nil, err
	}
	return workout, sets, nil
}

// loadSetAndWorkout fetches a set and its parent workout, enforcing the
// workout-status gate shared by every set-level operation.
func (s *workoutService) loadSetAndWorkout(ctx context.Context, setID primitive.ObjectID) (*domain.WorkoutSet, *domain.Workout, error) {
	set, err := s.setRepo.GetByID(ctx, setID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrSetNotFound
		}
		return nil, nil, err
	}
	workout, err := s.workoutRepo.GetByID(ctx, set.WorkoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrWorkoutNotFound
		}
		return nil, nil, err
	}
	if !workout.Editable() {
		return nil, nil, ErrWorkoutNotEditable
	}
	return set, workout, nil
}

// autoStartWorkout transitions a pending workout to in_progress on the first
// touch of any of its sets. Idempotent: an in_progress workout is left alone.
func (s *workoutService) autoStartWorkout(ctx context.Context, workout *domain.Workout) error {
	if workout.Status != domain.WorkoutPending {
		return nil
	}
	started := s.now()
	workout.Status = domain.WorkoutInProgress
	workout.StartedAt = &started
	return s.workoutRepo.Update(ctx, workout)
}

// LogSet records actual performance on a set and marks it completed. Zero is
// a valid value for both reps and weight.
func (s *workoutService) LogSet(ctx context.Context, setID primitive.ObjectID, actualReps int, actualWeight float64) (*domain.WorkoutSet, error) {
	if actualReps < 0 || actualWeight < 0 {
		return nil, ErrNegativeActuals
	}
	set, workout, err := s.loadSetAndWorkout(ctx, setID)
	if err != nil {
		return nil, err
	}
	if err := s.autoStartWorkout(ctx, workout); err != nil {
		return nil, err
	}

	set.ActualReps = &actualReps
	set.ActualWeight = &actualWeight
	set.Status = domain.SetCompleted
	if err := s.setRepo.Update(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

// SkipSet marks a set skipped without recording performance.
func (s *workoutService) SkipSet(ctx context.Context, setID primitive.ObjectID) (*domain.WorkoutSet, error) {
	set, workout, err := s.loadSetAndWorkout(ctx, setID)
	if err != nil {
		return nil, err
	}
	if err := s.autoStartWorkout(ctx, workout); err != nil {
		return nil, err
	}

	set.ActualReps = nil
	set.ActualWeight = nil
	set.Status = domain.SetSkipped
	if err := s.setRepo.Update(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

// UnlogSet reverts a completed set to pending and clears its actuals. The
// parent workout keeps its status even if it was auto-started by the log.
// Skipped sets cannot be unlogged; there is no un-skip operation.
func (s *workoutService) UnlogSet(ctx context.Context, setID primitive.ObjectID) (*domain.WorkoutSet, error) {
	set, _, err := s.loadSetAndWorkout(ctx, setID)
	if err != nil {
		return nil, err
	}
	if set.Status != domain.SetCompleted {
		return nil, ErrSetNotUnloggable
	}

	set.ActualReps = nil
	set.ActualWeight = nil
	set.Status = domain.SetPending
	if err := s.setRepo.Update(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

// loadEditableWorkout fetches a workout and enforces the status gate for
// structural (add/remove set) operations.
func (s *workoutService) loadEditableWorkout(ctx context.Context, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if !workout.Editable() {
		return nil, ErrWorkoutNotEditable
	}
	return workout, nil
}

// AddSetToExercise appends one set to an exercise in this workout, copying
// targets from the highest-numbered existing set, and mirrors the addition
// into every future pending workout of the same plan day.
func (s *workoutService) AddSetToExercise(ctx context.Context, workoutID, exerciseID primitive.ObjectID) (*SetModificationResult, error) {
	workout, err := s.loadEditableWorkout(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	sets, err := s.setRepo.GetByWorkoutAndExercise(ctx, workoutID, exerciseID)
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		// There must be at least one template set to copy targets from.
		return nil, ErrNoSetsForExercise
	}

	template := highestSet(sets)
	newSet := &domain.WorkoutSet{
		WorkoutID:    workoutID,
		ExerciseID:   exerciseID,
		SetNumber:    template.SetNumber + 1,
		TargetReps:   template.TargetReps,
		TargetWeight: template.TargetWeight,
		Status:       domain.SetPending,
	}
	newSetID, err := s.setRepo.Create(ctx, newSet)
	if err != nil {
		return nil, err
	}
	newSet.ID = newSetID

	affected, modified, err := s.propagateSetAddition(ctx, workout, exerciseID)
	if err != nil {
		return nil, err
	}
	return &SetModificationResult{
		CurrentWorkoutSet:      newSet,
		FutureWorkoutsAffected: affected,
		FutureSetsModified:     modified,
	}, nil
}

// RemoveSetFromExercise removes the highest-numbered pending set of an
// exercise in this workout and mirrors the removal into future pending
// workouts. Sets with logged history are never auto-deleted by this path.
func (s *workoutService) RemoveSetFromExercise(ctx context.Context, workoutID, exerciseID primitive.ObjectID) (*SetModificationResult, error) {
	workout, err := s.loadEditableWorkout(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	sets, err := s.setRepo.GetByWorkoutAndExercise(ctx, workoutID, exerciseID)
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, ErrNoSetsForExercise
	}
	if len(sets) == 1 {
		return nil, ErrLastSet
	}

	victim := highestPendingSet(sets)
	if victim == nil {
		return nil, ErrNoPendingSets
	}
	if err := s.setRepo.DeletePending(ctx, victim.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// The set picked up logged data between our read and the delete.
			return nil, ErrNoPendingSets
		}
		return nil, err
	}

	affected, modified, err := s.propagateSetRemoval(ctx, workout, exerciseID)
	if err != nil {
		return nil, err
	}
	return &SetModificationResult{
		CurrentWorkoutSet:      nil,
		FutureWorkoutsAffected: affected,
		FutureSetsModified:     modified,
	}, nil
}

// propagateSetAddition appends one pending set per future pending workout of
// the same plan day, copying targets the same way the current workout did.
func (s *workoutService) propagateSetAddition(ctx context.Context, current *domain.Workout, exerciseID primitive.ObjectID) (affected, modified int, err error) {
	future, err := s.futureSiblings(ctx, current)
	if err != nil {
		return 0, 0, err
	}
	for i := range future {
		w := &future[i]
		sets, err := s.setRepo.GetByWorkoutAndExercise(ctx, w.ID, exerciseID)
		if err != nil {
			return affected, modified, err
		}
		if len(sets) == 0 {
			continue
		}
		template := highestSet(sets)
		_, err = s.setRepo.Create(ctx, &domain.WorkoutSet{
			WorkoutID:    w.ID,
			ExerciseID:   exerciseID,
			SetNumber:    template.SetNumber + 1,
			TargetReps:   template.TargetReps,
			TargetWeight: template.TargetWeight,
			Status:       domain.SetPending,
		})
		if err != nil {
			return affected, modified, err
		}
		affected++
		modified++
	}
	return affected, modified, nil
}

// propagateSetRemoval drops the highest pending set per future pending
// workout of the same plan day, honoring the same last-set and logged-data
// protections as the current workout.
func (s *workoutService) propagateSetRemoval(ctx context.Context, current *domain.Workout, exerciseID primitive.ObjectID) (affected, modified int, err error) {
	future, err := s.futureSiblings(ctx, current)
	if err != nil {
		return 0, 0, err
	}
	for i := range future {
		w := &future[i]
		sets, err := s.setRepo.GetByWorkoutAndExercise(ctx, w.ID, exerciseID)
		if err != nil {
			return affected, modified, err
		}
		if len(sets) <= 1 {
			continue
		}
		victim := highestPendingSet(sets)
		if victim == nil {
			continue
		}
		if err := s.setRepo.DeletePending(ctx, victim.ID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue // logged concurrently, preserved
			}
			return affected, modified, err
		}
		affected++
		modified++
	}
	return affected, modified, nil
}

// futureSiblings returns the pending workouts of the same mesocycle and plan
// day, excluding the workout currently being edited.
func (s *workoutService) futureSiblings(ctx context.Context, current *domain.Workout) ([]domain.Workout, error) {
	pending, err := s.workoutRepo.GetPendingByMesocycleID(ctx, current.MesocycleID)
	if err != nil {
		return nil, err
	}
	siblings := make([]domain.Workout, 0, len(pending))
	for _, w := range pending {
		if w.ID != current.ID && w.PlanDayID == current.PlanDayID {
			siblings = append(siblings, w)
		}
	}
	return siblings, nil
}

// highestSet returns the set with the largest set number.
func highestSet(sets []domain.WorkoutSet) *domain.WorkoutSet {
	var best *domain.WorkoutSet
	for i := range sets {
		if best == nil || sets[i].SetNumber > best.SetNumber {
			best = &sets[i]
		}
	}
	return best
}

// highestPendingSet returns the pending set with the largest set number, nil
// if no pending set exists.
func highestPendingSet(sets []domain.WorkoutSet) *domain.WorkoutSet {
	var best *domain.WorkoutSet
	for i := range sets {
		if sets[i].Status != domain.SetPending || sets[i].HasLoggedData() {
			continue
		}
		if best == nil || sets[i].SetNumber > best.SetNumber {
			best = &sets[i]
		}
	}
	return best
}
