package service

import (
	"alcyxob/wellness-coach/internal/domain"
	"alcyxob/wellness-coach/internal/progression"
	"alcyxob/wellness-coach/internal/repository"
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrMesocycleNotFound = errors.New("mesocycle not found")
	ErrExerciseNotFound  = errors.New("exercise not found")
)

// ExerciseChanges lists only the prescription fields that actually changed
// between two versions of a plan day exercise. Nil means unchanged.
type ExerciseChanges struct {
	Sets        *int     `json:"sets,omitempty"`
	Reps        *int     `json:"reps,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	RestSeconds *int     `json:"restSeconds,omitempty"`
}

// ModifiedExercise pairs the new prescription with its change set.
type ModifiedExercise struct {
	Exercise domain.PlanDayExercise `json:"exercise"`
	Changes  ExerciseChanges        `json:"changes"`
}

// PlanDiff is the result of diffing an edited plan day against its prior
// version. It drives propagation to future workouts.
type PlanDiff struct {
	AddedExercises    []domain.PlanDayExercise `json:"addedExercises"`
	RemovedExercises  []domain.PlanDayExercise `json:"removedExercises"`
	ModifiedExercises []ModifiedExercise       `json:"modifiedExercises"`
}

// PropagationResult aggregates the effect of a bulk plan change across the
// future pending workouts of a mesocycle. Warnings are non-fatal notices the
// caller must surface (logged data preserved etc.); they never abort the
// operation.
type PropagationResult struct {
	AffectedWorkoutCount int      `json:"affectedWorkoutCount"`
	AddedSetsCount       int      `json:"addedSetsCount"`
	RemovedSetsCount     int      `json:"removedSetsCount"`
	ModifiedSetsCount    int      `json:"modifiedSetsCount"`
	PreservedCount       int      `json:"preservedCount"`
	Warnings             []string `json:"warnings,omitempty"`
}

// --- Service Interface ---
type PlanService interface {
	DiffPlanDayExercises(oldExercises, newExercises []domain.PlanDayExercise) PlanDiff
	FutureWorkouts(ctx context.Context, mesocycleID primitive.ObjectID) ([]domain.Workout, error)
	AddExerciseToFutureWorkouts(ctx context.Context, mesocycleID, planDayID primitive.ObjectID, pde domain.PlanDayExercise, exercise domain.Exercise) (*PropagationResult, error)
	RemoveExerciseFromFutureWorkouts(ctx context.Context, mesocycleID, planDayID, exerciseID primitive.ObjectID) (*PropagationResult, error)
	UpdateExerciseTargetsForFutureWorkouts(ctx context.Context, mesocycleID, planDayID primitive.ObjectID, pde domain.PlanDayExercise, exercise domain.Exercise) (*PropagationResult, error)
	SyncPlanToMesocycle(ctx context.Context, mesocycleID, planDayID primitive.ObjectID, newPlanExercises []domain.PlanDayExercise, exerciseLookup map[primitive.ObjectID]domain.Exercise) (*PropagationResult, error)
}

// --- Service Implementation ---

// planService implements the PlanService interface.
type planService struct {
	workoutRepo repository.WorkoutRepository
	setRepo     repository.WorkoutSetRepository
	calc        progression.Calculator
}

// NewPlanService creates a new instance of planService.
func NewPlanService(workoutRepo repository.WorkoutRepository, setRepo repository.WorkoutSetRepository, calc progression.Calculator) PlanService {
	return &planService{
		workoutRepo: workoutRepo,
		setRepo:     setRepo,
		calc:        calc,
	}
}

// DiffPlanDayExercises matches prescriptions by exercise ID and reports
// additions, removals, and field-level modifications.
func (s *planService) DiffPlanDayExercises(oldExercises, newExercises []domain.PlanDayExercise) PlanDiff {
	oldByExercise := make(map[primitive.ObjectID]domain.PlanDayExercise, len(oldExercises))
	for _, pde := range oldExercises {
		oldByExercise[pde.ExerciseID] = pde
	}
	newByExercise := make(map[primitive.ObjectID]domain.PlanDayExercise, len(newExercises))
	for _, pde := range newExercises {
		newByExercise[pde.ExerciseID] = pde
	}

	var diff PlanDiff
	for _, pde := range newExercises {
		old, exists := oldByExercise[pde.ExerciseID]
		if !exists {
			diff.AddedExercises = append(diff.AddedExercises, pde)
			continue
		}
		changes := ExerciseChanges{}
		changed := false
		if pde.Sets != old.Sets {
			v := pde.Sets
			changes.Sets = &v
			changed = true
		}
		if pde.Reps != old.Reps {
			v := pde.Reps
			changes.Reps = &v
			changed = true
		}
		if pde.Weight != old.Weight {
			v := pde.Weight
			changes.Weight = &v
			changed = true
		}
		if pde.RestSeconds != old.RestSeconds {
			v := pde.RestSeconds
			changes.RestSeconds = &v
			changed = true
		}
		if changed {
			diff.ModifiedExercises = append(diff.ModifiedExercises, ModifiedExercise{Exercise: pde, Changes: changes})
		}
	}
	for _, pde := range oldExercises {
		if _, exists := newByExercise[pde.ExerciseID]; !exists {
			diff.RemovedExercises = append(diff.RemovedExercises, pde)
		}
	}
	return diff
}

// FutureWorkouts returns the mutable workouts of a mesocycle: every workout
// still pending, whatever its scheduled date. An overdue but unstarted
// workout is still fair game for propagation.
func (s *planService) FutureWorkouts(ctx context.Context, mesocycleID primitive.ObjectID) ([]domain.Workout, error) {
	return s.workoutRepo.GetPendingByMesocycleID(ctx, mesocycleID)
}

// futurePlanDayWorkouts filters future workouts down to one plan day.
func (s *planService) futurePlanDayWorkouts(ctx context.Context, mesocycleID, planDayID primitive.ObjectID) ([]domain.Workout, error) {
	future, err := s.FutureWorkouts(ctx, mesocycleID)
	if err != nil {
		return nil, err
	}
	matching := make([]domain.Workout, 0, len(future))
	for _, w := range future {
		if w.PlanDayID == planDayID {
			matching = append(matching, w)
		}
	}
	return matching, nil
}

func baseFromPrescription(pde domain.PlanDayExercise, exercise domain.Exercise) progression.BasePrescription {
	return progression.BasePrescription{
		ExerciseID:      pde.ExerciseID,
		PlanExerciseID:  pde.ID,
		BaseWeight:      pde.Weight,
		BaseReps:        pde.Reps,
		BaseSets:        pde.Sets,
		WeightIncrement: exercise.WeightIncrement,
	}
}

// AddExerciseToFutureWorkouts creates the prescribed sets for a newly added
// plan exercise in every future pending workout of the plan day. Targets are
// computed per workout week, so set 1 of a week-3 workout already reflects
// accumulated progression.
func (s *planService) AddExerciseToFutureWorkouts(ctx context.Context, mesocycleID, planDayID primitive.ObjectID, pde domain.PlanDayExercise, exercise domain.Exercise) (*PropagationResult, error) {
	workouts, err := s.futurePlanDayWorkouts(ctx, mesocycleID, planDayID)
	if err != nil {
		return nil, err
	}

	result := &PropagationResult{}
	base := baseFromPrescription(pde, exercise)
	for i := range workouts {
		w := &workouts[i]
		added, err := s.createSetsForWeek(ctx, w, pde.ExerciseID, base, 0)
		if err != nil {
			return nil, err
		}
		if added > 0 {
			result.AffectedWorkoutCount++
			result.AddedSetsCount += added
		}
	}
	return result, nil
}

// createSetsForWeek creates the progression-adjusted sets of an exercise for
// one workout, starting after startAfter existing set numbers. Returns how
// many sets were created.
func (s *planService) createSetsForWeek(ctx context.Context, w *domain.Workout, exerciseID primitive.ObjectID, base progression.BasePrescription, startAfter int) (int, error) {
	targets := s.calc.TargetsForWeek(base, w.WeekNumber, true)
	if targets.TargetSets <= startAfter {
		return 0, nil
	}
	sets := make([]domain.WorkoutSet, 0, targets.TargetSets-startAfter)
	for setNumber := startAfter + 1; setNumber <= targets.TargetSets; setNumber++ {
		sets = append(sets, domain.WorkoutSet{
			WorkoutID:    w.ID,
			ExerciseID:   exerciseID,
			SetNumber:    setNumber,
			TargetReps:   targets.TargetReps,
			TargetWeight: targets.TargetWeight,
			Status:       domain.SetPending,
		})
	}
	if err := s.setRepo.CreateMany(ctx, sets); err != nil {
		return 0, err
	}
	return len(sets), nil
}

// RemoveExerciseFromFutureWorkouts deletes the pending sets of an exercise
// from every future pending workout of the plan day. Sets with logged data
// are an absolute veto against deletion: they stay, the workout is counted
// as preserved, and a warning is recorded for the caller to surface.
func (s *planService) RemoveExerciseFromFutureWorkouts(ctx context.Context, mesocycleID, planDayID, exerciseID primitive.ObjectID) (*PropagationResult, error) {
	workouts, err := s.futurePlanDayWorkouts(ctx, mesocycleID, planDayID)
	if err != nil {
		return nil, err
	}

	result := &PropagationResult{}
	for i := range workouts {
		w := &workouts[i]
		removed, preserved, err := s.removeExerciseSets(ctx, w, exerciseID)
		if err != nil {
			return nil, err
		}
		if removed == 0 && preserved == 0 {
			continue
		}
		result.AffectedWorkoutCount++
		result.RemovedSetsCount += removed
		if preserved > 0 {
			result.PreservedCount++
			result.Warnings = append(result.Warnings, preservedWarning(w))
		}
	}
	return result, nil
}

// removeExerciseSets deletes the pending sets of one exercise in one workout
// and reports how many logged sets were preserved instead.
func (s *planService) removeExerciseSets(ctx context.Context, w *domain.Workout, exerciseID primitive.ObjectID) (removed, preserved int, err error) {
	sets, err := s.setRepo.GetByWorkoutAndExercise(ctx, w.ID, exerciseID)
	if err != nil {
		return 0, 0, err
	}
	for i := range sets {
		set := &sets[i]
		if set.HasLoggedData() {
			preserved++
			continue
		}
		if err := s.setRepo.DeletePending(ctx, set.ID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Logged between our read and the delete; the veto holds.
				preserved++
				continue
			}
			return removed, preserved, err
		}
		removed++
	}
	return removed, preserved, nil
}

func preservedWarning(w *domain.Workout) string {
	return fmt.Sprintf("Workout on %s has logged data - exercise sets preserved", w.ScheduledDate.Format("2006-01-02"))
}

// UpdateExerciseTargetsForFutureWorkouts applies new base values to every
// future pending workout of the plan day. The new values become the week-1
// baseline: each workout's full prescription is recomputed for its week.
// Pending sets are deleted and recreated with the new targets; sets with
// logged data are untouched and keep their set numbers.
func (s *planService) UpdateExerciseTargetsForFutureWorkouts(ctx context.Context, mesocycleID, planDayID primitive.ObjectID, pde domain.PlanDayExercise, exercise domain.Exercise) (*PropagationResult, error) {
	workouts, err := s.futurePlanDayWorkouts(ctx, mesocycleID, planDayID)
	if err != nil {
		return nil, err
	}

	result := &PropagationResult{}
	base := baseFromPrescription(pde, exercise)
	for i := range workouts {
		w := &workouts[i]
		modified, preserved, err := s.reconcileExerciseSets(ctx, w, pde.ExerciseID, base)
		if err != nil {
			return nil, err
		}
		if modified == 0 && preserved == 0 {
			continue
		}
		result.AffectedWorkoutCount++
		result.ModifiedSetsCount += modified
		if preserved > 0 {
			result.PreservedCount++
		}
	}
	return result, nil
}

// reconcileExerciseSets makes one workout's sets for an exercise match the
// week targets computed from base. Logged sets keep their set_number slots
// and are neither deleted nor recreated; pending slots are rebuilt around
// them up to the target set count, excess pending slots are dropped from the
// highest set numbers down.
func (s *planService) reconcileExerciseSets(ctx context.Context, w *domain.Workout, exerciseID primitive.ObjectID, base progression.BasePrescription) (modified, preserved int, err error) {
	sets, err := s.setRepo.GetByWorkoutAndExercise(ctx, w.ID, exerciseID)
	if err != nil {
		return 0, 0, err
	}

	targets := s.calc.TargetsForWeek(base, w.WeekNumber, true)

	loggedNumbers := make(map[int]bool)
	for i := range sets {
		set := &sets[i]
		if set.HasLoggedData() {
			loggedNumbers[set.SetNumber] = true
			preserved++
			continue
		}
		if err := s.setRepo.DeletePending(ctx, set.ID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				loggedNumbers[set.SetNumber] = true
				preserved++
				continue
			}
			return modified, preserved, err
		}
		modified++
	}

	// Refill pending slots around the preserved set numbers. Logged sets
	// still occupy their slot even beyond the new target count.
	var created []domain.WorkoutSet
	for setNumber := 1; setNumber <= targets.TargetSets; setNumber++ {
		if loggedNumbers[setNumber] {
			continue
		}
		created = append(created, domain.WorkoutSet{
			WorkoutID:    w.ID,
			ExerciseID:   exerciseID,
			SetNumber:    setNumber,
			TargetReps:   targets.TargetReps,
			TargetWeight: targets.TargetWeight,
			Status:       domain.SetPending,
		})
	}
	if len(created) > 0 {
		if err := s.setRepo.CreateMany(ctx, created); err != nil {
			return modified, preserved, err
		}
		modified += len(created)
	}
	return modified, preserved, nil
}

// SyncPlanToMesocycle reconciles every future pending workout of a plan day
// against the full new prescription list in one pass: missing exercises are
// added, dropped exercises removed (logged data preserved with warnings),
// and shared exercises get their set counts and targets rebuilt. A mesocycle
// with no future workouts yields a zeroed result and no side effects.
func (s *planService) SyncPlanToMesocycle(ctx context.Context, mesocycleID, planDayID primitive.ObjectID, newPlanExercises []domain.PlanDayExercise, exerciseLookup map[primitive.ObjectID]domain.Exercise) (*PropagationResult, error) {
	workouts, err := s.futurePlanDayWorkouts(ctx, mesocycleID, planDayID)
	if err != nil {
		return nil, err
	}
	result := &PropagationResult{}
	if len(workouts) == 0 {
		return result, nil
	}

	planned := make(map[primitive.ObjectID]domain.PlanDayExercise, len(newPlanExercises))
	for _, pde := range newPlanExercises {
		planned[pde.ExerciseID] = pde
	}

	for i := range workouts {
		w := &workouts[i]
		sets, err := s.setRepo.GetByWorkoutID(ctx, w.ID)
		if err != nil {
			return nil, err
		}
		existing := make(map[primitive.ObjectID]bool)
		for _, set := range sets {
			existing[set.ExerciseID] = true
		}

		touched := false
		preservedHere := false

		// Exercises dropped from the plan: remove, preserving logged data.
		for exerciseID := range existing {
			if _, stillPlanned := planned[exerciseID]; stillPlanned {
				continue
			}
			removed, preserved, err := s.removeExerciseSets(ctx, w, exerciseID)
			if err != nil {
				return nil, err
			}
			result.RemovedSetsCount += removed
			if removed > 0 {
				touched = true
			}
			if preserved > 0 {
				preservedHere = true
			}
		}

		// Exercises in the new plan: add or reconcile.
		for _, pde := range sortedByOrder(newPlanExercises) {
			exercise, ok := exerciseLookup[pde.ExerciseID]
			if !ok {
				return nil, ErrExerciseNotFound
			}
			base := baseFromPrescription(pde, exercise)
			if !existing[pde.ExerciseID] {
				added, err := s.createSetsForWeek(ctx, w, pde.ExerciseID, base, 0)
				if err != nil {
					return nil, err
				}
				result.AddedSetsCount += added
				if added > 0 {
					touched = true
				}
				continue
			}
			modified, preserved, err := s.reconcileExerciseSets(ctx, w, pde.ExerciseID, base)
			if err != nil {
				return nil, err
			}
			result.ModifiedSetsCount += modified
			if modified > 0 {
				touched = true
			}
			if preserved > 0 {
				preservedHere = true
			}
		}

		if preservedHere {
			result.PreservedCount++
			result.Warnings = append(result.Warnings, preservedWarning(w))
		}
		if touched || preservedHere {
			result.AffectedWorkoutCount++
		}
	}
	return result, nil
}

func sortedByOrder(exercises []domain.PlanDayExercise) []domain.PlanDayExercise {
	out := make([]domain.PlanDayExercise, len(exercises))
	copy(out, exercises)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}
