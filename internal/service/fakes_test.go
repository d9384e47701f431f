package service

import (
	"alcyxob/wellness-coach/internal/domain"
	"alcyxob/wellness-coach/internal/repository"
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. They mirror the mongo implementations closely
// enough for the services: ErrNotFound on misses, conditional pending delete,
// stable ordering on list calls.

type fakeWorkoutRepo struct {
	workouts map[primitive.ObjectID]*domain.Workout
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{workouts: make(map[primitive.ObjectID]*domain.Workout)}
}

func (r *fakeWorkoutRepo) add(w domain.Workout) domain.Workout {
	if w.ID == primitive.NilObjectID {
		w.ID = primitive.NewObjectID()
	}
	clone := w
	r.workouts[w.ID] = &clone
	return w
}

func (r *fakeWorkoutRepo) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	workout.ID = primitive.NewObjectID()
	clone := *workout
	r.workouts[workout.ID] = &clone
	return workout.ID, nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	w, ok := r.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *w
	return &clone, nil
}

func (r *fakeWorkoutRepo) GetByMesocycleID(_ context.Context, mesocycleID primitive.ObjectID) ([]domain.Workout, error) {
	return r.list(mesocycleID, false), nil
}

func (r *fakeWorkoutRepo) GetPendingByMesocycleID(_ context.Context, mesocycleID primitive.ObjectID) ([]domain.Workout, error) {
	return r.list(mesocycleID, true), nil
}

func (r *fakeWorkoutRepo) list(mesocycleID primitive.ObjectID, pendingOnly bool) []domain.Workout {
	var out []domain.Workout
	for _, w := range r.workouts {
		if w.MesocycleID != mesocycleID {
			continue
		}
		if pendingOnly && w.Status != domain.WorkoutPending {
			continue
		}
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	return out
}

func (r *fakeWorkoutRepo) Update(_ context.Context, workout *domain.Workout) error {
	if _, ok := r.workouts[workout.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *workout
	r.workouts[workout.ID] = &clone
	return nil
}

type fakeSetRepo struct {
	sets map[primitive.ObjectID]*domain.WorkoutSet
}

func newFakeSetRepo() *fakeSetRepo {
	return &fakeSetRepo{sets: make(map[primitive.ObjectID]*domain.WorkoutSet)}
}

func (r *fakeSetRepo) add(s domain.WorkoutSet) domain.WorkoutSet {
	if s.ID == primitive.NilObjectID {
		s.ID = primitive.NewObjectID()
	}
	if s.Status == "" {
		s.Status = domain.SetPending
	}
	clone := s
	r.sets[s.ID] = &clone
	return s
}

func (r *fakeSetRepo) Create(_ context.Context, set *domain.WorkoutSet) (primitive.ObjectID, error) {
	set.ID = primitive.NewObjectID()
	clone := *set
	r.sets[set.ID] = &clone
	return set.ID, nil
}

func (r *fakeSetRepo) CreateMany(ctx context.Context, sets []domain.WorkoutSet) error {
	for i := range sets {
		if _, err := r.Create(ctx, &sets[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeSetRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutSet, error) {
	s, ok := r.sets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *fakeSetRepo) GetByWorkoutID(_ context.Context, workoutID primitive.ObjectID) ([]domain.WorkoutSet, error) {
	var out []domain.WorkoutSet
	for _, s := range r.sets {
		if s.WorkoutID == workoutID {
			out = append(out, *s)
		}
	}
	sortSets(out)
	return out, nil
}

func (r *fakeSetRepo) GetByWorkoutAndExercise(_ context.Context, workoutID, exerciseID primitive.ObjectID) ([]domain.WorkoutSet, error) {
	var out []domain.WorkoutSet
	for _, s := range r.sets {
		if s.WorkoutID == workoutID && s.ExerciseID == exerciseID {
			out = append(out, *s)
		}
	}
	sortSets(out)
	return out, nil
}

func (r *fakeSetRepo) Update(_ context.Context, set *domain.WorkoutSet) error {
	if _, ok := r.sets[set.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *set
	r.sets[set.ID] = &clone
	return nil
}

func (r *fakeSetRepo) DeletePending(_ context.Context, id primitive.ObjectID) error {
	s, ok := r.sets[id]
	if !ok || s.Status != domain.SetPending || s.HasLoggedData() {
		return repository.ErrNotFound
	}
	delete(r.sets, id)
	return nil
}

func sortSets(sets []domain.WorkoutSet) {
	sort.Slice(sets, func(i, j int) bool {
		if sets[i].ExerciseID != sets[j].ExerciseID {
			return sets[i].ExerciseID.Hex() < sets[j].ExerciseID.Hex()
		}
		return sets[i].SetNumber < sets[j].SetNumber
	})
}

// fixedClock returns a deterministic now() for service construction.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
