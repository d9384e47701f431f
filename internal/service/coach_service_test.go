package service

import (
	"context"
	"testing"
	"time"

	"alcyxob/wellness-coach/internal/domain"
	"alcyxob/wellness-coach/internal/recommend"
	"alcyxob/wellness-coach/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserRepo struct {
	users map[primitive.ObjectID]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	user.ID = id
	r.users[id] = *user
	return id, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			c := u
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := u
	return &c, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

type fakeActivityRepo struct {
	activities []domain.Activity
}

func (r *fakeActivityRepo) Create(_ context.Context, activity *domain.Activity) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	activity.ID = id
	r.activities = append(r.activities, *activity)
	return id, nil
}

func (r *fakeActivityRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Activity, error) {
	for _, a := range r.activities {
		if a.ID == id {
			c := a
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeActivityRepo) GetByExternalID(_ context.Context, userID primitive.ObjectID, externalID string) (*domain.Activity, error) {
	for _, a := range r.activities {
		if a.UserID == userID && a.ExternalID == externalID {
			c := a
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeActivityRepo) GetByUserAndDateRange(_ context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.Activity, error) {
	var out []domain.Activity
	for _, a := range r.activities {
		if a.UserID == userID && !a.StartDate.Before(from) && !a.StartDate.After(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeWeeklyPlanRepo struct {
	plans []domain.WeeklyPlan
}

func (r *fakeWeeklyPlanRepo) Create(_ context.Context, plan *domain.WeeklyPlan) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	plan.ID = id
	r.plans = append(r.plans, *plan)
	return id, nil
}

func (r *fakeWeeklyPlanRepo) GetByUserAndWeekStart(_ context.Context, userID primitive.ObjectID, weekStart time.Time) (*domain.WeeklyPlan, error) {
	for _, p := range r.plans {
		if p.UserID == userID && p.WeekStart.Equal(weekStart) {
			c := p
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeMesocycleRepo struct {
	mesocycles []domain.Mesocycle
}

func (r *fakeMesocycleRepo) Create(_ context.Context, m *domain.Mesocycle) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	m.ID = id
	r.mesocycles = append(r.mesocycles, *m)
	return id, nil
}

func (r *fakeMesocycleRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Mesocycle, error) {
	for _, m := range r.mesocycles {
		if m.ID == id {
			c := m
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeMesocycleRepo) GetLatestByUserID(_ context.Context, userID primitive.ObjectID) (*domain.Mesocycle, error) {
	var latest *domain.Mesocycle
	for i := range r.mesocycles {
		m := &r.mesocycles[i]
		if m.UserID != userID {
			continue
		}
		if latest == nil || m.StartDate.After(latest.StartDate) {
			latest = m
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	c := *latest
	return &c, nil
}

type fakeEngine struct {
	rec *recommend.Recommendation
	err error
}

func (e *fakeEngine) Recommend(_ context.Context, _ recommend.Context) (*recommend.Recommendation, error) {
	return e.rec, e.err
}

type coachFixture struct {
	users      *fakeUserRepo
	activities *fakeActivityRepo
	plans      *fakeWeeklyPlanRepo
	mesocycles *fakeMesocycleRepo
	userID     primitive.ObjectID
	now        time.Time
}

func newCoachFixture(t *testing.T) *coachFixture {
	t.Helper()
	f := &coachFixture{
		users:      newFakeUserRepo(),
		activities: &fakeActivityRepo{},
		plans:      &fakeWeeklyPlanRepo{},
		mesocycles: &fakeMesocycleRepo{},
		// A Wednesday, so the training week started two days earlier.
		now: time.Date(2025, 2, 5, 12, 0, 0, 0, time.UTC),
	}
	id, err := f.users.Create(context.Background(), &domain.User{
		Name:     "Test Athlete",
		Email:    "athlete@example.com",
		FTPWatts: 250,
		WeightKg: 70,
	})
	require.NoError(t, err)
	f.userID = id
	return f
}

func (f *coachFixture) service(engine recommend.Engine) CoachService {
	svc := NewCoachService(f.users, f.activities, f.plans, f.mesocycles, engine).(*coachService)
	svc.now = func() time.Time { return f.now }
	return svc
}

func (f *coachFixture) addActivity(t *testing.T, daysAgo int, tss float64, workoutType domain.WorkoutType, ef *float64) {
	t.Helper()
	_, err := f.activities.Create(context.Background(), &domain.Activity{
		UserID:           f.userID,
		Name:             "Ride",
		StartDate:        f.now.AddDate(0, 0, -daysAgo),
		TSS:              tss,
		WorkoutType:      workoutType,
		EfficiencyFactor: ef,
	})
	require.NoError(t, err)
}

func TestBuildContext_Empty(t *testing.T) {
	f := newCoachFixture(t)
	rc, err := f.service(nil).BuildContext(context.Background(), f.userID)
	require.NoError(t, err)

	assert.Zero(t, rc.ATL)
	assert.Zero(t, rc.CTL)
	assert.Zero(t, rc.TSB)
	assert.Zero(t, rc.WeekInBlock)
	assert.Nil(t, rc.NextSession)
	assert.Nil(t, rc.EfficiencyFactor)
	// VO2max only needs the profile, not activities.
	require.NotNil(t, rc.VO2Max)
	assert.InDelta(t, 55.2, *rc.VO2Max, 0.001)
	assert.Equal(t, "excellent", rc.VO2MaxCategory)
}

func TestBuildContext_UserNotFound(t *testing.T) {
	f := newCoachFixture(t)
	_, err := f.service(nil).BuildContext(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestBuildContext_LoadAndEF(t *testing.T) {
	f := newCoachFixture(t)
	ef := 1.25
	f.addActivity(t, 2, 100, domain.WorkoutTypeThreshold, nil)
	f.addActivity(t, 1, 80, domain.WorkoutTypeRecovery, &ef)

	rc, err := f.service(nil).BuildContext(context.Background(), f.userID)
	require.NoError(t, err)

	assert.Greater(t, rc.ATL, 0.0)
	assert.Greater(t, rc.ATL, rc.CTL)
	require.NotNil(t, rc.EfficiencyFactor)
	assert.Equal(t, 1.25, *rc.EfficiencyFactor)
	assert.Equal(t, "intermediate", rc.EFCategory)
	assert.Len(t, rc.RecentActivities, 2)
	// Most recent first.
	assert.Equal(t, 80.0, rc.RecentActivities[0].TSS)
}

func TestBuildContext_WeekInBlock(t *testing.T) {
	f := newCoachFixture(t)
	_, err := f.mesocycles.Create(context.Background(), &domain.Mesocycle{
		UserID:    f.userID,
		StartDate: f.now.AddDate(0, 0, -15), // 15 days in, third week
	})
	require.NoError(t, err)

	rc, err := f.service(nil).BuildContext(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, 3, rc.WeekInBlock)
}

func TestNextSession_PlanProgress(t *testing.T) {
	f := newCoachFixture(t)
	_, err := f.plans.Create(context.Background(), &domain.WeeklyPlan{
		UserID:    f.userID,
		WeekStart: time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
		Sessions: []domain.WeeklySession{
			{Order: 1, SessionType: domain.SessionVO2Max},
			{Order: 2, SessionType: domain.SessionEndurance},
		},
	})
	require.NoError(t, err)
	// Matched the VO2max session yesterday; last week's ride must not count.
	f.addActivity(t, 1, 90, domain.WorkoutTypeVO2Max, nil)
	f.addActivity(t, 6, 70, domain.WorkoutTypeFun, nil)

	next, err := f.service(nil).NextSession(context.Background(), f.userID)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, 2, next.Order)
	assert.Equal(t, domain.SessionEndurance, next.SessionType)
}

func TestNextSession_NoPlan(t *testing.T) {
	f := newCoachFixture(t)
	next, err := f.service(nil).NextSession(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestGetRecommendation_NoEngineUsesRules(t *testing.T) {
	f := newCoachFixture(t)
	rec, err := f.service(nil).GetRecommendation(context.Background(), f.userID)
	require.NoError(t, err)
	assert.True(t, rec.Fallback)
	assert.Equal(t, domain.SessionFun, rec.SessionType)
}

func TestGetRecommendation_EngineAnswer(t *testing.T) {
	f := newCoachFixture(t)
	want := &recommend.Recommendation{
		SessionType:     domain.SessionTempo,
		Intensity:       recommend.IntensityModerate,
		DurationMinutes: 60,
		Rationale:       "Steady week.",
	}
	rec, err := f.service(&fakeEngine{rec: want}).GetRecommendation(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, want, rec)
}

func TestGetRecommendation_MalformedFallsBack(t *testing.T) {
	f := newCoachFixture(t)
	rec, err := f.service(&fakeEngine{err: recommend.ErrMalformedResponse}).GetRecommendation(context.Background(), f.userID)
	require.NoError(t, err)
	assert.True(t, rec.Fallback)
}

func TestGetRecommendation_TransportErrorPropagates(t *testing.T) {
	f := newCoachFixture(t)
	engineErr := context.DeadlineExceeded
	_, err := f.service(&fakeEngine{err: engineErr}).GetRecommendation(context.Background(), f.userID)
	assert.ErrorIs(t, err, engineErr)
}
