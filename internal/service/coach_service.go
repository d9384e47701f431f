package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"alcyxob/wellness-coach/internal/domain"
	"alcyxob/wellness-coach/internal/metrics"
	"alcyxob/wellness-coach/internal/recommend"
	"alcyxob/wellness-coach/internal/repository"
	"alcyxob/wellness-coach/internal/schedule"
	"alcyxob/wellness-coach/internal/trainingload"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const recentActivitySummaries = 7

// --- Service Interface ---
type CoachService interface {
	// BuildContext assembles the athlete snapshot the recommendation engine
	// reasons over. It is also served directly as the dashboard payload.
	BuildContext(ctx context.Context, userID primitive.ObjectID) (*recommend.Context, error)
	// GetRecommendation returns today's session. A malformed engine reply
	// degrades to the rule-based plan instead of failing the request.
	GetRecommendation(ctx context.Context, userID primitive.ObjectID) (*recommend.Recommendation, error)
	// NextSession returns the first unmatched session of the current week's
	// plan, nil when the plan is complete or absent.
	NextSession(ctx context.Context, userID primitive.ObjectID) (*domain.WeeklySession, error)
}

// --- Service Implementation ---

// coachService implements the CoachService interface.
type coachService struct {
	userRepo       repository.UserRepository
	activityRepo   repository.ActivityRepository
	weeklyPlanRepo repository.WeeklyPlanRepository
	mesocycleRepo  repository.MesocycleRepository
	engine         recommend.Engine // nil means rule-based only
	now            func() time.Time
}

// NewCoachService creates a new instance of coachService. engine may be nil,
// in which case every recommendation is rule-based.
func NewCoachService(
	userRepo repository.UserRepository,
	activityRepo repository.ActivityRepository,
	weeklyPlanRepo repository.WeeklyPlanRepository,
	mesocycleRepo repository.MesocycleRepository,
	engine recommend.Engine,
) CoachService {
	return &coachService{
		userRepo:       userRepo,
		activityRepo:   activityRepo,
		weeklyPlanRepo: weeklyPlanRepo,
		mesocycleRepo:  mesocycleRepo,
		engine:         engine,
		now:            time.Now,
	}
}

func (s *coachService) BuildContext(ctx context.Context, userID primitive.ObjectID) (*recommend.Context, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	now := s.now().UTC()
	activities, err := s.activityRepo.GetByUserAndDateRange(ctx, userID, now.AddDate(0, 0, -trainingload.DefaultLookbackDays), now)
	if err != nil {
		return nil, err
	}

	load := trainingload.MetricsAt(activities, trainingload.DefaultLookbackDays, now)
	rc := &recommend.Context{
		ATL: load.ATL,
		CTL: load.CTL,
		TSB: load.TSB,
	}

	rc.NextSession, err = s.nextSession(ctx, userID, activities, now)
	if err != nil {
		return nil, err
	}

	if ef := latestEF(activities); ef != nil {
		rc.EfficiencyFactor = ef
		rc.EFCategory = string(metrics.CategorizeEF(*ef))
	}
	if user.HasPowerProfile() && user.WeightKg > 0 {
		if v := metrics.EstimateVO2MaxFromFTP(float64(user.FTPWatts), user.WeightKg); v != nil {
			rc.VO2Max = v
			rc.VO2MaxCategory = string(metrics.CategorizeVO2Max(*v))
		}
	}

	mesocycle, err := s.mesocycleRepo.GetLatestByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if mesocycle != nil {
		rc.WeekInBlock = trainingload.WeekInBlock(mesocycle.StartDate, now)
	}

	rc.RecentActivities = summarize(activities, recentActivitySummaries)
	return rc, nil
}

func (s *coachService) GetRecommendation(ctx context.Context, userID primitive.ObjectID) (*recommend.Recommendation, error) {
	rc, err := s.BuildContext(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.engine == nil {
		return recommend.RuleBased(*rc), nil
	}
	rec, err := s.engine.Recommend(ctx, *rc)
	if err != nil {
		if errors.Is(err, recommend.ErrMalformedResponse) {
			return recommend.RuleBased(*rc), nil
		}
		return nil, err
	}
	return rec, nil
}

func (s *coachService) NextSession(ctx context.Context, userID primitive.ObjectID) (*domain.WeeklySession, error) {
	now := s.now().UTC()
	activities, err := s.activityRepo.GetByUserAndDateRange(ctx, userID, trainingload.WeekStart(now), now)
	if err != nil {
		return nil, err
	}
	return s.nextSession(ctx, userID, activities, now)
}

// nextSession matches this week's activities against the weekly plan.
// activities may span more than the current week; only those inside it count.
func (s *coachService) nextSession(ctx context.Context, userID primitive.ObjectID, activities []domain.Activity, now time.Time) (*domain.WeeklySession, error) {
	weekStart := trainingload.WeekStart(now)
	plan, err := s.weeklyPlanRepo.GetByUserAndWeekStart(ctx, userID, weekStart)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	weekEnd := weekStart.AddDate(0, 0, 7)
	var week []domain.Activity
	for _, a := range activities {
		d := a.StartDate.UTC()
		if !d.Before(weekStart) && d.Before(weekEnd) {
			week = append(week, a)
		}
	}
	return schedule.DetermineNextSession(plan.Sessions, week), nil
}

// latestEF returns the efficiency factor of the most recent activity that has
// one.
func latestEF(activities []domain.Activity) *float64 {
	var best *domain.Activity
	for i := range activities {
		a := &activities[i]
		if a.EfficiencyFactor == nil {
			continue
		}
		if best == nil || a.StartDate.After(best.StartDate) {
			best = a
		}
	}
	if best == nil {
		return nil
	}
	ef := *best.EfficiencyFactor
	return &ef
}

func summarize(activities []domain.Activity, limit int) []recommend.ActivitySummary {
	sorted := make([]domain.Activity, len(activities))
	copy(sorted, activities)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartDate.After(sorted[j].StartDate)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	summaries := make([]recommend.ActivitySummary, 0, len(sorted))
	for _, a := range sorted {
		summaries = append(summaries, recommend.ActivitySummary{
			Date:        a.StartDate.UTC().Format("2006-01-02"),
			Name:        a.Name,
			TSS:         a.TSS,
			WorkoutType: string(a.WorkoutType),
		})
	}
	return summaries
}
