package recommend

import (
	"context"
	"errors"

	"alcyxob/wellness-coach/internal/domain"
)

// --- Errors ---
var (
	// ErrMalformedResponse means the model's reply could not be decoded into
	// a valid Recommendation. Callers fall back to the rule-based plan.
	ErrMalformedResponse = errors.New("malformed recommendation response")
)

// Context is the plain-data snapshot of an athlete's state handed to the
// engine. It carries no repository handles and no secrets so it can be
// serialized straight into a prompt.
type Context struct {
	ATL float64 `json:"atl"`
	CTL float64 `json:"ctl"`
	TSB float64 `json:"tsb"`

	WeekInBlock int `json:"weekInBlock"` // 0 when no mesocycle is active

	// Next unmatched session from the weekly plan, nil when the week's plan
	// is complete or no plan exists.
	NextSession *domain.WeeklySession `json:"nextSession,omitempty"`

	EfficiencyFactor *float64 `json:"efficiencyFactor,omitempty"`
	EFCategory       string   `json:"efCategory,omitempty"`
	VO2Max           *float64 `json:"vo2max,omitempty"`
	VO2MaxCategory   string   `json:"vo2maxCategory,omitempty"`

	RecentActivities []ActivitySummary `json:"recentActivities,omitempty"`
}

// ActivitySummary is the condensed view of one recent activity.
type ActivitySummary struct {
	Date        string  `json:"date"` // YYYY-MM-DD
	Name        string  `json:"name"`
	TSS         float64 `json:"tss"`
	WorkoutType string  `json:"workoutType"`
}

// Intensity is the engine's effort guidance for the recommended session.
type Intensity string

const (
	IntensityHard     Intensity = "hard"
	IntensityModerate Intensity = "moderate"
	IntensityEasy     Intensity = "easy"
	IntensityRest     Intensity = "rest"
)

func validIntensity(i Intensity) bool {
	switch i {
	case IntensityHard, IntensityModerate, IntensityEasy, IntensityRest:
		return true
	}
	return false
}

func validSessionType(t domain.SessionType) bool {
	switch t {
	case domain.SessionVO2Max, domain.SessionThreshold, domain.SessionEndurance,
		domain.SessionTempo, domain.SessionFun, domain.SessionRecovery, domain.SessionOff:
		return true
	}
	return false
}

// Recommendation is the engine's answer: what to ride today and why.
type Recommendation struct {
	SessionType     domain.SessionType `json:"sessionType"`
	Intensity       Intensity          `json:"intensity"`
	DurationMinutes int                `json:"durationMinutes"`
	Rationale       string             `json:"rationale"`
	Cautions        []string           `json:"cautions,omitempty"`

	// Fallback marks a rule-based recommendation produced because the model
	// reply was unusable.
	Fallback bool `json:"fallback,omitempty"`
}

// Engine produces a daily session recommendation for an athlete snapshot.
type Engine interface {
	Recommend(ctx context.Context, rc Context) (*Recommendation, error)
}

// RuleBased returns the deterministic recommendation used when no model is
// configured or the model reply is malformed. It leans on the weekly plan
// and backs off when form is deeply negative.
func RuleBased(rc Context) *Recommendation {
	if rc.TSB <= -20 {
		return &Recommendation{
			SessionType:     domain.SessionRecovery,
			Intensity:       IntensityEasy,
			DurationMinutes: 45,
			Rationale:       "Training stress balance is deeply negative; an easy spin protects the coming quality days.",
			Cautions:        []string{"Keep power well below threshold."},
			Fallback:        true,
		}
	}
	if rc.NextSession != nil {
		intensity := IntensityModerate
		switch rc.NextSession.SessionType {
		case domain.SessionVO2Max, domain.SessionThreshold:
			intensity = IntensityHard
		case domain.SessionRecovery, domain.SessionOff:
			intensity = IntensityEasy
		}
		duration := int(rc.NextSession.SuggestedDurationMinutes)
		if duration <= 0 {
			duration = 60
		}
		return &Recommendation{
			SessionType:     rc.NextSession.SessionType,
			Intensity:       intensity,
			DurationMinutes: duration,
			Rationale:       "Next unmatched session from the weekly plan.",
			Fallback:        true,
		}
	}
	return &Recommendation{
		SessionType:     domain.SessionFun,
		Intensity:       IntensityModerate,
		DurationMinutes: 60,
		Rationale:       "Weekly plan is complete; ride for enjoyment at a comfortable effort.",
		Fallback:        true,
	}
}
