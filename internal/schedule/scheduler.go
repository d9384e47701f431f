// Package schedule decides what the athlete should ride next: it matches the
// week's completed activities against the ordered weekly session plan.
package schedule

import (
	"alcyxob/wellness-coach/internal/domain"
)

// sessionTypeForWorkout maps a classified activity type to a plannable
// session type. Types with no session equivalent contribute nothing to the
// matching pool.
func sessionTypeForWorkout(wt domain.WorkoutType) (domain.SessionType, bool) {
	switch wt {
	case domain.WorkoutTypeVO2Max:
		return domain.SessionVO2Max, true
	case domain.WorkoutTypeThreshold:
		return domain.SessionThreshold, true
	case domain.WorkoutTypeFun:
		return domain.SessionFun, true
	case domain.WorkoutTypeRecovery:
		return domain.SessionRecovery, true
	default:
		return "", false
	}
}

// DetermineNextSession walks the weekly sessions in their declared order and
// returns the first one without a matching completed activity, or nil when
// every session is matched (week complete) or the plan is empty.
//
// Matching is deliberately greedy and order-sensitive: each activity is
// consumed by at most one session, and earlier sessions have first claim on
// activities of their type. A smarter maximum matching would let a later
// duplicate-type session steal credit from an earlier one, which is not what
// an athlete reviewing their week expects.
func DetermineNextSession(weeklySessions []domain.WeeklySession, completedActivities []domain.Activity) *domain.WeeklySession {
	if len(weeklySessions) == 0 {
		return nil
	}

	pool := make([]domain.SessionType, 0, len(completedActivities))
	for _, a := range completedActivities {
		if st, ok := sessionTypeForWorkout(a.WorkoutType); ok {
			pool = append(pool, st)
		}
	}
	consumed := make([]bool, len(pool))

	for i := range weeklySessions {
		session := &weeklySessions[i]
		matched := false
		for j, st := range pool {
			if !consumed[j] && st == session.SessionType {
				consumed[j] = true // first found, not best found
				matched = true
				break
			}
		}
		if !matched {
			return session
		}
	}
	return nil
}
