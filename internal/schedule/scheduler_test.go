package schedule

import (
	"testing"

	"alcyxob/wellness-coach/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessions(types ...domain.SessionType) []domain.WeeklySession {
	out := make([]domain.WeeklySession, len(types))
	for i, st := range types {
		out[i] = domain.WeeklySession{Order: i + 1, SessionType: st}
	}
	return out
}

func completed(types ...domain.WorkoutType) []domain.Activity {
	out := make([]domain.Activity, len(types))
	for i, wt := range types {
		out[i] = domain.Activity{WorkoutType: wt}
	}
	return out
}

func TestDetermineNextSession(t *testing.T) {
	week := sessions(domain.SessionVO2Max, domain.SessionThreshold, domain.SessionFun)

	t.Run("nothing completed yet", func(t *testing.T) {
		next := DetermineNextSession(week, nil)
		require.NotNil(t, next)
		assert.Equal(t, 1, next.Order)
		assert.Equal(t, domain.SessionVO2Max, next.SessionType)
	})

	t.Run("two done, third is next", func(t *testing.T) {
		next := DetermineNextSession(week, completed(domain.WorkoutTypeVO2Max, domain.WorkoutTypeThreshold))
		require.NotNil(t, next)
		assert.Equal(t, 3, next.Order)
		assert.Equal(t, domain.SessionFun, next.SessionType)
	})

	t.Run("all done in any order", func(t *testing.T) {
		next := DetermineNextSession(week, completed(domain.WorkoutTypeFun, domain.WorkoutTypeVO2Max, domain.WorkoutTypeThreshold))
		assert.Nil(t, next)
	})

	t.Run("empty session list", func(t *testing.T) {
		assert.Nil(t, DetermineNextSession(nil, completed(domain.WorkoutTypeVO2Max)))
	})
}

func TestDetermineNextSession_DuplicateTypeConsumesOnce(t *testing.T) {
	week := sessions(domain.SessionVO2Max, domain.SessionVO2Max, domain.SessionFun)

	// A single vo2max activity satisfies only the first vo2max session.
	next := DetermineNextSession(week, completed(domain.WorkoutTypeVO2Max))
	require.NotNil(t, next)
	assert.Equal(t, 2, next.Order)
	assert.Equal(t, domain.SessionVO2Max, next.SessionType)
}

func TestDetermineNextSession_UnknownTypesIgnored(t *testing.T) {
	week := sessions(domain.SessionVO2Max)

	next := DetermineNextSession(week, completed(domain.WorkoutTypeUnknown))
	require.NotNil(t, next)
	assert.Equal(t, 1, next.Order)
}
