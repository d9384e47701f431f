package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"alcyxob/wellness-coach/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type uploadRecorder struct {
	uploads map[string][]byte
	fail    bool
}

func newUploadRecorder() *uploadRecorder {
	return &uploadRecorder{uploads: make(map[string][]byte)}
}

func (s *uploadRecorder) Upload(_ context.Context, objectKey, _ string, body []byte) error {
	if s.fail {
		return errors.New("bucket unavailable")
	}
	s.uploads[objectKey] = body
	return nil
}

func (s *uploadRecorder) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://example.com/" + objectKey, nil
}

func (s *uploadRecorder) DeleteObject(_ context.Context, objectKey string) error {
	delete(s.uploads, objectKey)
	return nil
}

func newIngestFixture(t *testing.T, ftp int) (ActivityService, *fakeActivityRepo, *uploadRecorder, *coachFixture) {
	t.Helper()
	f := newCoachFixture(t)
	if ftp != 250 {
		u, err := f.users.GetByID(context.Background(), f.userID)
		require.NoError(t, err)
		u.FTPWatts = ftp
		require.NoError(t, f.users.Update(context.Background(), u))
	}
	store := newUploadRecorder()
	return NewActivityService(f.activities, f.users, store), f.activities, store, f
}

func rawRide() RawActivity {
	return RawActivity{
		ExternalID:       "ext-1",
		Name:             "Morning Ride",
		SportType:        "Ride",
		StartDate:        time.Date(2025, 2, 4, 7, 0, 0, 0, time.UTC),
		DurationSeconds:  3600,
		AvgPower:         240,
		WeightedAvgPower: 250,
		AvgHeartRate:     150,
		Payload:          []byte(`{"id":"ext-1"}`),
	}
}

func TestProcessActivity_DerivesMetrics(t *testing.T) {
	svc, repo, store, f := newIngestFixture(t, 250)

	activity, err := svc.ProcessActivity(context.Background(), f.userID, rawRide())
	require.NoError(t, err)

	assert.Equal(t, 100.0, activity.TSS)
	assert.Equal(t, 1.0, activity.IntensityFactor)
	assert.Equal(t, domain.WorkoutTypeThreshold, activity.WorkoutType)
	require.NotNil(t, activity.EfficiencyFactor)
	assert.InDelta(t, 1.67, *activity.EfficiencyFactor, 0.001)
	assert.Equal(t, 250.0, activity.NormalizedPower)

	require.NotEmpty(t, activity.RawArchiveKey)
	assert.Contains(t, store.uploads, activity.RawArchiveKey)
	assert.Len(t, repo.activities, 1)
}

func TestProcessActivity_IdempotentOnExternalID(t *testing.T) {
	svc, repo, _, f := newIngestFixture(t, 250)

	first, err := svc.ProcessActivity(context.Background(), f.userID, rawRide())
	require.NoError(t, err)
	second, err := svc.ProcessActivity(context.Background(), f.userID, rawRide())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.activities, 1)
}

func TestProcessActivity_NoFTPDegradesToZero(t *testing.T) {
	svc, repo, _, f := newIngestFixture(t, 0)

	activity, err := svc.ProcessActivity(context.Background(), f.userID, rawRide())
	require.NoError(t, err)

	// Stored anyway, just without intensity metrics.
	assert.Zero(t, activity.TSS)
	assert.Zero(t, activity.IntensityFactor)
	assert.Equal(t, domain.WorkoutTypeUnknown, activity.WorkoutType)
	assert.Len(t, repo.activities, 1)
}

func TestProcessActivity_ArchiveFailureIsNonFatal(t *testing.T) {
	svc, repo, store, f := newIngestFixture(t, 250)
	store.fail = true

	activity, err := svc.ProcessActivity(context.Background(), f.userID, rawRide())
	require.NoError(t, err)

	assert.Empty(t, activity.RawArchiveKey)
	assert.Len(t, repo.activities, 1)
}

func TestProcessActivity_UnknownUser(t *testing.T) {
	svc, _, _, _ := newIngestFixture(t, 250)
	raw := rawRide()
	raw.ExternalID = ""
	_, err := svc.ProcessActivity(context.Background(), primitive.NewObjectID(), raw)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestProcessActivity_FallsBackToAvgPower(t *testing.T) {
	svc, _, _, f := newIngestFixture(t, 250)
	raw := rawRide()
	raw.WeightedAvgPower = 0

	activity, err := svc.ProcessActivity(context.Background(), f.userID, raw)
	require.NoError(t, err)
	assert.Equal(t, 240.0, activity.NormalizedPower)
}

func TestComputeStreamSummary(t *testing.T) {
	svc, _, _, _ := newIngestFixture(t, 250)

	watts := make([]float64, 1500)
	times := make([]int, 1500)
	for i := range watts {
		watts[i] = 200
		times[i] = i
	}
	summary := svc.ComputeStreamSummary(RawActivity{
		WattsSeries: watts,
		TimeSeries:  times,
		HRSeries:    []float64{140, 0, 150, 145},
	})

	assert.Equal(t, 200, summary.PeakPower5Min)
	// 1500 samples cover 25 minutes, enough for the 20-minute window too.
	assert.Equal(t, 200, summary.PeakPower20Min)
	assert.Equal(t, 75, summary.HRCompleteness)
}
