package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/wellness-coach/internal/domain"
	"alcyxob/wellness-coach/internal/metrics"
	"alcyxob/wellness-coach/internal/repository"
	"alcyxob/wellness-coach/internal/storage"
	"alcyxob/wellness-coach/internal/trainingload"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RawActivity is the transport-agnostic record supplied by the activity
// source (Strava webhook, manual import, etc.). Numeric fields may be zero
// when the source has no sensor data; processing degrades gracefully.
type RawActivity struct {
	ExternalID       string    `json:"externalId"`
	Name             string    `json:"name"`
	SportType        string    `json:"sportType"`
	StartDate        time.Time `json:"startDate"`
	DurationSeconds  int       `json:"durationSeconds"`
	AvgPower         float64   `json:"avgPower"`
	WeightedAvgPower float64   `json:"weightedAvgPower"`
	AvgHeartRate     float64   `json:"avgHeartRate"`

	WattsSeries []float64 `json:"wattsSeries,omitempty"`
	TimeSeries  []int     `json:"timeSeries,omitempty"`
	HRSeries    []float64 `json:"hrSeries,omitempty"`

	// Payload is the source's raw JSON, archived as-is for reprocessing.
	Payload []byte `json:"-"`
}

// StreamSummary carries the stream-derived numbers of a single activity.
type StreamSummary struct {
	PeakPower5Min  int `json:"peakPower5Min"`
	PeakPower20Min int `json:"peakPower20Min"`
	HRCompleteness int `json:"hrCompleteness"`
}

// --- Service Interface ---
type ActivityService interface {
	ProcessActivity(ctx context.Context, userID primitive.ObjectID, raw RawActivity) (*domain.Activity, error)
	GetActivities(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.Activity, error)
	GetTrainingLoad(ctx context.Context, userID primitive.ObjectID, lookbackDays int) (trainingload.TrainingLoad, error)
	ComputeStreamSummary(raw RawActivity) StreamSummary
}

// --- Service Implementation ---

// activityService implements the ActivityService interface.
type activityService struct {
	activityRepo repository.ActivityRepository
	userRepo     repository.UserRepository
	fileStorage  storage.FileStorage
}

// NewActivityService creates a new instance of activityService. fileStorage
// may be nil, in which case raw payload archiving is skipped.
func NewActivityService(activityRepo repository.ActivityRepository, userRepo repository.UserRepository, fileStorage storage.FileStorage) ActivityService {
	return &activityService{
		activityRepo: activityRepo,
		userRepo:     userRepo,
		fileStorage:  fileStorage,
	}
}

// ProcessActivity derives the training metrics for a raw activity record and
// persists it. Ingestion is idempotent on the source's external ID. This is
// the lenient metrics path: an athlete without an FTP on file still gets the
// activity stored, just with zeroed intensity metrics.
func (s *activityService) ProcessActivity(ctx context.Context, userID primitive.ObjectID, raw RawActivity) (*domain.Activity, error) {
	if raw.ExternalID != "" {
		existing, err := s.activityRepo.GetByExternalID(ctx, userID, raw.ExternalID)
		if err == nil {
			return existing, nil // already ingested
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	np := raw.WeightedAvgPower
	if np <= 0 {
		np = raw.AvgPower
	}
	ftp := float64(user.FTPWatts)

	intensity := metrics.IntensityFactorForActivity(np, ftp)
	activity := &domain.Activity{
		UserID:           userID,
		ExternalID:       raw.ExternalID,
		Name:             raw.Name,
		SportType:        raw.SportType,
		StartDate:        raw.StartDate,
		DurationSeconds:  raw.DurationSeconds,
		AvgPower:         raw.AvgPower,
		NormalizedPower:  np,
		AvgHeartRate:     raw.AvgHeartRate,
		TSS:              metrics.TSSForActivity(raw.DurationSeconds, np, ftp),
		IntensityFactor:  intensity,
		EfficiencyFactor: metrics.CalculateEF(np, raw.AvgHeartRate),
		WorkoutType:      metrics.ClassifyWorkoutType(intensity),
	}

	if s.fileStorage != nil && len(raw.Payload) > 0 {
		key := fmt.Sprintf("activities/%s/%s.json", userID.Hex(), uuid.NewString())
		// Archiving is best effort; a storage outage must not block ingest.
		if err := s.fileStorage.Upload(ctx, key, "application/json", raw.Payload); err == nil {
			activity.RawArchiveKey = key
		}
	}

	activityID, err := s.activityRepo.Create(ctx, activity)
	if err != nil {
		return nil, err
	}
	activity.ID = activityID
	return activity, nil
}

// GetActivities returns the athlete's activities within [from, to].
func (s *activityService) GetActivities(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.Activity, error) {
	return s.activityRepo.GetByUserAndDateRange(ctx, userID, from, to)
}

// GetTrainingLoad computes ATL/CTL/TSB over the trailing lookback window.
func (s *activityService) GetTrainingLoad(ctx context.Context, userID primitive.ObjectID, lookbackDays int) (trainingload.TrainingLoad, error) {
	if lookbackDays <= 0 {
		lookbackDays = trainingload.DefaultLookbackDays
	}
	now := time.Now().UTC()
	activities, err := s.activityRepo.GetByUserAndDateRange(ctx, userID, now.AddDate(0, 0, -lookbackDays), now)
	if err != nil {
		return trainingload.TrainingLoad{}, err
	}
	return trainingload.Metrics(activities, lookbackDays), nil
}

// ComputeStreamSummary derives peak powers and heart-rate completeness from
// an activity's raw streams.
func (s *activityService) ComputeStreamSummary(raw RawActivity) StreamSummary {
	return StreamSummary{
		PeakPower5Min:  metrics.CalculatePeakPower(raw.WattsSeries, raw.TimeSeries, 5*60),
		PeakPower20Min: metrics.CalculatePeakPower(raw.WattsSeries, raw.TimeSeries, 20*60),
		HRCompleteness: metrics.CalculateHRCompleteness(raw.HRSeries),
	}
}
