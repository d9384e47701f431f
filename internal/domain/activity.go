package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutType classifies a cycling activity by its intensity factor.
type WorkoutType string

const (
	WorkoutTypeVO2Max    WorkoutType = "vo2max"
	WorkoutTypeThreshold WorkoutType = "threshold"
	WorkoutTypeFun       WorkoutType = "fun"
	WorkoutTypeRecovery  WorkoutType = "recovery"
	WorkoutTypeUnknown   WorkoutType = "unknown"
)

// Activity is a processed cycling activity. The raw record comes from the
// activity source (Strava); the derived fields (TSS, IF, workout type) are
// computed on ingest by the metrics library.
type Activity struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	ExternalID string             `bson:"externalId,omitempty" json:"externalId,omitempty"` // Source's activity ID, for dedup
	Name       string             `bson:"name" json:"name"`
	SportType  string             `bson:"sportType" json:"sportType"` // Raw type string from the source

	StartDate       time.Time `bson:"startDate" json:"startDate"`
	DurationSeconds int       `bson:"durationSeconds" json:"durationSeconds"`
	AvgPower        float64   `bson:"avgPower,omitempty" json:"avgPower,omitempty"`
	NormalizedPower float64   `bson:"normalizedPower,omitempty" json:"normalizedPower,omitempty"`
	AvgHeartRate    float64   `bson:"avgHeartRate,omitempty" json:"avgHeartRate,omitempty"`

	// Derived on ingest.
	TSS             float64     `bson:"tss" json:"tss"`
	IntensityFactor float64     `bson:"intensityFactor" json:"intensityFactor"`
	EfficiencyFactor *float64   `bson:"efficiencyFactor,omitempty" json:"efficiencyFactor,omitempty"`
	WorkoutType     WorkoutType `bson:"workoutType" json:"workoutType"`

	// Object key of the archived raw payload in S3, if archiving succeeded.
	RawArchiveKey string `bson:"rawArchiveKey,omitempty" json:"rawArchiveKey,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DailyTSS is a single day in a contiguous daily training stress series.
// Date carries no time-of-day component (UTC midnight).
type DailyTSS struct {
	Date time.Time `json:"date"`
	TSS  float64   `json:"tss"`
}
