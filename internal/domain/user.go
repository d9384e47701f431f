package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an athlete account. The app is self-coached: there is no
// trainer role, the "coach" is the recommendation engine.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON

	// Athlete profile, consumed by the metrics library.
	FTPWatts int     `bson:"ftpWatts,omitempty" json:"ftpWatts,omitempty"` // Functional Threshold Power
	WeightKg float64 `bson:"weightKg,omitempty" json:"weightKg,omitempty"` // Body weight, for VO2max estimates
	MaxHR    int     `bson:"maxHr,omitempty" json:"maxHr,omitempty"`
	RestHR   int     `bson:"restHr,omitempty" json:"restHr,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HasPowerProfile reports whether the athlete has enough profile data for
// intensity-based metrics.
func (u *User) HasPowerProfile() bool {
	return u.FTPWatts > 0
}
