package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MesocycleWeeks is the fixed length of a training block. Week 7 is the peak
// week, week 8 the recovery/deload week.
const MesocycleWeeks = 8

// Mesocycle is a multi-week lifting block. The week number is always derived
// from StartDate (see trainingload.WeekInBlock), never stored, so it cannot
// desync.
type Mesocycle struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	StartDate time.Time          `bson:"startDate" json:"startDate"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
