package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionType is the planned intent of a weekly cycling session.
type SessionType string

const (
	SessionVO2Max    SessionType = "vo2max"
	SessionThreshold SessionType = "threshold"
	SessionEndurance SessionType = "endurance"
	SessionTempo     SessionType = "tempo"
	SessionFun       SessionType = "fun"
	SessionRecovery  SessionType = "recovery"
	SessionOff       SessionType = "off"
)

// WeeklySession is one planned session within a weekly plan. Sessions are
// created by the schedule generator at the start of the training week and are
// read-only afterward; Order is both identity and queue position.
type WeeklySession struct {
	Order                    int         `bson:"order" json:"order"`
	SessionType              SessionType `bson:"sessionType" json:"sessionType"`
	PelotonClassTypes        []string    `bson:"pelotonClassTypes,omitempty" json:"pelotonClassTypes,omitempty"`
	SuggestedDurationMinutes float64     `bson:"suggestedDurationMinutes" json:"suggestedDurationMinutes"`
	Description              string      `bson:"description,omitempty" json:"description,omitempty"`
}

// WeeklyPlan owns the ordered WeeklySessions for one Monday-to-Sunday week.
type WeeklyPlan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	WeekStart time.Time          `bson:"weekStart" json:"weekStart"` // Monday, UTC midnight
	Sessions  []WeeklySession    `bson:"sessions" json:"sessions"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
