package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a reference entry in the exercise library. WeightIncrement is
// the progression step size used when computing weekly target weights.
type Exercise struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	WeightIncrement float64            `bson:"weightIncrement" json:"weightIncrement"`
	IsCustom        bool               `bson:"isCustom" json:"isCustom"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
