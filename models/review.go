package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Review belongs to exactly one tour and one user; a unique compound
// index on (tour, user) keeps the pair unique.
type Review struct {
	ID        bson.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Review    string        `json:"review" bson:"review" validate:"required"`
	Rating    float64       `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
	Tour      bson.ObjectID `json:"tour" bson:"tour" validate:"required"`
	User      bson.ObjectID `json:"user" bson:"user" validate:"required"`
}
