package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Rating aggregate defaults for a tour with no reviews. Both values reset
// to zero together when the last review disappears.
const (
	DefaultRatingsAverage  = 0
	DefaultRatingsQuantity = 0
)

type Tour struct {
	ID              bson.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name            string        `json:"name" bson:"name" validate:"required"`
	Duration        int           `json:"duration" bson:"duration" validate:"required,min=1"`
	MaxGroupSize    int           `json:"maxGroupSize" bson:"maxGroupSize" validate:"omitempty,min=1"`
	Difficulty      string        `json:"difficulty" bson:"difficulty" validate:"omitempty,oneof=easy medium difficult"`
	Price           float64       `json:"price" bson:"price" validate:"required,gt=0"`
	Summary         string        `json:"summary" bson:"summary"`
	Description     string        `json:"description,omitempty" bson:"description,omitempty"`
	ImageCover      string        `json:"imageCover,omitempty" bson:"imageCover,omitempty"`
	RatingsAverage  float64       `json:"ratingsAverage" bson:"ratingsAverage" validate:"omitempty,min=0,max=5"`
	RatingsQuantity int           `json:"ratingsQuantity" bson:"ratingsQuantity"`
	StartDates      []time.Time   `json:"startDates,omitempty" bson:"startDates,omitempty"`
	CreatedAt       time.Time     `json:"createdAt" bson:"createdAt"`

	// Reviews carries the related documents on single-tour reads; it is
	// filled by a $lookup, never stored on the tour itself.
	Reviews []Review `json:"reviews,omitempty" bson:"reviews,omitempty"`
}
