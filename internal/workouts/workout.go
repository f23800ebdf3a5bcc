package workouts

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CategoryStrength    = "Strength"
	CategoryCardio      = "Cardio"
	CategoryCore        = "Core"
	CategoryFlexibility = "Flexibility"

	IntensityLow    = "Low"
	IntensityMedium = "Medium"
	IntensityHigh   = "High"
)

// ValidCategories and ValidIntensities are the only accepted values for
// the two enumerated workout fields, in their canonical order.
var (
	ValidCategories  = []string{CategoryStrength, CategoryCardio, CategoryCore, CategoryFlexibility}
	ValidIntensities = []string{IntensityLow, IntensityMedium, IntensityHigh}
)

// Workout is one logged exercise session, the sole persisted entity.
// Load, Duration and Intensity are stored only when the caller supplied
// them; an absent Load means a bodyweight exercise.
type Workout struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Reps          int                `bson:"reps" json:"reps"`
	Sets          int                `bson:"sets" json:"sets"`
	Category      string             `bson:"category" json:"category"`
	Load          *float64           `bson:"load,omitempty" json:"load,omitempty"`
	Duration      *float64           `bson:"duration,omitempty" json:"duration,omitempty"`
	Intensity     string             `bson:"intensity,omitempty" json:"intensity,omitempty"`
	DatePerformed time.Time          `bson:"datePerformed" json:"datePerformed"`
	Notes         string             `bson:"notes" json:"notes"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ParseID turns a path identifier into an ObjectID. A syntactically
// invalid identifier is indistinguishable from a missing record for
// callers, so both surface as ErrWorkoutNotFound.
func ParseID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrWorkoutNotFound
	}
	return objectID, nil
}

func validCategory(category string) bool {
	for _, c := range ValidCategories {
		if category == c {
			return true
		}
	}
	return false
}

func validIntensity(intensity string) bool {
	for _, i := range ValidIntensities {
		if intensity == i {
			return true
		}
	}
	return false
}
