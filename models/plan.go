package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a single entry inside a weekly workout plan
type Exercise struct {
	Exercise string  `bson:"exercise" json:"exercise"`
	Sets     int     `bson:"sets" json:"sets"`
	Reps     int     `bson:"reps" json:"reps"`
	Weight   float64 `bson:"weight" json:"weight"`
}

// WorkoutPlan maps weekday names to exercise lists, plus plan metadata
type WorkoutPlan struct {
	ID             primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	User           primitive.ObjectID    `bson:"user" json:"user"`
	WeeklyPlan     map[string][]Exercise `bson:"weekly_plan" json:"weekly_plan"`
	Equipment      []string              `bson:"equipment" json:"equipment"`
	Recommendation string                `bson:"recommendation" json:"recommendation"`
	Diet           string                `bson:"diet" json:"diet"`
	CreatedAt      time.Time             `bson:"createdAt" json:"createdAt"`
}
