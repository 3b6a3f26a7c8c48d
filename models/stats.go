package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DailyStats holds one user's activity counters for a single day
type DailyStats struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User           primitive.ObjectID `bson:"user" json:"user"`
	Date           time.Time          `bson:"date" json:"date"`
	Steps          int                `bson:"steps" json:"steps"`
	CaloriesBurned float64            `bson:"caloriesBurned" json:"caloriesBurned"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}
