package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vitals is one reading relayed from the IoT bracelet
type Vitals struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Temperature float64            `bson:"temperature" json:"temperature"`
	BPM         float64            `bson:"bpm" json:"bpm"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
}
