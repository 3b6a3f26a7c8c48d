package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered user
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	Password     string             `bson:"password" json:"-"` // Password hash is not returned in JSON
	FullName     string             `bson:"fullName" json:"fullName"`
	Gender       string             `bson:"gender" json:"gender"`
	Age          *int               `bson:"age" json:"age"`
	Height       *float64           `bson:"height" json:"height"`
	Weight       *float64           `bson:"weight" json:"weight"`
	Birthday     string             `bson:"birthday,omitempty" json:"birthday,omitempty"`
	ProfileImage string             `bson:"profileImage" json:"profileImage"` // object key only, never a URL
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// ProfileUpdate carries the mutable profile fields for a partial update.
// Nil fields are left untouched.
type ProfileUpdate struct {
	FullName     *string
	Gender       *string
	Age          *int
	Height       *float64
	Weight       *float64
	Birthday     *string
	ProfileImage *string
}
