package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fitlyhq/fitly-backend/models"
)

// Vitals stores readings relayed from the IoT bracelet.
type Vitals struct {
	coll *mongo.Collection
}

// NewVitals returns a vitals store. The collection name carries over from the
// bracelet firmware and cannot change without a device update.
func NewVitals(db *mongo.Database) *Vitals {
	return &Vitals{coll: db.Collection("Braclet-iot")}
}

// Insert appends one reading. A zero timestamp defaults to now.
func (s *Vitals) Insert(ctx context.Context, v models.Vitals) (models.Vitals, error) {
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now()
	}

	res, err := s.coll.InsertOne(ctx, v)
	if err != nil {
		return models.Vitals{}, fmt.Errorf("failed to insert vitals: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		v.ID = oid
	}
	return v, nil
}
