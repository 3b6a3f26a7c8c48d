package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fitlyhq/fitly-backend/models"
)

// Predictions persists results returned by the external ML services.
type Predictions struct {
	bp       *mongo.Collection
	diabetes *mongo.Collection
}

// NewPredictions returns a prediction store.
func NewPredictions(db *mongo.Database) *Predictions {
	return &Predictions{
		bp:       db.Collection("bloodpressurepredictions"),
		diabetes: db.Collection("diabetespredictions"),
	}
}

// SaveBloodPressure inserts one blood pressure prediction.
func (s *Predictions) SaveBloodPressure(ctx context.Context, p models.BloodPressurePrediction) (models.BloodPressurePrediction, error) {
	p.CreatedAt = time.Now()

	res, err := s.bp.InsertOne(ctx, p)
	if err != nil {
		return models.BloodPressurePrediction{}, fmt.Errorf("failed to save blood pressure prediction: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return p, nil
}

// SaveDiabetes inserts one diabetes prediction.
func (s *Predictions) SaveDiabetes(ctx context.Context, p models.DiabetesPrediction) (models.DiabetesPrediction, error) {
	p.CreatedAt = time.Now()

	res, err := s.diabetes.InsertOne(ctx, p)
	if err != nil {
		return models.DiabetesPrediction{}, fmt.Errorf("failed to save diabetes prediction: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return p, nil
}
