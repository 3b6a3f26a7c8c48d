package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fitlyhq/fitly-backend/models"
)

// Plans stores generated weekly workout plans.
type Plans struct {
	coll *mongo.Collection
}

// NewPlans returns a plan store over the "workoutplans" collection.
func NewPlans(db *mongo.Database) *Plans {
	return &Plans{coll: db.Collection("workoutplans")}
}

// Save inserts a new plan for the user.
func (s *Plans) Save(ctx context.Context, plan models.WorkoutPlan) (models.WorkoutPlan, error) {
	plan.CreatedAt = time.Now()

	res, err := s.coll.InsertOne(ctx, plan)
	if err != nil {
		return models.WorkoutPlan{}, fmt.Errorf("failed to save plan: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		plan.ID = oid
	}
	return plan, nil
}

// FindByUser returns the user's plan, or ErrNotFound.
func (s *Plans) FindByUser(ctx context.Context, userID string) (models.WorkoutPlan, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.WorkoutPlan{}, ErrNotFound
	}

	var plan models.WorkoutPlan
	err = s.coll.FindOne(ctx, bson.M{"user": oid}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.WorkoutPlan{}, ErrNotFound
		}
		return models.WorkoutPlan{}, fmt.Errorf("failed to fetch plan: %w", err)
	}
	return plan, nil
}
