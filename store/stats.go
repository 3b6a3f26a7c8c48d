package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fitlyhq/fitly-backend/models"
)

// Stats stores per-user daily activity counters.
type Stats struct {
	coll *mongo.Collection
}

// NewStats returns a stats store over the "dailystats" collection.
func NewStats(db *mongo.Database) *Stats {
	return &Stats{coll: db.Collection("dailystats")}
}

// EnsureIndexes creates the unique (user, date) index backing upserts.
func (s *Stats) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create stats index: %w", err)
	}
	return nil
}

// Upsert writes the counters for one user/day, creating the document if absent.
func (s *Stats) Upsert(ctx context.Context, userID string, date time.Time, steps int, caloriesBurned float64) (models.DailyStats, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.DailyStats{}, ErrNotFound
	}

	now := time.Now()
	var stats models.DailyStats
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"user": oid, "date": date},
		bson.M{
			"$set":         bson.M{"steps": steps, "caloriesBurned": caloriesBurned, "updated_at": now},
			"$setOnInsert": bson.M{"created_at": now},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&stats)
	if err != nil {
		return models.DailyStats{}, fmt.Errorf("failed to upsert stats: %w", err)
	}
	return stats, nil
}

// RangeByUser returns the user's stats for the trailing N days, oldest first.
func (s *Stats) RangeByUser(ctx context.Context, userID string, days int) ([]models.DailyStats, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	if days <= 0 {
		days = 7
	}

	end := time.Now()
	start := end.AddDate(0, 0, -(days - 1))

	cur, err := s.coll.Find(ctx,
		bson.M{"user": oid, "date": bson.M{"$gte": start, "$lte": end}},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stats: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.DailyStats
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode stats: %w", err)
	}
	return out, nil
}

// All returns every stats document, newest first.
func (s *Stats) All(ctx context.Context) ([]models.DailyStats, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stats: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.DailyStats
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode stats: %w", err)
	}
	return out, nil
}
