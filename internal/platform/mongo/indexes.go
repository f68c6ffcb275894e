package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes every query path depends on. Index
// creation is idempotent; Mongo ignores models that already exist.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	type spec struct {
		collection string
		models     []mongo.IndexModel
	}

	timeSeries := []mongo.IndexModel{
		{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "timestamp", Value: -1}}},
	}

	specs := []spec{
		{
			collection: CollUsers,
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			},
		},
		{collection: CollDeviceReadings, models: timeSeries},
		{collection: CollCriticalAlerts, models: timeSeries},
		{collection: CollDietPlans, models: timeSeries},
		{
			collection: CollAgentActivities,
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "timestamp", Value: -1}}},
			},
		},
		{
			collection: CollDailyProgress,
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "date", Value: -1}}},
			},
		},
		{
			collection: CollPatientWallets,
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "patient_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			},
		},
	}

	for _, s := range specs {
		if _, err := db.Collection(s.collection).Indexes().CreateMany(ctx, s.models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", s.collection, err)
		}
	}
	return nil
}
