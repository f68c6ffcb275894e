package activity

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type activityRepoMongo struct{ coll *mongo.Collection }

func NewActivityRepoMongo(db *mongo.Database) Repository {
	return &activityRepoMongo{coll: db.Collection("agent_activities")}
}

func (r *activityRepoMongo) Insert(ctx context.Context, a *Activity) error {
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *activityRepoMongo) List(ctx context.Context, limit int64) ([]*Activity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(limit)
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	var items []*Activity
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}
	return items, nil
}

func (r *activityRepoMongo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *activityRepoMongo) CountByType(ctx context.Context, activityType string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"activity_type": activityType})
}
