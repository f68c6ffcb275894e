package telemetry

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type readingRepoMongo struct {
	coll *mongo.Collection
}

// NewReadingRepoMongo returns a MongoDB-backed reading repository.
func NewReadingRepoMongo(db *mongo.Database) Repository {
	return &readingRepoMongo{coll: db.Collection("device_readings")}
}

func (r *readingRepoMongo) Insert(ctx context.Context, reading *Reading) error {
	_, err := r.coll.InsertOne(ctx, reading)
	return err
}

func (r *readingRepoMongo) ListByPatient(ctx context.Context, patientID string, limit int64) ([]*Reading, error) {
	opts := options.Find().SetSort(bson.M{"timestamp": -1}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{"patient_id": patientID}, opts)
	if err != nil {
		return nil, err
	}
	var readings []*Reading
	if err := cursor.All(ctx, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *readingRepoMongo) ListSince(ctx context.Context, patientID string, since time.Time) ([]*Reading, error) {
	filter := bson.M{
		"patient_id": patientID,
		"timestamp":  bson.M{"$gte": since},
	}
	opts := options.Find().SetSort(bson.M{"timestamp": -1})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var readings []*Reading
	if err := cursor.All(ctx, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}
