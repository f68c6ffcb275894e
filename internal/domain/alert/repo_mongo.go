package alert

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type alertRepoMongo struct {
	coll *mongo.Collection
}

// NewAlertRepoMongo returns a MongoDB-backed alert repository.
func NewAlertRepoMongo(db *mongo.Database) Repository {
	return &alertRepoMongo{coll: db.Collection("critical_alerts")}
}

func (r *alertRepoMongo) Insert(ctx context.Context, a *Alert) error {
	_, err := r.coll.InsertOne(ctx, a)
	return err
}

func (r *alertRepoMongo) Get(ctx context.Context, id string) (*Alert, error) {
	var a Alert
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *alertRepoMongo) List(ctx context.Context, limit int64) ([]*Alert, error) {
	return r.find(ctx, bson.M{}, limit)
}

func (r *alertRepoMongo) ListByPatient(ctx context.Context, patientID string, limit int64) ([]*Alert, error) {
	return r.find(ctx, bson.M{"patient_id": patientID}, limit)
}

func (r *alertRepoMongo) ListByPatients(ctx context.Context, patientIDs []string, limit int64) ([]*Alert, error) {
	return r.find(ctx, bson.M{"patient_id": bson.M{"$in": patientIDs}}, limit)
}

func (r *alertRepoMongo) ListSince(ctx context.Context, patientID string, since time.Time) ([]*Alert, error) {
	filter := bson.M{"patient_id": patientID, "timestamp": bson.M{"$gte": since}}
	return r.find(ctx, filter, 0)
}

func (r *alertRepoMongo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *alertRepoMongo) find(ctx context.Context, filter bson.M, limit int64) ([]*Alert, error) {
	opts := options.Find().SetSort(bson.M{"timestamp": -1}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var alerts []*Alert
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}
