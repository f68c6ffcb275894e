package hospital

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type hospitalRepoMongo struct {
	coll *mongo.Collection
}

// NewHospitalRepoMongo returns a MongoDB-backed hospital repository.
func NewHospitalRepoMongo(db *mongo.Database) Repository {
	return &hospitalRepoMongo{coll: db.Collection("hospitals")}
}

func (r *hospitalRepoMongo) Insert(ctx context.Context, h *Hospital) error {
	_, err := r.coll.InsertOne(ctx, h)
	return err
}

func (r *hospitalRepoMongo) InsertMany(ctx context.Context, hs []*Hospital) error {
	docs := make([]interface{}, len(hs))
	for i, h := range hs {
		docs[i] = h
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return err
}

func (r *hospitalRepoMongo) Get(ctx context.Context, id string) (*Hospital, error) {
	var h Hospital
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&h)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *hospitalRepoMongo) List(ctx context.Context, limit int64) ([]*Hospital, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	var hs []*Hospital
	if err := cursor.All(ctx, &hs); err != nil {
		return nil, err
	}
	return hs, nil
}

func (r *hospitalRepoMongo) First(ctx context.Context) (*Hospital, error) {
	var h Hospital
	err := r.coll.FindOne(ctx, bson.M{}).Decode(&h)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *hospitalRepoMongo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
