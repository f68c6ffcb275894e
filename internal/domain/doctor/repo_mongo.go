package doctor

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type doctorRepoMongo struct {
	coll *mongo.Collection
}

// NewDoctorRepoMongo returns a MongoDB-backed doctor repository.
func NewDoctorRepoMongo(db *mongo.Database) Repository {
	return &doctorRepoMongo{coll: db.Collection("doctors")}
}

func (r *doctorRepoMongo) Insert(ctx context.Context, d *Doctor) error {
	_, err := r.coll.InsertOne(ctx, d)
	return err
}

func (r *doctorRepoMongo) InsertMany(ctx context.Context, ds []*Doctor) error {
	docs := make([]interface{}, len(ds))
	for i, d := range ds {
		docs[i] = d
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return err
}

func (r *doctorRepoMongo) Get(ctx context.Context, id string) (*Doctor, error) {
	var d Doctor
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *doctorRepoMongo) List(ctx context.Context, limit int64) ([]*Doctor, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	var ds []*Doctor
	if err := cursor.All(ctx, &ds); err != nil {
		return nil, err
	}
	return ds, nil
}

func (r *doctorRepoMongo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *doctorRepoMongo) CountByHospital(ctx context.Context, hospitalID string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"hospital_id": hospitalID})
}
