package diet

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type planRepoMongo struct {
	coll *mongo.Collection
}

// NewPlanRepoMongo returns a MongoDB-backed diet plan repository.
func NewPlanRepoMongo(db *mongo.Database) Repository {
	return &planRepoMongo{coll: db.Collection("diet_plans")}
}

func (r *planRepoMongo) Insert(ctx context.Context, p *Plan) error {
	_, err := r.coll.InsertOne(ctx, p)
	return err
}

func (r *planRepoMongo) ListByPatient(ctx context.Context, patientID string, limit int64) ([]*Plan, error) {
	opts := options.Find().SetSort(bson.M{"timestamp": -1}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{"patient_id": patientID}, opts)
	if err != nil {
		return nil, err
	}
	var plans []*Plan
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}
