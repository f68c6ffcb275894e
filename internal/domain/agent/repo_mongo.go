package agent

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

type progressRepoMongo struct {
	coll *mongo.Collection
}

// NewProgressRepoMongo returns a MongoDB-backed progress repository.
func NewProgressRepoMongo(db *mongo.Database) ProgressRepository {
	return &progressRepoMongo{coll: db.Collection("daily_progress")}
}

func (r *progressRepoMongo) Insert(ctx context.Context, p *Progress) error {
	_, err := r.coll.InsertOne(ctx, p)
	return err
}
