package user

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type userRepoMongo struct {
	coll *mongo.Collection
}

// NewUserRepoMongo returns a MongoDB-backed user repository.
func NewUserRepoMongo(db *mongo.Database) Repository {
	return &userRepoMongo{coll: db.Collection("users")}
}

func (r *userRepoMongo) Insert(ctx context.Context, u *User) error {
	_, err := r.coll.InsertOne(ctx, u)
	return err
}

func (r *userRepoMongo) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
