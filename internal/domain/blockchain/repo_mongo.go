package blockchain

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type walletRepoMongo struct {
	coll *mongo.Collection
}

// NewWalletRepoMongo returns a MongoDB-backed wallet repository.
func NewWalletRepoMongo(db *mongo.Database) WalletRepository {
	return &walletRepoMongo{coll: db.Collection("patient_wallets")}
}

func (r *walletRepoMongo) Insert(ctx context.Context, w *Wallet) error {
	_, err := r.coll.InsertOne(ctx, w)
	return err
}

func (r *walletRepoMongo) FindByPatient(ctx context.Context, patientID string) (*Wallet, error) {
	var w Wallet
	err := r.coll.FindOne(ctx, bson.M{"patient_id": patientID}).Decode(&w)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrWalletNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}
