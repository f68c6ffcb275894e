package patient

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type patientRepoMongo struct{ coll *mongo.Collection }

func NewPatientRepoMongo(db *mongo.Database) Repository {
	return &patientRepoMongo{coll: db.Collection("patients")}
}

func (r *patientRepoMongo) Insert(ctx context.Context, p *Patient) error {
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}

func (r *patientRepoMongo) InsertMany(ctx context.Context, patients []*Patient) error {
	docs := make([]interface{}, len(patients))
	for i, p := range patients {
		docs[i] = p
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert patients: %w", err)
	}
	return nil
}

func (r *patientRepoMongo) Get(ctx context.Context, id string) (*Patient, error) {
	var p Patient
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return &p, nil
}

func (r *patientRepoMongo) List(ctx context.Context, limit int64) ([]*Patient, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	var items []*Patient
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode patients: %w", err)
	}
	return items, nil
}

func (r *patientRepoMongo) ListByDoctor(ctx context.Context, doctorID string, limit int64) ([]*Patient, error) {
	cur, err := r.coll.Find(ctx, bson.M{"assigned_doctor_id": doctorID}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list patients by doctor: %w", err)
	}
	var items []*Patient
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode patients: %w", err)
	}
	return items, nil
}

func (r *patientRepoMongo) First(ctx context.Context) (*Patient, error) {
	var p Patient
	err := r.coll.FindOne(ctx, bson.M{}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("first patient: %w", err)
	}
	return &p, nil
}

func (r *patientRepoMongo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *patientRepoMongo) CountByHospital(ctx context.Context, hospitalID string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"hospital_id": hospitalID})
}
