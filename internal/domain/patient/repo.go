package patient

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no patient matches the lookup.
var ErrNotFound = errors.New("patient not found")

type Repository interface {
	Insert(ctx context.Context, p *Patient) error
	InsertMany(ctx context.Context, patients []*Patient) error
	Get(ctx context.Context, id string) (*Patient, error)
	List(ctx context.Context, limit int64) ([]*Patient, error)
	ListByDoctor(ctx context.Context, doctorID string, limit int64) ([]*Patient, error)
	First(ctx context.Context) (*Patient, error)
	Count(ctx context.Context) (int64, error)
	CountByHospital(ctx context.Context, hospitalID string) (int64, error)
}
