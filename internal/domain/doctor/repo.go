package doctor

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no doctor matches the given id.
var ErrNotFound = errors.New("doctor not found")

// Repository is the persistence boundary for doctors.
type Repository interface {
	Insert(ctx context.Context, d *Doctor) error
	InsertMany(ctx context.Context, ds []*Doctor) error
	Get(ctx context.Context, id string) (*Doctor, error)
	List(ctx context.Context, limit int64) ([]*Doctor, error)
	Count(ctx context.Context) (int64, error)
	CountByHospital(ctx context.Context, hospitalID string) (int64, error)
}
