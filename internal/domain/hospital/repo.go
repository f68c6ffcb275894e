package hospital

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no hospital matches the given id.
var ErrNotFound = errors.New("hospital not found")

// Repository is the persistence boundary for hospitals.
type Repository interface {
	Insert(ctx context.Context, h *Hospital) error
	InsertMany(ctx context.Context, hs []*Hospital) error
	Get(ctx context.Context, id string) (*Hospital, error)
	List(ctx context.Context, limit int64) ([]*Hospital, error)
	First(ctx context.Context) (*Hospital, error)
	Count(ctx context.Context) (int64, error)
}
