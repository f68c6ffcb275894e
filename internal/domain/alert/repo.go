package alert

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no alert matches the given id.
var ErrNotFound = errors.New("alert not found")

// Repository is the persistence boundary for alerts.
type Repository interface {
	Insert(ctx context.Context, a *Alert) error
	Get(ctx context.Context, id string) (*Alert, error)
	List(ctx context.Context, limit int64) ([]*Alert, error)
	ListByPatient(ctx context.Context, patientID string, limit int64) ([]*Alert, error)
	ListByPatients(ctx context.Context, patientIDs []string, limit int64) ([]*Alert, error)
	ListSince(ctx context.Context, patientID string, since time.Time) ([]*Alert, error)
	Count(ctx context.Context) (int64, error)
}
