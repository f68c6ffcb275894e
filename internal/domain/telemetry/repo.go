package telemetry

import (
	"context"
	"time"
)

// Repository is the persistence boundary for readings.
type Repository interface {
	Insert(ctx context.Context, r *Reading) error
	ListByPatient(ctx context.Context, patientID string, limit int64) ([]*Reading, error)
	ListSince(ctx context.Context, patientID string, since time.Time) ([]*Reading, error)
}
