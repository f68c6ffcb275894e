package diet

import "context"

// Repository is the persistence boundary for diet plans.
type Repository interface {
	Insert(ctx context.Context, p *Plan) error
	ListByPatient(ctx context.Context, patientID string, limit int64) ([]*Plan, error)
}
