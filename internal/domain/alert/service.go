package alert

import "context"

// recentFeedSize is the page size of the recent-alerts ticker.
const recentFeedSize = 10

// Service serves the alert feeds.
type Service struct {
	alerts Repository
}

// NewService wires the alert read side.
func NewService(alerts Repository) *Service {
	return &Service{alerts: alerts}
}

// List returns up to limit alerts, newest first.
func (s *Service) List(ctx context.Context, limit int64) ([]*Alert, error) {
	return s.alerts.List(ctx, limit)
}

// Recent returns the newest alerts for the dashboard ticker.
func (s *Service) Recent(ctx context.Context) ([]*Alert, error) {
	return s.alerts.List(ctx, recentFeedSize)
}

// ListByPatient returns a patient's alerts, newest first.
func (s *Service) ListByPatient(ctx context.Context, patientID string, limit int64) ([]*Alert, error) {
	return s.alerts.ListByPatient(ctx, patientID, limit)
}

// Count returns the network-wide alert total.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.alerts.Count(ctx)
}
