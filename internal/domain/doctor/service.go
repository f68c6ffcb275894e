package doctor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/omnihealth/guardian/internal/domain/patient"
)

// PatientLister returns the patients assigned to a doctor. Satisfied by the
// patient repository.
type PatientLister interface {
	ListByDoctor(ctx context.Context, doctorID string, limit int64) ([]*patient.Patient, error)
}

// Service exposes doctor directory reads and the assigned-patient roster.
type Service struct {
	doctors  Repository
	patients PatientLister
}

// NewService wires the doctor service.
func NewService(doctors Repository, patients PatientLister) *Service {
	return &Service{doctors: doctors, patients: patients}
}

// Get returns one doctor by id.
func (s *Service) Get(ctx context.Context, id string) (*Doctor, error) {
	return s.doctors.Get(ctx, id)
}

// List returns up to limit doctors.
func (s *Service) List(ctx context.Context, limit int64) ([]*Doctor, error) {
	return s.doctors.List(ctx, limit)
}

// Count returns the number of doctors in the directory.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.doctors.Count(ctx)
}

// Patients returns the patients assigned to the given doctor. The doctor
// must exist.
func (s *Service) Patients(ctx context.Context, doctorID string, limit int64) ([]*patient.Patient, error) {
	if _, err := s.doctors.Get(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.patients.ListByDoctor(ctx, doctorID, limit)
}

// CreateMany inserts a batch of doctors, assigning ids where missing.
// Used by the seeder.
func (s *Service) CreateMany(ctx context.Context, ds []*Doctor) error {
	for _, d := range ds {
		if d.Name == "" {
			return fmt.Errorf("doctor name is required")
		}
		if d.Specialization == "" {
			return fmt.Errorf("doctor specialization is required")
		}
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		if d.PatientIDs == nil {
			d.PatientIDs = []string{}
		}
	}
	return s.doctors.InsertMany(ctx, ds)
}
