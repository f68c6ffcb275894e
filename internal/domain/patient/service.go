package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var validConditions = map[string]bool{
	ConditionDiabetesType1: true,
	ConditionDiabetesType2: true,
	ConditionHeart:         true,
}

var validDevices = map[string]bool{
	DeviceInsulinPump:    true,
	DevicePacemaker:      true,
	DeviceGlucoseMonitor: true,
}

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if err := validate(p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return s.patients.Insert(ctx, p)
}

// CreateMany validates and inserts a batch, used by the seeder.
func (s *Service) CreateMany(ctx context.Context, patients []*Patient) error {
	for _, p := range patients {
		if err := validate(p); err != nil {
			return err
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
	}
	return s.patients.InsertMany(ctx, patients)
}

func (s *Service) Get(ctx context.Context, id string) (*Patient, error) {
	return s.patients.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, limit int64) ([]*Patient, error) {
	return s.patients.List(ctx, limit)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.patients.Count(ctx)
}

func validate(p *Patient) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !validConditions[p.Condition] {
		return fmt.Errorf("invalid condition: %s", p.Condition)
	}
	if !validDevices[p.DeviceType] {
		return fmt.Errorf("invalid device_type: %s", p.DeviceType)
	}
	return nil
}
