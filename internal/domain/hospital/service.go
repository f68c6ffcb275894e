package hospital

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// PatientCounter reports how many patients belong to a hospital.
type PatientCounter interface {
	CountByHospital(ctx context.Context, hospitalID string) (int64, error)
}

// DoctorCounter reports how many doctors belong to a hospital.
type DoctorCounter interface {
	CountByHospital(ctx context.Context, hospitalID string) (int64, error)
}

// AlertCounter reports the network-wide alert total.
type AlertCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Service exposes hospital directory reads, per-hospital stats, and the
// nearest-hospital lookup for emergency routing.
type Service struct {
	hospitals Repository
	patients  PatientCounter
	doctors   DoctorCounter
	alerts    AlertCounter

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService wires the hospital service. The counters may come from other
// domains' repositories.
func NewService(hospitals Repository, patients PatientCounter, doctors DoctorCounter, alerts AlertCounter) *Service {
	return &Service{
		hospitals: hospitals,
		patients:  patients,
		doctors:   doctors,
		alerts:    alerts,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Get returns one hospital by id.
func (s *Service) Get(ctx context.Context, id string) (*Hospital, error) {
	return s.hospitals.Get(ctx, id)
}

// List returns up to limit hospitals.
func (s *Service) List(ctx context.Context, limit int64) ([]*Hospital, error) {
	return s.hospitals.List(ctx, limit)
}

// Count returns the number of hospitals in the directory.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.hospitals.Count(ctx)
}

// CreateMany inserts a batch of hospitals, assigning ids where missing.
// Used by the seeder.
func (s *Service) CreateMany(ctx context.Context, hs []*Hospital) error {
	for _, h := range hs {
		if h.Name == "" {
			return fmt.Errorf("hospital name is required")
		}
		if h.ID == "" {
			h.ID = uuid.NewString()
		}
	}
	return s.hospitals.InsertMany(ctx, hs)
}

// Stats assembles the per-hospital summary. Unknown ids still produce a
// summary with zero counts; the device and health figures are synthetic.
func (s *Service) Stats(ctx context.Context, hospitalID string) (*Stats, error) {
	patients, err := s.patients.CountByHospital(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("count patients: %w", err)
	}
	doctors, err := s.doctors.CountByHospital(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("count doctors: %w", err)
	}
	alerts, err := s.alerts.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count alerts: %w", err)
	}
	return &Stats{
		HospitalID:    hospitalID,
		TotalPatients: patients,
		TotalDoctors:  doctors,
		TotalAlerts:   alerts,
		ActiveDevices: s.randInt(20, 100),
		SystemHealth:  s.randFloat(95.0, 99.9),
	}, nil
}

// Nearest resolves the hospital a critical alert should route to. The
// patient's own hospital wins when set; otherwise any hospital serves.
// Returns nil when the directory is empty. Distance is synthetic.
func (s *Service) Nearest(ctx context.Context, hospitalID string) (*NearestHospital, error) {
	var h *Hospital
	if hospitalID != "" {
		found, err := s.hospitals.Get(ctx, hospitalID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		h = found
	}
	if h == nil {
		found, err := s.hospitals.First(ctx)
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		h = found
	}
	return &NearestHospital{
		ID:       h.ID,
		Name:     h.Name,
		Address:  h.Address,
		Distance: fmt.Sprintf("%.1f miles", s.randFloat(0.5, 5.0)),
	}, nil
}

func (s *Service) randInt(min, max int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.Intn(max-min+1)
}

func (s *Service) randFloat(min, max float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.Float64()*(max-min)
}
