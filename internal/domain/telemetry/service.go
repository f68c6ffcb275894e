package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/omnihealth/guardian/internal/domain/patient"
)

// ErrNoPatients is returned when a reading is requested but no patient can
// be resolved.
var ErrNoPatients = errors.New("no patients found")

// PatientDirectory is the slice of the patient repository telemetry needs.
type PatientDirectory interface {
	Get(ctx context.Context, id string) (*patient.Patient, error)
	List(ctx context.Context, limit int64) ([]*patient.Patient, error)
	First(ctx context.Context) (*patient.Patient, error)
}

// Simulator produces readings for a patient.
type Simulator interface {
	Simulate(p *patient.Patient) *Reading
}

// AlertProcessor handles a critical reading. Satisfied by the alert
// processor; nil disables processing.
type AlertProcessor interface {
	Process(ctx context.Context, p *patient.Patient, r *Reading) error
}

// Service generates, persists, and serves device readings.
type Service struct {
	readings  Repository
	patients  PatientDirectory
	gen       Simulator
	processor AlertProcessor
}

// NewService wires the telemetry service. processor may be nil when alert
// handling is disabled.
func NewService(readings Repository, patients PatientDirectory, gen Simulator, processor AlertProcessor) *Service {
	return &Service{readings: readings, patients: patients, gen: gen, processor: processor}
}

// Live produces one fresh reading per patient, augmented with patient
// context. Nothing is persisted.
func (s *Service) Live(ctx context.Context) ([]*LiveReading, error) {
	patients, err := s.patients.List(ctx, 100)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	readings := make([]*LiveReading, 0, len(patients))
	for _, p := range patients {
		readings = append(readings, &LiveReading{
			Reading:     *s.gen.Simulate(p),
			PatientName: p.Name,
			Condition:   p.Condition,
		})
	}
	return readings, nil
}

// Capture generates and persists one reading. An empty patientID targets
// the first patient on file. Critical readings run alert processing; a
// processing failure is logged, never surfaced, so the reading is always
// returned once stored.
func (s *Service) Capture(ctx context.Context, patientID string) (*Reading, error) {
	p, err := s.resolvePatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	r := s.gen.Simulate(p)
	if err := s.readings.Insert(ctx, r); err != nil {
		return nil, fmt.Errorf("store reading: %w", err)
	}

	if r.IsCritical && s.processor != nil {
		if err := s.processor.Process(ctx, p, r); err != nil {
			log.Error().Err(err).
				Str("patient_id", p.ID).
				Str("reading_id", r.ID).
				Msg("critical alert processing failed")
		}
	}
	return r, nil
}

// History returns the stored readings for a patient, newest first.
func (s *Service) History(ctx context.Context, patientID string, limit int64) ([]*Reading, error) {
	return s.readings.ListByPatient(ctx, patientID, limit)
}

func (s *Service) resolvePatient(ctx context.Context, patientID string) (*patient.Patient, error) {
	if patientID != "" {
		p, err := s.patients.Get(ctx, patientID)
		if errors.Is(err, patient.ErrNotFound) {
			return nil, ErrNoPatients
		}
		return p, err
	}
	p, err := s.patients.First(ctx)
	if errors.Is(err, patient.ErrNotFound) {
		return nil, ErrNoPatients
	}
	return p, err
}
