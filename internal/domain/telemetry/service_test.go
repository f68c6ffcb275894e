package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/omnihealth/guardian/internal/domain/patient"
)

type mockReadingRepo struct {
	readings []*Reading
}

func (m *mockReadingRepo) Insert(_ context.Context, r *Reading) error {
	m.readings = append(m.readings, r)
	return nil
}

func (m *mockReadingRepo) ListByPatient(_ context.Context, patientID string, limit int64) ([]*Reading, error) {
	var out []*Reading
	for i := len(m.readings) - 1; i >= 0; i-- {
		if int64(len(out)) >= limit {
			break
		}
		if m.readings[i].PatientID == patientID {
			out = append(out, m.readings[i])
		}
	}
	return out, nil
}

func (m *mockReadingRepo) ListSince(_ context.Context, patientID string, since time.Time) ([]*Reading, error) {
	var out []*Reading
	for i := len(m.readings) - 1; i >= 0; i-- {
		r := m.readings[i]
		if r.PatientID == patientID && !r.Timestamp.Before(since) {
			out = append(out, r)
		}
	}
	return out, nil
}

type mockPatientDir struct {
	patients []*patient.Patient
}

func (m *mockPatientDir) Get(_ context.Context, id string) (*patient.Patient, error) {
	for _, p := range m.patients {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, patient.ErrNotFound
}

func (m *mockPatientDir) List(_ context.Context, limit int64) ([]*patient.Patient, error) {
	if int64(len(m.patients)) > limit {
		return m.patients[:limit], nil
	}
	return m.patients, nil
}

func (m *mockPatientDir) First(_ context.Context) (*patient.Patient, error) {
	if len(m.patients) == 0 {
		return nil, patient.ErrNotFound
	}
	return m.patients[0], nil
}

// stubSimulator replays canned readings so tests control criticality.
type stubSimulator struct {
	queue []*Reading
}

func (s *stubSimulator) Simulate(p *patient.Patient) *Reading {
	if len(s.queue) == 0 {
		return &Reading{ID: "r-default", PatientID: p.ID, DeviceType: p.DeviceType, Timestamp: time.Now().UTC()}
	}
	r := s.queue[0]
	s.queue = s.queue[1:]
	r.PatientID = p.ID
	return r
}

type recordingProcessor struct {
	calls []string
	fail  error
}

func (r *recordingProcessor) Process(_ context.Context, p *patient.Patient, _ *Reading) error {
	r.calls = append(r.calls, p.ID)
	return r.fail
}

func demoPatients() []*patient.Patient {
	return []*patient.Patient{
		{ID: "p1", Name: "Alice Chen", Condition: patient.ConditionDiabetesType1, DeviceType: patient.DeviceInsulinPump},
		{ID: "p2", Name: "Frank Brown", Condition: patient.ConditionHeart, DeviceType: patient.DevicePacemaker},
	}
}

func TestLive_AugmentsPatientContext(t *testing.T) {
	repo := &mockReadingRepo{}
	svc := NewService(repo, &mockPatientDir{patients: demoPatients()}, NewSeededGenerator(7), nil)

	live, err := svc.Live(context.Background())
	if err != nil {
		t.Fatalf("Live failed: %v", err)
	}
	if len(live) != 2 {
		t.Fatalf("expected 2 live readings, got %d", len(live))
	}
	if live[0].PatientName != "Alice Chen" || live[0].Condition != patient.ConditionDiabetesType1 {
		t.Errorf("missing patient context: %+v", live[0])
	}
	if live[1].PatientName != "Frank Brown" {
		t.Errorf("unexpected second patient %s", live[1].PatientName)
	}
	if len(repo.readings) != 0 {
		t.Errorf("live telemetry persisted %d readings", len(repo.readings))
	}
}

func TestCapture_PersistsReading(t *testing.T) {
	repo := &mockReadingRepo{}
	proc := &recordingProcessor{}
	sim := &stubSimulator{queue: []*Reading{{ID: "r1", BatteryLevel: 80, Timestamp: time.Now().UTC()}}}
	svc := NewService(repo, &mockPatientDir{patients: demoPatients()}, sim, proc)

	r, err := svc.Capture(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if r.ID != "r1" || r.PatientID != "p1" {
		t.Errorf("unexpected reading %+v", r)
	}
	if len(repo.readings) != 1 {
		t.Fatalf("expected 1 stored reading, got %d", len(repo.readings))
	}
	if len(proc.calls) != 0 {
		t.Errorf("processor ran for non-critical reading")
	}
}

func TestCapture_CriticalRunsProcessor(t *testing.T) {
	repo := &mockReadingRepo{}
	proc := &recordingProcessor{}
	sim := &stubSimulator{queue: []*Reading{{ID: "r1", IsCritical: true, Timestamp: time.Now().UTC()}}}
	svc := NewService(repo, &mockPatientDir{patients: demoPatients()}, sim, proc)

	if _, err := svc.Capture(context.Background(), "p2"); err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if len(proc.calls) != 1 || proc.calls[0] != "p2" {
		t.Errorf("expected processor run for p2, got %v", proc.calls)
	}
}

func TestCapture_ProcessorFailureIsSwallowed(t *testing.T) {
	repo := &mockReadingRepo{}
	proc := &recordingProcessor{fail: errors.New("chain down")}
	sim := &stubSimulator{queue: []*Reading{{ID: "r1", IsCritical: true, Timestamp: time.Now().UTC()}}}
	svc := NewService(repo, &mockPatientDir{patients: demoPatients()}, sim, proc)

	r, err := svc.Capture(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Capture surfaced processor failure: %v", err)
	}
	if r == nil {
		t.Fatal("expected reading despite processor failure")
	}
}

func TestCapture_FallsBackToFirstPatient(t *testing.T) {
	repo := &mockReadingRepo{}
	svc := NewService(repo, &mockPatientDir{patients: demoPatients()}, NewSeededGenerator(9), nil)

	r, err := svc.Capture(context.Background(), "")
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if r.PatientID != "p1" {
		t.Errorf("expected first patient p1, got %s", r.PatientID)
	}
}

func TestCapture_NoPatients(t *testing.T) {
	svc := NewService(&mockReadingRepo{}, &mockPatientDir{}, NewSeededGenerator(9), nil)

	if _, err := svc.Capture(context.Background(), ""); !errors.Is(err, ErrNoPatients) {
		t.Errorf("expected ErrNoPatients for empty directory, got %v", err)
	}
	svc = NewService(&mockReadingRepo{}, &mockPatientDir{patients: demoPatients()}, NewSeededGenerator(9), nil)
	if _, err := svc.Capture(context.Background(), "ghost"); !errors.Is(err, ErrNoPatients) {
		t.Errorf("expected ErrNoPatients for unknown id, got %v", err)
	}
}

func TestHistory_NewestFirstWithLimit(t *testing.T) {
	repo := &mockReadingRepo{}
	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		repo.Insert(context.Background(), &Reading{ID: string(rune('a' + i)), PatientID: "p1", Timestamp: base.Add(time.Duration(i) * time.Minute)})
	}
	svc := NewService(repo, &mockPatientDir{patients: demoPatients()}, NewSeededGenerator(9), nil)

	readings, err := svc.History(context.Background(), "p1", 3)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(readings) != 3 {
		t.Fatalf("expected 3 readings, got %d", len(readings))
	}
	if readings[0].ID != "e" {
		t.Errorf("expected newest reading first, got %s", readings[0].ID)
	}
}
