package doctor

import (
	"context"
	"testing"

	"github.com/omnihealth/guardian/internal/domain/patient"
)

type mockDoctorRepo struct {
	store map[string]*Doctor
	order []string
}

func newMockDoctorRepo() *mockDoctorRepo {
	return &mockDoctorRepo{store: make(map[string]*Doctor)}
}

func (m *mockDoctorRepo) Insert(_ context.Context, d *Doctor) error {
	m.store[d.ID] = d
	m.order = append(m.order, d.ID)
	return nil
}

func (m *mockDoctorRepo) InsertMany(ctx context.Context, ds []*Doctor) error {
	for _, d := range ds {
		if err := m.Insert(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockDoctorRepo) Get(_ context.Context, id string) (*Doctor, error) {
	d, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

func (m *mockDoctorRepo) List(_ context.Context, limit int64) ([]*Doctor, error) {
	var ds []*Doctor
	for _, id := range m.order {
		if int64(len(ds)) >= limit {
			break
		}
		ds = append(ds, m.store[id])
	}
	return ds, nil
}

func (m *mockDoctorRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.order)), nil
}

func (m *mockDoctorRepo) CountByHospital(_ context.Context, hospitalID string) (int64, error) {
	var n int64
	for _, d := range m.store {
		if d.HospitalID == hospitalID {
			n++
		}
	}
	return n, nil
}

type mockPatientLister struct {
	byDoctor map[string][]*patient.Patient
}

func (m *mockPatientLister) ListByDoctor(_ context.Context, doctorID string, limit int64) ([]*patient.Patient, error) {
	ps := m.byDoctor[doctorID]
	if int64(len(ps)) > limit {
		ps = ps[:limit]
	}
	return ps, nil
}

func newTestService(repo Repository, patients PatientLister) *Service {
	if patients == nil {
		patients = &mockPatientLister{byDoctor: map[string][]*patient.Patient{}}
	}
	return NewService(repo, patients)
}

func TestCreateMany_AssignsIDsAndEmptyRosters(t *testing.T) {
	repo := newMockDoctorRepo()
	svc := newTestService(repo, nil)

	ds := []*Doctor{
		{Name: "Dr. Sarah Adams", Specialization: "Endocrinology", HospitalID: "h1"},
		{Name: "Dr. Michael Chen", Specialization: "Cardiology", HospitalID: "h1"},
	}
	if err := svc.CreateMany(context.Background(), ds); err != nil {
		t.Fatalf("CreateMany failed: %v", err)
	}
	for i, d := range ds {
		if d.ID == "" {
			t.Errorf("doctor %d has empty id", i)
		}
		if d.PatientIDs == nil {
			t.Errorf("doctor %d has nil patient_ids", i)
		}
	}
}

func TestCreateMany_Validation(t *testing.T) {
	svc := newTestService(newMockDoctorRepo(), nil)

	if err := svc.CreateMany(context.Background(), []*Doctor{{Specialization: "Cardiology"}}); err == nil {
		t.Error("expected error for missing name")
	}
	if err := svc.CreateMany(context.Background(), []*Doctor{{Name: "Dr. Emily Davis"}}); err == nil {
		t.Error("expected error for missing specialization")
	}
}

func TestGetDoctor_NotFound(t *testing.T) {
	svc := newTestService(newMockDoctorRepo(), nil)
	if _, err := svc.Get(context.Background(), "missing"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPatients_ReturnsAssignedRoster(t *testing.T) {
	repo := newMockDoctorRepo()
	repo.Insert(context.Background(), &Doctor{ID: "d1", Name: "Dr. Jennifer Hall", Specialization: "Cardiology"})
	lister := &mockPatientLister{byDoctor: map[string][]*patient.Patient{
		"d1": {
			{ID: "p1", Name: "Alice Chen", AssignedDoctorID: "d1"},
			{ID: "p2", Name: "Bob Martinez", AssignedDoctorID: "d1"},
		},
	}}
	svc := newTestService(repo, lister)

	ps, err := svc.Patients(context.Background(), "d1", 100)
	if err != nil {
		t.Fatalf("Patients failed: %v", err)
	}
	if len(ps) != 2 {
		t.Fatalf("expected 2 patients, got %d", len(ps))
	}
	if ps[0].Name != "Alice Chen" {
		t.Errorf("unexpected first patient %s", ps[0].Name)
	}
}

func TestPatients_UnknownDoctor(t *testing.T) {
	svc := newTestService(newMockDoctorRepo(), nil)
	if _, err := svc.Patients(context.Background(), "unknown", 100); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
