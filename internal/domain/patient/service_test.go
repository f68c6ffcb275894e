package patient

import (
	"context"
	"testing"
)

// -- Mock Repository --

type mockPatientRepo struct {
	store map[string]*Patient
	order []string
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{store: make(map[string]*Patient)}
}

func (m *mockPatientRepo) Insert(_ context.Context, p *Patient) error {
	m.store[p.ID] = p
	m.order = append(m.order, p.ID)
	return nil
}

func (m *mockPatientRepo) InsertMany(ctx context.Context, patients []*Patient) error {
	for _, p := range patients {
		_ = m.Insert(ctx, p)
	}
	return nil
}

func (m *mockPatientRepo) Get(_ context.Context, id string) (*Patient, error) {
	p, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *mockPatientRepo) List(_ context.Context, limit int64) ([]*Patient, error) {
	var out []*Patient
	for _, id := range m.order {
		if int64(len(out)) >= limit {
			break
		}
		out = append(out, m.store[id])
	}
	return out, nil
}

func (m *mockPatientRepo) ListByDoctor(_ context.Context, doctorID string, limit int64) ([]*Patient, error) {
	var out []*Patient
	for _, id := range m.order {
		if m.store[id].AssignedDoctorID == doctorID {
			out = append(out, m.store[id])
		}
	}
	return out, nil
}

func (m *mockPatientRepo) First(_ context.Context) (*Patient, error) {
	if len(m.order) == 0 {
		return nil, ErrNotFound
	}
	return m.store[m.order[0]], nil
}

func (m *mockPatientRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.store)), nil
}

func (m *mockPatientRepo) CountByHospital(_ context.Context, hospitalID string) (int64, error) {
	var n int64
	for _, p := range m.store {
		if p.HospitalID == hospitalID {
			n++
		}
	}
	return n, nil
}

func newTestService() *Service {
	return NewService(newMockPatientRepo())
}

// -- Service Tests --

func TestCreatePatient_Success(t *testing.T) {
	svc := newTestService()
	p := &Patient{Name: "Alice Chen", Age: 34, Condition: ConditionDiabetesType1, DeviceType: DeviceInsulinPump}
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == "" {
		t.Error("expected id to be set")
	}
}

func TestCreatePatient_InvalidCondition(t *testing.T) {
	svc := newTestService()
	p := &Patient{Name: "Bob Martinez", Condition: "flu", DeviceType: DevicePacemaker}
	if err := svc.Create(context.Background(), p); err == nil {
		t.Fatal("expected error for invalid condition")
	}
}

func TestCreatePatient_InvalidDevice(t *testing.T) {
	svc := newTestService()
	p := &Patient{Name: "Bob Martinez", Condition: ConditionHeart, DeviceType: "smartwatch"}
	if err := svc.Create(context.Background(), p); err == nil {
		t.Fatal("expected error for invalid device_type")
	}
}

func TestCreatePatient_MissingName(t *testing.T) {
	svc := newTestService()
	p := &Patient{Condition: ConditionHeart, DeviceType: DevicePacemaker}
	if err := svc.Create(context.Background(), p); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestCreateMany_AssignsIDs(t *testing.T) {
	svc := newTestService()
	batch := []*Patient{
		{Name: "Alice Chen", Condition: ConditionDiabetesType1, DeviceType: DeviceInsulinPump},
		{Name: "Bob Martinez", Condition: ConditionHeart, DeviceType: DevicePacemaker},
	}
	if err := svc.CreateMany(context.Background(), batch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range batch {
		if p.ID == "" {
			t.Errorf("patient %s missing id", p.Name)
		}
	}
	n, _ := svc.Count(context.Background())
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}

func TestGetPatient_NotFound(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Get(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListPatients_RespectsLimit(t *testing.T) {
	svc := newTestService()
	for i := 0; i < 5; i++ {
		p := &Patient{Name: "Patient", Condition: ConditionDiabetesType2, DeviceType: DeviceInsulinPump}
		if err := svc.Create(context.Background(), p); err != nil {
			t.Fatal(err)
		}
	}
	items, err := svc.List(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("len = %d, want 3", len(items))
	}
}

func TestIsDiabetic(t *testing.T) {
	cases := map[string]bool{
		ConditionDiabetesType1: true,
		ConditionDiabetesType2: true,
		ConditionHeart:         false,
	}
	for condition, want := range cases {
		p := &Patient{Condition: condition}
		if got := p.IsDiabetic(); got != want {
			t.Errorf("IsDiabetic(%s) = %v, want %v", condition, got, want)
		}
	}
}
