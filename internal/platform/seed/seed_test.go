package seed

import (
	"context"
	"regexp"
	"testing"

	"github.com/omnihealth/guardian/internal/domain/doctor"
	"github.com/omnihealth/guardian/internal/domain/hospital"
	"github.com/omnihealth/guardian/internal/domain/patient"
)

type mockHospitalStore struct {
	existing int64
	inserted []*hospital.Hospital
}

func (m *mockHospitalStore) Count(_ context.Context) (int64, error) {
	return m.existing, nil
}

func (m *mockHospitalStore) CreateMany(_ context.Context, hs []*hospital.Hospital) error {
	m.inserted = hs
	return nil
}

type mockDoctorStore struct {
	inserted []*doctor.Doctor
}

func (m *mockDoctorStore) CreateMany(_ context.Context, ds []*doctor.Doctor) error {
	m.inserted = ds
	return nil
}

type mockPatientStore struct {
	inserted []*patient.Patient
}

func (m *mockPatientStore) CreateMany(_ context.Context, ps []*patient.Patient) error {
	m.inserted = ps
	return nil
}

type seedFixture struct {
	seeder    *Seeder
	hospitals *mockHospitalStore
	doctors   *mockDoctorStore
	patients  *mockPatientStore
}

func newSeedFixture(existing int64) *seedFixture {
	f := &seedFixture{
		hospitals: &mockHospitalStore{existing: existing},
		doctors:   &mockDoctorStore{},
		patients:  &mockPatientStore{},
	}
	f.seeder = New(f.hospitals, f.doctors, f.patients)
	return f
}

var addressPattern = regexp.MustCompile(`^\d{3,4} Medical Way, City \d+$`)

func TestSeederRun_GeneratesRoster(t *testing.T) {
	f := newSeedFixture(0)

	result, err := f.seeder.Run(context.Background(), Options{Seed: 42})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Hospitals != 30 || result.Doctors != 20 || result.Patients != 10 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if result.Duration == "" {
		t.Error("expected duration on result")
	}

	hospitalIDs := make(map[string]bool)
	for i, h := range f.hospitals.inserted {
		if h.ID == "" {
			t.Fatal("hospital missing id")
		}
		hospitalIDs[h.ID] = true
		if h.Name != hospitalNames[i] {
			t.Errorf("hospital %d: expected %s, got %s", i, hospitalNames[i], h.Name)
		}
		if !addressPattern.MatchString(h.Address) {
			t.Errorf("unexpected address %q", h.Address)
		}
		if h.Latitude < 40.2128 || h.Latitude > 41.2128 {
			t.Errorf("latitude out of range: %v", h.Latitude)
		}
		if h.Longitude < -74.506 || h.Longitude > -73.506 {
			t.Errorf("longitude out of range: %v", h.Longitude)
		}
		if h.Capacity < 100 || h.Capacity > 500 {
			t.Errorf("capacity out of range: %d", h.Capacity)
		}
		if h.ActiveDevices < 10 || h.ActiveDevices > 100 {
			t.Errorf("active devices out of range: %d", h.ActiveDevices)
		}
	}

	specs := make(map[string]bool, len(specializations))
	for _, s := range specializations {
		specs[s] = true
	}
	doctorIDs := make(map[string]bool)
	for i, d := range f.doctors.inserted {
		doctorIDs[d.ID] = true
		if d.Name != doctorNames[i] {
			t.Errorf("doctor %d: expected %s, got %s", i, doctorNames[i], d.Name)
		}
		if d.UserID == "" {
			t.Error("doctor missing user id")
		}
		if !specs[d.Specialization] {
			t.Errorf("unknown specialization %q", d.Specialization)
		}
		if !hospitalIDs[d.HospitalID] {
			t.Errorf("doctor %s references unknown hospital %q", d.Name, d.HospitalID)
		}
		if d.PatientIDs == nil {
			t.Error("doctor roster must be non-nil")
		}
	}

	for i, p := range f.patients.inserted {
		if p.Name != patientNames[i] {
			t.Errorf("patient %d: expected %s, got %s", i, patientNames[i], p.Name)
		}
		if p.Age < 25 || p.Age > 75 {
			t.Errorf("age out of range: %d", p.Age)
		}
		if !doctorIDs[p.AssignedDoctorID] {
			t.Errorf("patient %s references unknown doctor %q", p.Name, p.AssignedDoctorID)
		}
		if !hospitalIDs[p.HospitalID] {
			t.Errorf("patient %s references unknown hospital %q", p.Name, p.HospitalID)
		}
		switch p.Condition {
		case patient.ConditionDiabetesType1, patient.ConditionDiabetesType2:
			if p.DeviceType != patient.DeviceInsulinPump {
				t.Errorf("diabetic %s should wear an insulin pump, got %s", p.Name, p.DeviceType)
			}
		case patient.ConditionHeart:
			if p.DeviceType != patient.DevicePacemaker {
				t.Errorf("cardiac %s should wear a pacemaker, got %s", p.Name, p.DeviceType)
			}
		default:
			t.Errorf("unknown condition %q", p.Condition)
		}
	}
}

func TestSeederRun_SkipsWhenDataExists(t *testing.T) {
	f := newSeedFixture(30)

	result, err := f.seeder.Run(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Hospitals != 0 || result.Doctors != 0 || result.Patients != 0 {
		t.Errorf("expected zero counts on skip, got %+v", result)
	}
	if f.hospitals.inserted != nil || f.doctors.inserted != nil || f.patients.inserted != nil {
		t.Error("skip must not insert anything")
	}
}

func TestSeederRun_ForceReseeds(t *testing.T) {
	f := newSeedFixture(30)

	result, err := f.seeder.Run(context.Background(), Options{Force: true, Seed: 7})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Hospitals != 30 {
		t.Errorf("expected forced reseed, got %+v", result)
	}
}

func TestSeederRun_DeterministicAttributes(t *testing.T) {
	first := newSeedFixture(0)
	second := newSeedFixture(0)

	if _, err := first.seeder.Run(context.Background(), Options{Seed: 99}); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if _, err := second.seeder.Run(context.Background(), Options{Seed: 99}); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	for i := range first.patients.inserted {
		a, b := first.patients.inserted[i], second.patients.inserted[i]
		if a.Condition != b.Condition || a.Age != b.Age {
			t.Errorf("patient %d attributes differ: %s/%d vs %s/%d", i, a.Condition, a.Age, b.Condition, b.Age)
		}
	}
	for i := range first.doctors.inserted {
		if first.doctors.inserted[i].Specialization != second.doctors.inserted[i].Specialization {
			t.Errorf("doctor %d specialization differs", i)
		}
	}
	for i := range first.hospitals.inserted {
		a, b := first.hospitals.inserted[i], second.hospitals.inserted[i]
		if a.Capacity != b.Capacity || a.Address != b.Address {
			t.Errorf("hospital %d attributes differ", i)
		}
	}
}
