package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/omnihealth/guardian/internal/domain/doctor"
	"github.com/omnihealth/guardian/internal/domain/patient"
)

func newTestHandler() (*Handler, *dashFixture, *echo.Echo) {
	f := newDashFixture()
	return NewHandler(f.svc), f, echo.New()
}

func TestGetPatientDashboard_NotFound(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := h.GetPatientDashboard(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", httpErr.Code)
	}
	if httpErr.Message != "Patient not found" {
		t.Errorf("unexpected message %v", httpErr.Message)
	}
}

func TestGetPatientDashboard_Success(t *testing.T) {
	h, f, e := newTestHandler()
	f.patients.patients["p1"] = &patient.Patient{
		ID:        "p1",
		Name:      "Alice Chen",
		Condition: patient.ConditionDiabetesType1,
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.GetPatientDashboard(c); err != nil {
		t.Fatalf("GetPatientDashboard failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if string(body["doctor"]) != "null" {
		t.Errorf("expected null doctor, got %s", body["doctor"])
	}
	if string(body["readings"]) != "[]" {
		t.Errorf("expected empty readings array, got %s", body["readings"])
	}
	if string(body["current_reading"]) == "null" {
		t.Error("expected fresh current reading")
	}
}

func TestGetDoctorDashboard_NotFound(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := h.GetDoctorDashboard(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", httpErr.Code)
	}
	if httpErr.Message != "Doctor not found" {
		t.Errorf("unexpected message %v", httpErr.Message)
	}
}

func TestGetDoctorDashboard_Success(t *testing.T) {
	h, f, e := newTestHandler()
	f.doctors.doctors["d1"] = &doctor.Doctor{ID: "d1", Name: "Dr. Sarah Adams"}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("d1")

	if err := h.GetDoctorDashboard(c); err != nil {
		t.Fatalf("GetDoctorDashboard failed: %v", err)
	}
	var view DoctorView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.Doctor == nil || view.Doctor.ID != "d1" {
		t.Errorf("unexpected doctor: %+v", view.Doctor)
	}
}

func TestGetOrganizationDashboard(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GetOrganizationDashboard(c); err != nil {
		t.Fatalf("GetOrganizationDashboard failed: %v", err)
	}
	var view OrganizationView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.SystemHealth.DataSyncStatus != "healthy" {
		t.Errorf("unexpected system health: %+v", view.SystemHealth)
	}
	if view.Hospitals == nil {
		t.Error("expected hospitals array")
	}
}
