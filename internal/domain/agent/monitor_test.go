package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/omnihealth/guardian/internal/domain/activity"
	"github.com/omnihealth/guardian/internal/domain/alert"
	"github.com/omnihealth/guardian/internal/domain/hospital"
	"github.com/omnihealth/guardian/internal/domain/patient"
	"github.com/omnihealth/guardian/internal/domain/telemetry"
)

func TestClassifyVitals(t *testing.T) {
	tests := []struct {
		name         string
		reading      *telemetry.Reading
		wantType     string
		wantSeverity string
	}{
		{
			name:         "dangerously low glucose",
			reading:      &telemetry.Reading{GlucoseLevel: floatPtr(45), BatteryLevel: 80},
			wantType:     alert.TypeLowGlucose,
			wantSeverity: alert.SeverityEmergency,
		},
		{
			name:         "low glucose",
			reading:      &telemetry.Reading{GlucoseLevel: floatPtr(60), BatteryLevel: 80},
			wantType:     alert.TypeLowGlucose,
			wantSeverity: alert.SeverityCritical,
		},
		{
			name:         "emergency boundary stays critical",
			reading:      &telemetry.Reading{GlucoseLevel: floatPtr(54), BatteryLevel: 80},
			wantType:     alert.TypeLowGlucose,
			wantSeverity: alert.SeverityCritical,
		},
		{
			name:         "high glucose",
			reading:      &telemetry.Reading{GlucoseLevel: floatPtr(300), BatteryLevel: 80},
			wantType:     alert.TypeHighGlucose,
			wantSeverity: alert.SeverityCritical,
		},
		{
			name:         "bradycardia",
			reading:      &telemetry.Reading{HeartRate: intPtr(40), BatteryLevel: 80},
			wantType:     alertBradycardia,
			wantSeverity: alert.SeverityEmergency,
		},
		{
			name:         "tachycardia",
			reading:      &telemetry.Reading{HeartRate: intPtr(150), BatteryLevel: 80},
			wantType:     alertTachycardia,
			wantSeverity: alert.SeverityEmergency,
		},
		{
			name:         "low battery alone",
			reading:      &telemetry.Reading{HeartRate: intPtr(75), BatteryLevel: 10},
			wantType:     alert.TypeLowBattery,
			wantSeverity: alert.SeverityWarning,
		},
		{
			name:         "critical glucose outranks battery warning",
			reading:      &telemetry.Reading{GlucoseLevel: floatPtr(60), BatteryLevel: 10},
			wantType:     alert.TypeLowGlucose,
			wantSeverity: alert.SeverityCritical,
		},
		{
			name:         "emergency heart rate outranks critical glucose",
			reading:      &telemetry.Reading{GlucoseLevel: floatPtr(300), HeartRate: intPtr(150), BatteryLevel: 80},
			wantType:     alertTachycardia,
			wantSeverity: alert.SeverityEmergency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := classifyVitals(tt.reading)
			if found == nil {
				t.Fatal("expected a finding")
			}
			if found.alertType != tt.wantType {
				t.Errorf("expected type %s, got %s", tt.wantType, found.alertType)
			}
			if found.severity != tt.wantSeverity {
				t.Errorf("expected severity %s, got %s", tt.wantSeverity, found.severity)
			}
		})
	}
}

func TestClassifyVitals_InRange(t *testing.T) {
	readings := []*telemetry.Reading{
		{GlucoseLevel: floatPtr(110), BatteryLevel: 80},
		{HeartRate: intPtr(72), BatteryLevel: 80},
		{GlucoseLevel: floatPtr(70), HeartRate: intPtr(120), BatteryLevel: 15},
	}
	for _, r := range readings {
		if found := classifyVitals(r); found != nil {
			t.Errorf("expected no finding for %+v, got %s", r, found.alertType)
		}
	}
}

func TestMonitorCritical_NoData(t *testing.T) {
	f := newSkillFixture()
	f.addPatient(diabeticPatient())

	out, err := f.skills.MonitorCritical(context.Background(), "p1")
	if err != nil {
		t.Fatalf("MonitorCritical failed: %v", err)
	}
	body := out.Result.(map[string]interface{})
	if body["status"] != "no_data" {
		t.Errorf("expected no_data, got %v", body["status"])
	}
}

func TestMonitorCritical_Normal(t *testing.T) {
	f := newSkillFixture()
	f.addPatient(diabeticPatient())
	f.addReading(&telemetry.Reading{ID: "r1", PatientID: "p1", GlucoseLevel: floatPtr(110), BatteryLevel: 85})

	out, err := f.skills.MonitorCritical(context.Background(), "p1")
	if err != nil {
		t.Fatalf("MonitorCritical failed: %v", err)
	}
	body := out.Result.(map[string]interface{})
	if body["status"] != "normal" {
		t.Errorf("expected normal, got %v", body["status"])
	}
	if len(f.alerts.alerts) != 0 {
		t.Errorf("normal reading must not store an alert, got %d", len(f.alerts.alerts))
	}
}

func TestMonitorCritical_AlertGenerated(t *testing.T) {
	f := newSkillFixture()
	f.addPatient(diabeticPatient())
	f.addReading(&telemetry.Reading{ID: "r1", PatientID: "p1", GlucoseLevel: floatPtr(40), BatteryLevel: 85})
	f.locator.hospital = &hospital.NearestHospital{ID: "h1", Name: "City Medical Center", Distance: "2.3 km"}

	out, err := f.skills.MonitorCritical(context.Background(), "p1")
	if err != nil {
		t.Fatalf("MonitorCritical failed: %v", err)
	}
	body := out.Result.(map[string]interface{})
	if body["status"] != "alert_generated" {
		t.Fatalf("expected alert_generated, got %v", body["status"])
	}

	if len(f.alerts.alerts) != 1 {
		t.Fatalf("expected 1 stored alert, got %d", len(f.alerts.alerts))
	}
	stored := f.alerts.alerts[0]
	if stored.AlertType != alert.TypeLowGlucose || stored.Severity != alert.SeverityEmergency {
		t.Errorf("unexpected classification: %s/%s", stored.AlertType, stored.Severity)
	}
	if !stored.VerifiedOnChain {
		t.Error("expected alert verified on chain")
	}
	if len(stored.SHA256Hash) != 64 {
		t.Errorf("expected sha256 hash, got %q", stored.SHA256Hash)
	}
	if len(stored.BlockchainTxHash) != 66 {
		t.Errorf("expected tx hash, got %q", stored.BlockchainTxHash)
	}
	if stored.NearestHospital == nil {
		t.Fatal("expected nearest hospital on alert")
	}
	if eta := stored.NearestHospital.ETAMinutes; eta < 5 || eta > 20 {
		t.Errorf("eta out of range: %d", eta)
	}
	if f.locator.lastID != "h1" {
		t.Errorf("expected lookup for patient hospital, got %q", f.locator.lastID)
	}

	chainInfo := body["blockchain"].(map[string]interface{})
	if chainInfo["tx_hash"] != stored.BlockchainTxHash {
		t.Errorf("result tx does not match stored alert")
	}
	if !strings.Contains(chainInfo["explorer_url"].(string), stored.BlockchainTxHash) {
		t.Errorf("explorer url missing tx: %v", chainInfo["explorer_url"])
	}

	if out.TxHash != stored.BlockchainTxHash {
		t.Errorf("outcome tx mismatch: %q", out.TxHash)
	}
	if !strings.HasPrefix(out.GreenfieldCID, "gf-local://") {
		t.Errorf("expected local archive cid, got %q", out.GreenfieldCID)
	}

	if len(f.feed.entries) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(f.feed.entries))
	}
	a := f.feed.entries[0]
	if a.ActivityType != activity.TypeEmergencyAlert {
		t.Errorf("unexpected activity type %s", a.ActivityType)
	}
	if a.Description != "Critical alert detected and verified: low_glucose for Alice Chen" {
		t.Errorf("unexpected description %q", a.Description)
	}
	if a.PatientID != "p1" || !a.Verified {
		t.Errorf("activity missing patient link: %+v", a)
	}
}

func TestMonitorCritical_HospitalLookupFailureStillAlerts(t *testing.T) {
	f := newSkillFixture()
	f.addPatient(cardiacPatient())
	f.addReading(&telemetry.Reading{ID: "r1", PatientID: "p2", HeartRate: intPtr(150), BatteryLevel: 85})
	f.locator.err = errors.New("unreachable")

	out, err := f.skills.MonitorCritical(context.Background(), "p2")
	if err != nil {
		t.Fatalf("MonitorCritical failed: %v", err)
	}
	body := out.Result.(map[string]interface{})
	if body["status"] != "alert_generated" {
		t.Fatalf("expected alert_generated, got %v", body["status"])
	}
	if len(f.alerts.alerts) != 1 {
		t.Fatalf("expected stored alert despite lookup failure")
	}
	if f.alerts.alerts[0].NearestHospital != nil {
		t.Error("expected nil hospital when lookup fails")
	}
}

func TestMonitorCritical_PatientNotFound(t *testing.T) {
	f := newSkillFixture()
	_, err := f.skills.MonitorCritical(context.Background(), "ghost")
	if !errors.Is(err, patient.ErrNotFound) {
		t.Fatalf("expected patient.ErrNotFound, got %v", err)
	}
}
