package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/omnihealth/guardian/internal/domain/activity"
	"github.com/omnihealth/guardian/internal/domain/alert"
	"github.com/omnihealth/guardian/internal/domain/telemetry"
	"github.com/omnihealth/guardian/internal/platform/chain"
	"github.com/omnihealth/guardian/internal/platform/greenfield"
)

// Cardiac alert names reported by the guardian, alongside the device alert
// types.
const (
	alertBradycardia = "bradycardia"
	alertTachycardia = "tachycardia"
)

// glucoseEmergency is the cutoff below which low glucose escalates from
// critical to emergency.
const glucoseEmergency = 54.0

type vitalAlert struct {
	alertType string
	severity  string
	message   string
}

var severityRank = map[string]int{
	alert.SeverityWarning:   0,
	alert.SeverityCritical:  1,
	alert.SeverityEmergency: 2,
}

// MonitorCritical is the critical_condition_monitor skill: classify the
// patient's latest reading, and on a critical finding anchor it, attach the
// nearest hospital, store the alert, and archive it.
func (s *Skills) MonitorCritical(ctx context.Context, patientID string) (*Outcome, error) {
	p, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}
	readings, err := s.readings.ListByPatient(ctx, patientID, 1)
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return &Outcome{Result: map[string]interface{}{
			"status":  "no_data",
			"message": "No readings available for monitoring",
		}}, nil
	}
	reading := readings[0]

	found := classifyVitals(reading)
	if found == nil {
		return &Outcome{Result: map[string]interface{}{
			"status":  "normal",
			"message": "All vitals within normal range",
			"vitals":  reading,
		}}, nil
	}

	shaHash := chain.HashRecord(map[string]interface{}{
		"patient_id": patientID,
		"alert_type": found.alertType,
		"vitals":     vitalsMap(reading),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
	txHash := chain.MockTxHash()

	nearest, err := s.hospitals.Nearest(ctx, p.HospitalID)
	if err != nil {
		log.Warn().Err(err).Str("patient_id", patientID).Msg("nearest hospital lookup failed")
		nearest = nil
	}
	if nearest != nil {
		nearest.ETAMinutes = s.randInt(5, 20)
	}

	a := &alert.Alert{
		ID:               uuid.NewString(),
		PatientID:        p.ID,
		AlertType:        found.alertType,
		Severity:         found.severity,
		Message:          found.message,
		ReadingData:      reading,
		SHA256Hash:       shaHash,
		BlockchainTxHash: txHash,
		NearestHospital:  nearest,
		Timestamp:        time.Now().UTC(),
		VerifiedOnChain:  true,
	}
	if err := s.alerts.Insert(ctx, a); err != nil {
		return nil, fmt.Errorf("store alert: %w", err)
	}

	cid := ""
	if s.archive != nil {
		stored, err := s.archive.StoreRecord(ctx, greenfield.RecordCriticalAlert, p.ID, a)
		if err != nil {
			log.Warn().Err(err).Str("patient_id", p.ID).Msg("failed to archive critical alert")
		} else {
			cid = stored.CID
		}
	}

	act := activity.New(activity.TypeEmergencyAlert,
		fmt.Sprintf("Critical alert detected and verified: %s for %s", found.alertType, p.Name))
	act.PatientID = p.ID
	act.TxHash = txHash
	act.Verified = true
	s.activities.Log(ctx, act)

	return &Outcome{
		Result: map[string]interface{}{
			"status": "alert_generated",
			"alert":  a,
			"blockchain": map[string]interface{}{
				"sha256_hash":  shaHash,
				"tx_hash":      txHash,
				"explorer_url": chain.ExplorerTxURL(txHash),
			},
			"nearest_hospital": nearest,
		},
		TxHash:        txHash,
		GreenfieldCID: cid,
	}, nil
}

// classifyVitals applies the guardian thresholds to a reading and returns
// the most severe finding, or nil when everything is in range. Ties keep
// the earlier finding.
func classifyVitals(r *telemetry.Reading) *vitalAlert {
	var findings []vitalAlert

	if r.GlucoseLevel != nil {
		g := *r.GlucoseLevel
		switch {
		case g < glucoseEmergency:
			findings = append(findings, vitalAlert{
				alertType: alert.TypeLowGlucose,
				severity:  alert.SeverityEmergency,
				message:   fmt.Sprintf("⚠️ EMERGENCY: Dangerously low glucose detected: %v mg/dL. Immediate intervention required.", g),
			})
		case g < alert.GlucoseLow:
			findings = append(findings, vitalAlert{
				alertType: alert.TypeLowGlucose,
				severity:  alert.SeverityCritical,
				message:   fmt.Sprintf("🔴 CRITICAL: Low glucose: %v mg/dL. Have a fast-acting carb snack.", g),
			})
		case g > alert.GlucoseHigh:
			findings = append(findings, vitalAlert{
				alertType: alert.TypeHighGlucose,
				severity:  alert.SeverityCritical,
				message:   fmt.Sprintf("🔴 CRITICAL: High glucose level: %v mg/dL. Insulin adjustment may be needed.", g),
			})
		}
	}

	if r.HeartRate != nil {
		hr := *r.HeartRate
		switch {
		case hr < alert.HeartLow:
			findings = append(findings, vitalAlert{
				alertType: alertBradycardia,
				severity:  alert.SeverityEmergency,
				message:   fmt.Sprintf("⚠️ EMERGENCY: Abnormally low heart rate: %d BPM. Pacemaker check required.", hr),
			})
		case hr > alert.HeartHigh:
			findings = append(findings, vitalAlert{
				alertType: alertTachycardia,
				severity:  alert.SeverityEmergency,
				message:   fmt.Sprintf("⚠️ EMERGENCY: Elevated heart rate: %d BPM. Cardiac event possible.", hr),
			})
		}
	}

	if r.BatteryLevel < alert.BatteryLow {
		findings = append(findings, vitalAlert{
			alertType: alert.TypeLowBattery,
			severity:  alert.SeverityWarning,
			message:   fmt.Sprintf("🔋 WARNING: Device battery critical: %d%%. Charge immediately.", r.BatteryLevel),
		})
	}

	var most *vitalAlert
	for i := range findings {
		if most == nil || severityRank[findings[i].severity] > severityRank[most.severity] {
			most = &findings[i]
		}
	}
	return most
}

func vitalsMap(r *telemetry.Reading) map[string]interface{} {
	m := map[string]interface{}{
		"battery_level": r.BatteryLevel,
	}
	if r.GlucoseLevel != nil {
		m["glucose_level"] = *r.GlucoseLevel
	}
	if r.HeartRate != nil {
		m["heart_rate"] = *r.HeartRate
	}
	return m
}
