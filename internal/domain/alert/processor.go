package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/omnihealth/guardian/internal/domain/activity"
	"github.com/omnihealth/guardian/internal/domain/hospital"
	"github.com/omnihealth/guardian/internal/domain/patient"
	"github.com/omnihealth/guardian/internal/domain/telemetry"
	"github.com/omnihealth/guardian/internal/platform/chain"
	"github.com/omnihealth/guardian/internal/platform/ws"
)

// HospitalLocator resolves the hospital an emergency routes to. Satisfied by
// the hospital service.
type HospitalLocator interface {
	Nearest(ctx context.Context, hospitalID string) (*hospital.NearestHospital, error)
}

// Processor turns a critical reading into a verified alert: classify, hash,
// anchor with a mock transaction, route to the nearest hospital, persist,
// and fan out to the activity feed and the live stream.
type Processor struct {
	alerts     Repository
	hospitals  HospitalLocator
	activities *activity.Logger
	hub        *ws.Hub
}

// NewProcessor wires alert processing. hub may be nil when streaming is
// disabled.
func NewProcessor(alerts Repository, hospitals HospitalLocator, activities *activity.Logger, hub *ws.Hub) *Processor {
	return &Processor{alerts: alerts, hospitals: hospitals, activities: activities, hub: hub}
}

// Process handles one critical reading end to end.
func (p *Processor) Process(ctx context.Context, pat *patient.Patient, r *telemetry.Reading) error {
	alertType, severity, message := Classify(r)

	hash := chain.HashRecord(map[string]interface{}{
		"patient_id": pat.ID,
		"reading":    r,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"alert_type": alertType,
	})
	txHash := chain.MockTxHash()

	nearest, err := p.hospitals.Nearest(ctx, pat.HospitalID)
	if err != nil {
		log.Warn().Err(err).Str("patient_id", pat.ID).Msg("nearest hospital lookup failed")
		nearest = nil
	}

	a := &Alert{
		ID:               uuid.NewString(),
		PatientID:        pat.ID,
		AlertType:        alertType,
		Severity:         severity,
		Message:          message,
		ReadingData:      r,
		SHA256Hash:       hash,
		BlockchainTxHash: txHash,
		NearestHospital:  nearest,
		Timestamp:        time.Now().UTC(),
		VerifiedOnChain:  true,
	}
	if err := p.alerts.Insert(ctx, a); err != nil {
		return fmt.Errorf("store alert: %w", err)
	}

	act := activity.New(activity.TypeAlertVerification,
		fmt.Sprintf("Critical alert verified on-chain: %s for %s", alertType, pat.Name))
	act.PatientID = pat.ID
	act.TxHash = txHash
	act.Verified = true
	p.activities.Log(ctx, act)

	if p.hub != nil {
		p.hub.Publish(ws.NewEvent("alert", ws.TopicAlerts, a))
		p.hub.Publish(ws.NewEvent("alert", ws.PatientTopic(pat.ID), a))
	}

	log.Info().
		Str("patient_id", pat.ID).
		Str("alert_type", alertType).
		Str("severity", severity).
		Str("tx_hash", txHash).
		Msg("critical alert verified")
	return nil
}
