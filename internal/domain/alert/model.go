// Package alert classifies critical readings, anchors them on-chain, and
// serves the alert feed.
package alert

import (
	"time"

	"github.com/omnihealth/guardian/internal/domain/hospital"
	"github.com/omnihealth/guardian/internal/domain/telemetry"
)

// Severity levels, weakest to strongest.
const (
	SeverityWarning   = "warning"
	SeverityCritical  = "critical"
	SeverityEmergency = "emergency"
)

// Alert types produced by classification.
const (
	TypeLowGlucose         = "low_glucose"
	TypeHighGlucose        = "high_glucose"
	TypeIrregularHeartbeat = "irregular_heartbeat"
	TypeLowBattery         = "low_battery"
	TypeUnknown            = "unknown"
)

// Alert is one verified critical event. The triggering reading is embedded
// so the feed is self-contained.
type Alert struct {
	ID               string                    `bson:"id" json:"id"`
	PatientID        string                    `bson:"patient_id" json:"patient_id"`
	AlertType        string                    `bson:"alert_type" json:"alert_type"`
	Severity         string                    `bson:"severity" json:"severity"`
	Message          string                    `bson:"message" json:"message"`
	ReadingData      *telemetry.Reading        `bson:"reading_data" json:"reading_data"`
	SHA256Hash       string                    `bson:"sha256_hash" json:"sha256_hash"`
	BlockchainTxHash string                    `bson:"blockchain_tx_hash" json:"blockchain_tx_hash"`
	NearestHospital  *hospital.NearestHospital `bson:"nearest_hospital" json:"nearest_hospital"`
	Timestamp        time.Time                 `bson:"timestamp" json:"timestamp"`
	VerifiedOnChain  bool                      `bson:"verified_on_chain" json:"verified_on_chain"`
}
