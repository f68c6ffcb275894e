// Package diet produces AI diet plans with canned fallbacks, anchored by a
// mock verification transaction.
package diet

import "time"

// Plan is one generated diet plan.
type Plan struct {
	ID                 string    `bson:"id" json:"id"`
	PatientID          string    `bson:"patient_id" json:"patient_id"`
	Condition          string    `bson:"condition" json:"condition"`
	PlanText           string    `bson:"plan_text" json:"plan_text"`
	AIGenerated        bool      `bson:"ai_generated" json:"ai_generated"`
	VerifiedByOpenClaw bool      `bson:"verified_by_openclaw" json:"verified_by_openclaw"`
	BlockchainTxHash   string    `bson:"blockchain_tx_hash" json:"blockchain_tx_hash"`
	Timestamp          time.Time `bson:"timestamp" json:"timestamp"`
}
