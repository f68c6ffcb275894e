// Package activity records what the guardian agent does: diet suggestions,
// alert verifications, skill executions. The feed backs the /api/moltbot
// endpoints.
package activity

import (
	"time"

	"github.com/google/uuid"
)

// Activity types.
const (
	TypeDietSuggestion    = "diet_suggestion"
	TypeAlertVerification = "alert_verification"
	TypeDataAnalysis      = "data_analysis"
	TypeSkillExecution    = "skill_execution"
	TypeEmergencyAlert    = "emergency_alert"
	TypeDailyAnalysis     = "daily_analysis"
)

// Activity is one entry in the agent activity feed.
type Activity struct {
	ID           string    `bson:"id" json:"id"`
	ActivityType string    `bson:"activity_type" json:"activity_type"`
	Description  string    `bson:"description" json:"description"`
	PatientID    string    `bson:"patient_id,omitempty" json:"patient_id,omitempty"`
	TxHash       string    `bson:"tx_hash,omitempty" json:"tx_hash,omitempty"`
	Verified     bool      `bson:"verified" json:"verified"`
	Timestamp    time.Time `bson:"timestamp" json:"timestamp"`
}

// New builds an activity with a fresh id and timestamp.
func New(activityType, description string) *Activity {
	return &Activity{
		ID:           uuid.NewString(),
		ActivityType: activityType,
		Description:  description,
		Timestamp:    time.Now().UTC(),
	}
}
