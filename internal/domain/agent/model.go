package agent

import "time"

// Metrics aggregates one day of device readings.
type Metrics struct {
	TotalReadings  int      `bson:"total_readings" json:"total_readings"`
	CriticalEvents int      `bson:"critical_events" json:"critical_events"`
	AvgGlucose     *float64 `bson:"avg_glucose,omitempty" json:"avg_glucose,omitempty"`
	MinGlucose     *float64 `bson:"min_glucose,omitempty" json:"min_glucose,omitempty"`
	MaxGlucose     *float64 `bson:"max_glucose,omitempty" json:"max_glucose,omitempty"`
	TimeInRange    *float64 `bson:"time_in_range,omitempty" json:"time_in_range,omitempty"`
	AvgHeartRate   *float64 `bson:"avg_heart_rate,omitempty" json:"avg_heart_rate,omitempty"`
	MinHeartRate   *int     `bson:"min_heart_rate,omitempty" json:"min_heart_rate,omitempty"`
	MaxHeartRate   *int     `bson:"max_heart_rate,omitempty" json:"max_heart_rate,omitempty"`
	DietCompliance float64  `bson:"diet_compliance" json:"diet_compliance"`
	ActivityScore  float64  `bson:"activity_score" json:"activity_score"`
}

// AlertSummary is the compact alert view embedded in daily reports.
type AlertSummary struct {
	Type     string `bson:"type" json:"type"`
	Severity string `bson:"severity" json:"severity"`
}

// Progress is one daily health report.
type Progress struct {
	ID              string         `bson:"id" json:"id"`
	PatientID       string         `bson:"patient_id" json:"patient_id"`
	PatientName     string         `bson:"patient_name" json:"patient_name"`
	Condition       string         `bson:"condition" json:"condition"`
	Date            string         `bson:"date" json:"date"`
	Metrics         Metrics        `bson:"metrics" json:"metrics"`
	HealthScore     float64        `bson:"health_score" json:"health_score"`
	Recommendations []string       `bson:"recommendations" json:"recommendations"`
	AlertsSummary   []AlertSummary `bson:"alerts_summary" json:"alerts_summary"`
	GreenfieldCID   string         `bson:"greenfield_cid,omitempty" json:"greenfield_cid,omitempty"`
	Timestamp       time.Time      `bson:"timestamp" json:"timestamp"`
}

// MoltbotStats is the public activity-feed summary.
type MoltbotStats struct {
	TotalActivities    int64  `json:"total_activities"`
	DietSuggestions    int64  `json:"diet_suggestions"`
	AlertVerifications int64  `json:"alert_verifications"`
	Uptime             string `json:"uptime"`
	AgentStatus        string `json:"agent_status"`
}
