// Package telemetry simulates medical device readings, persists them, and
// feeds the live stream. Each patient's device reports exactly one vital:
// glucose for diabetics, heart rate otherwise.
package telemetry

import "time"

// Reading is a single device measurement. GlucoseLevel and HeartRate are
// pointers so the absent vital serializes as null, mirroring the device
// payloads.
type Reading struct {
	ID           string    `bson:"id" json:"id"`
	PatientID    string    `bson:"patient_id" json:"patient_id"`
	DeviceType   string    `bson:"device_type" json:"device_type"`
	GlucoseLevel *float64  `bson:"glucose_level" json:"glucose_level"`
	HeartRate    *int      `bson:"heart_rate" json:"heart_rate"`
	BatteryLevel int       `bson:"battery_level" json:"battery_level"`
	Timestamp    time.Time `bson:"timestamp" json:"timestamp"`
	IsCritical   bool      `bson:"is_critical" json:"is_critical"`
}

// LiveReading augments a fresh reading with patient context for the live
// telemetry feed.
type LiveReading struct {
	Reading
	PatientName string `json:"patient_name"`
	Condition   string `json:"condition"`
}
