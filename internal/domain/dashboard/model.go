// Package dashboard serves the composed role views: one call per screen
// instead of a handful of list endpoints.
package dashboard

import (
	"github.com/omnihealth/guardian/internal/domain/alert"
	"github.com/omnihealth/guardian/internal/domain/diet"
	"github.com/omnihealth/guardian/internal/domain/doctor"
	"github.com/omnihealth/guardian/internal/domain/hospital"
	"github.com/omnihealth/guardian/internal/domain/patient"
	"github.com/omnihealth/guardian/internal/domain/telemetry"
)

// PatientView is the patient screen: profile, care team, recent history,
// and a fresh reading so the page never opens empty.
type PatientView struct {
	Patient        *patient.Patient     `json:"patient"`
	Doctor         *doctor.Doctor       `json:"doctor"`
	Readings       []*telemetry.Reading `json:"readings"`
	Alerts         []*alert.Alert       `json:"alerts"`
	DietPlans      []*diet.Plan         `json:"diet_plans"`
	CurrentReading *telemetry.Reading   `json:"current_reading"`
}

// DoctorView is the doctor screen: the assigned roster plus its recent
// alerts.
type DoctorView struct {
	Doctor           *doctor.Doctor     `json:"doctor"`
	Patients         []*patient.Patient `json:"patients"`
	Alerts           []*alert.Alert     `json:"alerts"`
	TotalPatients    int                `json:"total_patients"`
	CriticalPatients int                `json:"critical_patients"`
}

// SystemHealth carries the synthetic platform vitals on the organization
// screen.
type SystemHealth struct {
	Uptime            string `json:"uptime"`
	ActiveConnections int    `json:"active_connections"`
	DataSyncStatus    string `json:"data_sync_status"`
	BlockchainSync    string `json:"blockchain_sync"`
	LastBlock         int    `json:"last_block"`
}

// DeviceAnalytics carries the synthetic fleet counts on the organization
// screen.
type DeviceAnalytics struct {
	InsulinPumps    int `json:"insulin_pumps"`
	Pacemakers      int `json:"pacemakers"`
	GlucoseMonitors int `json:"glucose_monitors"`
}

// OrganizationView is the network-wide screen.
type OrganizationView struct {
	TotalPatients   int64                `json:"total_patients"`
	TotalDoctors    int64                `json:"total_doctors"`
	TotalHospitals  int64                `json:"total_hospitals"`
	TotalAlerts     int64                `json:"total_alerts"`
	Hospitals       []*hospital.Hospital `json:"hospitals"`
	SystemHealth    SystemHealth         `json:"system_health"`
	DeviceAnalytics DeviceAnalytics      `json:"device_analytics"`
}
