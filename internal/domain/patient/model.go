// Package patient holds the monitored patient roster.
package patient

import "strings"

// Conditions tracked by the platform.
const (
	ConditionDiabetesType1 = "diabetes_type1"
	ConditionDiabetesType2 = "diabetes_type2"
	ConditionHeart         = "heart_condition"
)

// Device types patients wear.
const (
	DeviceInsulinPump    = "insulin_pump"
	DevicePacemaker      = "pacemaker"
	DeviceGlucoseMonitor = "glucose_monitor"
)

// Patient is one monitored patient.
type Patient struct {
	ID               string `bson:"id" json:"id"`
	UserID           string `bson:"user_id" json:"user_id"`
	Name             string `bson:"name" json:"name"`
	Age              int    `bson:"age" json:"age"`
	Condition        string `bson:"condition" json:"condition"`
	DeviceType       string `bson:"device_type" json:"device_type"`
	AssignedDoctorID string `bson:"assigned_doctor_id,omitempty" json:"assigned_doctor_id,omitempty"`
	HospitalID       string `bson:"hospital_id,omitempty" json:"hospital_id,omitempty"`
}

// IsDiabetic reports whether the patient has either diabetes type.
func (p *Patient) IsDiabetic() bool {
	return strings.Contains(p.Condition, "diabetes")
}
