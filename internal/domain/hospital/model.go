// Package hospital holds the hospital directory and the nearest-hospital
// lookup used when routing emergency alerts.
package hospital

// Hospital is one facility in the network.
type Hospital struct {
	ID            string  `bson:"id" json:"id"`
	Name          string  `bson:"name" json:"name"`
	Address       string  `bson:"address" json:"address"`
	Latitude      float64 `bson:"latitude" json:"latitude"`
	Longitude     float64 `bson:"longitude" json:"longitude"`
	Capacity      int     `bson:"capacity" json:"capacity"`
	ActiveDevices int     `bson:"active_devices" json:"active_devices"`
}

// NearestHospital is the emergency routing view embedded in alerts.
// ETAMinutes is only set on agent-raised emergencies.
type NearestHospital struct {
	ID         string `bson:"id" json:"id"`
	Name       string `bson:"name" json:"name"`
	Address    string `bson:"address" json:"address"`
	Distance   string `bson:"distance" json:"distance"`
	ETAMinutes int    `bson:"eta_minutes,omitempty" json:"eta_minutes,omitempty"`
}

// Stats summarizes one hospital for the organization view. Device and health
// figures are synthetic demo values.
type Stats struct {
	HospitalID    string  `json:"hospital_id"`
	TotalPatients int64   `json:"total_patients"`
	TotalDoctors  int64   `json:"total_doctors"`
	TotalAlerts   int64   `json:"total_alerts"`
	ActiveDevices int     `json:"active_devices"`
	SystemHealth  float64 `json:"system_health"`
}
