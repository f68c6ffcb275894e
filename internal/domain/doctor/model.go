// Package doctor holds the doctor directory and the roster of patients
// assigned to each doctor.
package doctor

// Doctor is one clinician in the network.
type Doctor struct {
	ID             string   `bson:"id" json:"id"`
	UserID         string   `bson:"user_id" json:"user_id"`
	Name           string   `bson:"name" json:"name"`
	Specialization string   `bson:"specialization" json:"specialization"`
	HospitalID     string   `bson:"hospital_id" json:"hospital_id"`
	PatientIDs     []string `bson:"patient_ids" json:"patient_ids"`
}
