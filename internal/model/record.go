package model

import "time"

// Vaccination record statuses
const (
	RecordStatusPending      = "pending"
	RecordStatusAdministered = "administered"
	RecordStatusMissed       = "missed"
	RecordStatusCompleted    = "completed"
)

// RecordTaken reports whether a record with the given status counts as a received dose.
func RecordTaken(status string) bool {
	return status == RecordStatusAdministered || status == RecordStatusCompleted
}

type VaccinationRecord struct {
	ID                int64     `json:"id" db:"id"`
	PatientID         int64     `json:"patient_id" db:"patient_id"`
	VaccineID         int64     `json:"vaccine_id" db:"vaccine_id"`
	HospitalID        *int64    `json:"hospital_id,omitempty" db:"hospital_id"`
	DateAdministered  *Date     `json:"date_administered,omitempty" db:"date_administered"`
	Status            string    `json:"status" db:"status"`
	CertificateIssued bool      `json:"certificate_issued" db:"certificate_issued"`
	CertificateNumber *string   `json:"certificate_number,omitempty" db:"certificate_number"`
	CertificateKey    *string   `json:"-" db:"certificate_key"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// HistoryEntry is a record joined with vaccine and hospital names.
type HistoryEntry struct {
	ID                int64   `json:"id" db:"id"`
	VaccineID         int64   `json:"vaccine_id" db:"vaccine_id"`
	VaccineName       *string `json:"vaccine_name" db:"vaccine_name"`
	HospitalName      *string `json:"hospital_name" db:"hospital_name"`
	DateAdministered  *Date   `json:"date_administered" db:"date_administered"`
	Status            string  `json:"status" db:"status"`
	CertificateIssued bool    `json:"certificate_issued" db:"certificate_issued"`
}

type RecordVaccineRequest struct {
	// Identifier is the patient's phone number or aadhaar number.
	Identifier  string `json:"identifier" binding:"required"`
	VaccineID   *int64 `json:"vaccineId"`
	VaccineName string `json:"vaccineName"`
	HospitalID  *int64 `json:"hospitalId"`
}

type RecordVaccineResponse struct {
	Message  string `json:"message"`
	Patient  string `json:"patient"`
	RecordID int64  `json:"record_id"`
}

// VaccineAdministered is the payload of the vaccine.administered event.
type VaccineAdministered struct {
	RecordID     int64  `json:"record_id"`
	PatientID    int64  `json:"patient_id"`
	PatientName  string `json:"patient_name"`
	PatientEmail string `json:"patient_email"`
	VaccineID    int64  `json:"vaccine_id"`
	VaccineName  string `json:"vaccine_name"`
	HospitalID   int64  `json:"hospital_id"`
	Date         Date   `json:"date"`
}
