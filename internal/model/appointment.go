package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCheckedIn AppointmentStatus = "checked-in"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusScheduled: {AppointmentStatusCheckedIn, AppointmentStatusCancelled},
	AppointmentStatusCheckedIn: {AppointmentStatusCompleted, AppointmentStatusCancelled},
}

// CanTransition reports whether an appointment may move from s to next.
func (s AppointmentStatus) CanTransition(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Appointment struct {
	ID              int64             `db:"id" json:"id"`
	PatientID       int64             `db:"patient_id" json:"patient_id"`
	VaccineID       int64             `db:"vaccine_id" json:"vaccine_id"`
	HospitalID      int64             `db:"hospital_id" json:"hospital_id"`
	AppointmentDate Date              `db:"appointment_date" json:"appointment_date"`
	AppointmentTime string            `db:"appointment_time" json:"appointment_time"`
	Status          AppointmentStatus `db:"status" json:"status"`
	CreatedAt       time.Time         `db:"created_at" json:"created_at"`
}

// AppointmentView is an appointment joined with patient and vaccine names.
type AppointmentView struct {
	Appointment
	PatientName  *string `db:"patient_name" json:"patient_name"`
	PatientPhone *string `db:"patient_phone" json:"patient_phone,omitempty"`
	VaccineName  *string `db:"vaccine_name" json:"vaccine_name"`
	HospitalName *string `db:"hospital_name" json:"hospital_name,omitempty"`
}

type CreateAppointmentRequest struct {
	PatientID       int64  `json:"patient_id" binding:"required,gt=0"`
	VaccineID       int64  `json:"vaccine_id" binding:"required,gt=0"`
	HospitalID      int64  `json:"hospital_id" binding:"required,gt=0"`
	AppointmentDate string `json:"appointment_date" binding:"required,isodate"`
	AppointmentTime string `json:"appointment_time" binding:"required"`
}

type UpdateAppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required,oneof=scheduled checked-in completed cancelled"`
}

type AppointmentFilter struct {
	Date       string `form:"date" binding:"omitempty,isodate"`
	HospitalID int64  `form:"hospital_id"`
}
