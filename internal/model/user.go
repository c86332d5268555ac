package model

import "time"

// Roles
const (
	RolePatient = "patient"
	RoleNurse   = "nurse"
	RoleAdmin   = "admin"
)

// User status constants
const (
	UserStatusActive   = "active"
	UserStatusPending  = "pending"
	UserStatusRejected = "rejected"
)

// User is any account: patient, nurse or admin.
type User struct {
	ID               int64     `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Email            string    `json:"email" db:"email"`
	PasswordHash     string    `json:"-" db:"password_hash"`
	Role             string    `json:"role" db:"role"`
	Phone            *string   `json:"phone,omitempty" db:"phone"`
	Aadhaar          *string   `json:"aadhaar,omitempty" db:"aadhaar"`
	ProfilePic       *string   `json:"profile_pic,omitempty" db:"profile_pic"`
	Status           string    `json:"status" db:"status"`
	AdmitID          *string   `json:"admit_id,omitempty" db:"admit_id"`
	TrnaID           *string   `json:"trna_id,omitempty" db:"trna_id"`
	HospitalLocation *string   `json:"hospital_location,omitempty" db:"hospital_location"`
	DOB              *Date     `json:"dob,omitempty" db:"dob"`
	Gender           *string   `json:"gender,omitempty" db:"gender"`
	Address          *string   `json:"address,omitempty" db:"address"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// IsPatient reports whether the account is a patient.
func (u *User) IsPatient() bool { return u.Role == RolePatient }

// UserFilter represents user search parameters
type UserFilter struct {
	Role   string `form:"role" binding:"omitempty,oneof=patient nurse admin"`
	Status string `form:"status" binding:"omitempty,oneof=active pending rejected"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active pending rejected"`
}

// PatientUpdate carries the fields a nurse may change on a patient profile.
type PatientUpdate struct {
	Name    string  `json:"name" binding:"required"`
	Phone   *string `json:"phone"`
	Aadhaar *string `json:"aadhaar"`
	DOB     *Date   `json:"dob"`
	Gender  *string `json:"gender"`
	Address *string `json:"address"`
}

// PatientDetails is a patient profile with its vaccination history.
type PatientDetails struct {
	Patient      *User          `json:"patient"`
	Vaccinations []*HistoryEntry `json:"vaccinations"`
}
