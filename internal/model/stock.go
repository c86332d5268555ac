package model

import "time"

type Stock struct {
	ID          int64     `json:"id" db:"id"`
	HospitalID  int64     `json:"hospital_id" db:"hospital_id"`
	VaccineID   int64     `json:"vaccine_id" db:"vaccine_id"`
	VaccineName *string   `json:"vaccine_name" db:"vaccine_name"`
	Quantity    int       `json:"quantity" db:"quantity"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type AddStockRequest struct {
	VaccineName string `json:"vaccineName" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
	HospitalID  *int64 `json:"hospitalId"`
}

// StockUpdated is the payload of the stock.updated event.
type StockUpdated struct {
	HospitalID int64  `json:"hospital_id"`
	VaccineID  int64  `json:"vaccine_id"`
	Vaccine    string `json:"vaccine"`
	Added      int    `json:"added"`
	Quantity   int    `json:"quantity"`
}
