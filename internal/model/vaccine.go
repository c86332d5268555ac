package model

import "time"

type Vaccine struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	TimingLabel     *string   `json:"timing_label,omitempty" db:"timing_label"`
	Description     *string   `json:"description,omitempty" db:"description"`
	AgeRequiredDays *int      `json:"age_required_days,omitempty" db:"age_required_days"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

type CreateVaccineRequest struct {
	Name            string  `json:"name" binding:"required"`
	TimingLabel     *string `json:"timing_label"`
	Description     *string `json:"description"`
	AgeRequiredDays *int    `json:"age_required_days" binding:"omitempty,min=0"`
}
