package model

type Hospital struct {
	ID             int64   `json:"id" db:"id"`
	Name           string  `json:"name" db:"name"`
	Location       *string `json:"location,omitempty" db:"location"`
	ApprovedStatus int     `json:"approved_status" db:"approved_status"`
	UserID         *int64  `json:"user_id,omitempty" db:"user_id"`
}

func (h *Hospital) Approved() bool { return h.ApprovedStatus == 1 }

type CreateHospitalRequest struct {
	Name     string  `json:"name" binding:"required"`
	Location *string `json:"location"`
}

type HospitalApprovalRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}
