package model

type AdminStats struct {
	Patients          int64 `json:"patients" db:"patients"`
	Nurses            int64 `json:"nurses" db:"nurses"`
	Hospitals         int64 `json:"hospitals" db:"hospitals"`
	Vaccinations      int64 `json:"vaccinations" db:"vaccinations"`
	PendingApprovals  int64 `json:"pending_approvals" db:"pending_approvals"`
	AppointmentsToday int64 `json:"appointments_today" db:"appointments_today"`
}
