package model

import "time"

type AuditLog struct {
	ID          int64     `json:"id" db:"id"`
	Action      string    `json:"action" db:"action"`
	Details     *string   `json:"details,omitempty" db:"details"`
	PerformedBy *int64    `json:"performed_by,omitempty" db:"performed_by"`
	EntityType  *string   `json:"entity_type,omitempty" db:"entity_type"`
	EntityID    *int64    `json:"entity_id,omitempty" db:"entity_id"`
	IPAddress   *string   `json:"ip_address,omitempty" db:"ip_address"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

const (
	// Action types
	AuditActionUserStatus       = "user.status"
	AuditActionUserDelete       = "user.delete"
	AuditActionHospitalApproval = "hospital.approval"
	AuditActionVaccineCreate    = "vaccine.create"
	AuditActionAnnouncement     = "announcement.create"
	AuditActionAnnouncementDel  = "announcement.delete"
	AuditActionRecordVaccine    = "record.create"
	AuditActionStockAdd         = "stock.add"
	AuditActionCertificate      = "certificate.issue"
	AuditActionPatientUpdate    = "patient.update"

	// Entity types
	AuditEntityUser         = "user"
	AuditEntityHospital     = "hospital"
	AuditEntityVaccine      = "vaccine"
	AuditEntityAnnouncement = "announcement"
	AuditEntityRecord       = "vaccination_record"
	AuditEntityStock        = "stock"
)

// AuditEntry is the input for writing one audit log row.
type AuditEntry struct {
	Action      string
	Details     string
	PerformedBy int64
	EntityType  string
	EntityID    int64
	IPAddress   string
}

type AuditFilter struct {
	Pagination
	Action string `form:"action"`
}
