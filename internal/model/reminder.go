package model

// Reminder statuses
const (
	ReminderOverdue = "overdue"
	ReminderDue     = "due"
	ReminderUrgent  = "urgent"
	ReminderSoon    = "soon"
)

// Alert levels
const (
	AlertDanger  = "danger"
	AlertSuccess = "success"
	AlertWarning = "warning"
	AlertInfo    = "info"
)

type Reminder struct {
	VaccineID  int64  `json:"vaccine_id"`
	Vaccine    string `json:"vaccine"`
	DueDate    Date   `json:"due_date"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	AlertLevel string `json:"alert_level"`
	DaysLeft   int    `json:"days_left"`
}

// Actionable reports whether the reminder should be pushed to the patient.
func (r Reminder) Actionable() bool {
	return r.Status == ReminderOverdue || r.Status == ReminderDue || r.Status == ReminderUrgent
}

// DueEntry is a reminder for one patient in the nurse due-list.
type DueEntry struct {
	PatientID    int64   `json:"patient_id"`
	PatientName  string  `json:"patient_name"`
	PatientPhone *string `json:"patient_phone,omitempty"`
	PatientEmail string  `json:"-"`
	Reminder
}

// TakenDose is the vaccine of one received dose.
type TakenDose struct {
	PatientID int64 `db:"patient_id"`
	VaccineID int64 `db:"vaccine_id"`
}
