package repository

import (
	"context"
	"time"

	"github.com/jwalitptl/arogyavax/internal/model"
)

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		GetByID(ctx context.Context, id int64) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		// FindPatientByIdentifier looks a patient up by phone or aadhaar number.
		FindPatientByIdentifier(ctx context.Context, identifier string) (*model.User, error)
		SearchPatients(ctx context.Context, query string) ([]*model.User, error)
		UpdatePatient(ctx context.Context, id int64, update *model.PatientUpdate) error
		List(ctx context.Context, filter model.UserFilter) ([]*model.User, error)
		ListPatientsWithDOB(ctx context.Context) ([]*model.User, error)
		UpdateStatus(ctx context.Context, id int64, status string) error
		Delete(ctx context.Context, id int64) error
	}

	VaccineRepository interface {
		List(ctx context.Context) ([]*model.Vaccine, error)
		GetByID(ctx context.Context, id int64) (*model.Vaccine, error)
		GetByName(ctx context.Context, name string) (*model.Vaccine, error)
		Create(ctx context.Context, vaccine *model.Vaccine) error
		// FindOrCreate returns the vaccine with the given name, creating a bare one if none exists.
		FindOrCreate(ctx context.Context, name string) (*model.Vaccine, error)
	}

	HospitalRepository interface {
		List(ctx context.Context, approvedOnly bool) ([]*model.Hospital, error)
		GetByID(ctx context.Context, id int64) (*model.Hospital, error)
		Create(ctx context.Context, hospital *model.Hospital) error
		SetApproval(ctx context.Context, id int64, approved bool) error
		// Ensure returns the hospital with the given name, creating it approved if missing.
		Ensure(ctx context.Context, name, location string) (*model.Hospital, error)
	}

	RecordRepository interface {
		History(ctx context.Context, patientID int64) ([]*model.HistoryEntry, error)
		TakenVaccineIDs(ctx context.Context, patientID int64) ([]int64, error)
		TakenDoses(ctx context.Context) ([]model.TakenDose, error)
		// Administer decrements stock, inserts the record and completes open
		// appointments for the patient and vaccine in one transaction.
		Administer(ctx context.Context, record *model.VaccinationRecord) error
		GetCertificateSource(ctx context.Context, recordID int64) (*model.CertificateSource, error)
		// MarkCertificateIssued returns false when the record already carries a certificate.
		MarkCertificateIssued(ctx context.Context, recordID int64, number string, key *string) (bool, error)
	}

	StockRepository interface {
		List(ctx context.Context, hospitalID *int64) ([]*model.Stock, error)
		Add(ctx context.Context, hospitalID, vaccineID int64, quantity int) (*model.Stock, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		GetByID(ctx context.Context, id int64) (*model.Appointment, error)
		// UpdateStatus moves the appointment from one status to another; it fails
		// with a conflict when the current status is no longer from.
		UpdateStatus(ctx context.Context, id int64, from, to model.AppointmentStatus) error
		ListByPatient(ctx context.Context, patientID int64) ([]*model.AppointmentView, error)
		ListByDate(ctx context.Context, date model.Date, hospitalID int64) ([]*model.AppointmentView, error)
	}

	AuditRepository interface {
		Create(ctx context.Context, log *model.AuditLog) error
		List(ctx context.Context, filter model.AuditFilter) ([]*model.AuditLog, int64, error)
		DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	}

	AnnouncementRepository interface {
		List(ctx context.Context) ([]*model.Announcement, error)
		Create(ctx context.Context, announcement *model.Announcement) error
		Delete(ctx context.Context, id int64) error
	}

	StatsRepository interface {
		AdminStats(ctx context.Context, today model.Date) (*model.AdminStats, error)
	}
)
