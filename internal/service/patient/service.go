package patient

import (
	"context"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository"
	"github.com/jwalitptl/arogyavax/internal/service/reminder"
	"github.com/jwalitptl/arogyavax/pkg/auth"
	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
)

const unknownVaccine = "Unknown Vaccine"

type Service struct {
	records      repository.RecordRepository
	appointments repository.AppointmentRepository
	reminders    *reminder.Service
}

func NewService(records repository.RecordRepository, appointments repository.AppointmentRepository, reminders *reminder.Service) *Service {
	return &Service{
		records:      records,
		appointments: appointments,
		reminders:    reminders,
	}
}

// authorize lets patients read only their own data. Staff may read any patient.
func authorize(ctx context.Context, patientID int64) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return apperrors.Unauthorized("authentication required")
	}
	if claims.Role == model.RolePatient && claims.UserID != patientID {
		return apperrors.Forbidden("patients may only view their own records")
	}
	return nil
}

// History returns the patient's vaccination records, newest first.
func (s *Service) History(ctx context.Context, patientID int64) ([]*model.HistoryEntry, error) {
	if err := authorize(ctx, patientID); err != nil {
		return nil, err
	}
	entries, err := s.records.History(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return WithVaccineNames(entries), nil
}

// WithVaccineNames fills missing vaccine names with a placeholder.
func WithVaccineNames(entries []*model.HistoryEntry) []*model.HistoryEntry {
	for _, e := range entries {
		if e.VaccineName == nil || *e.VaccineName == "" {
			name := unknownVaccine
			e.VaccineName = &name
		}
	}
	return entries
}

func (s *Service) Reminders(ctx context.Context, patientID int64) ([]model.Reminder, error) {
	if err := authorize(ctx, patientID); err != nil {
		return nil, err
	}
	return s.reminders.ForPatient(ctx, patientID)
}

func (s *Service) Appointments(ctx context.Context, patientID int64) ([]*model.AppointmentView, error) {
	if err := authorize(ctx, patientID); err != nil {
		return nil, err
	}
	return s.appointments.ListByPatient(ctx, patientID)
}
