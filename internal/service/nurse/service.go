package nurse

import (
	"context"
	"strings"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository"
	"github.com/jwalitptl/arogyavax/internal/service/audit"
	"github.com/jwalitptl/arogyavax/internal/service/patient"
	"github.com/jwalitptl/arogyavax/internal/service/reminder"
	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
)

type Service struct {
	users     repository.UserRepository
	records   repository.RecordRepository
	reminders *reminder.Service
	auditor   *audit.Service
}

func NewService(users repository.UserRepository, records repository.RecordRepository, reminders *reminder.Service, auditor *audit.Service) *Service {
	return &Service{
		users:     users,
		records:   records,
		reminders: reminders,
		auditor:   auditor,
	}
}

// SearchPatients matches query against patient name, email, phone and aadhaar.
func (s *Service) SearchPatients(ctx context.Context, query string) ([]*model.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*model.User{}, nil
	}
	return s.users.SearchPatients(ctx, query)
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*model.PatientDetails, error) {
	user, err := s.getPatient(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := s.records.History(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.PatientDetails{
		Patient:      user,
		Vaccinations: patient.WithVaccineNames(history),
	}, nil
}

func (s *Service) UpdatePatient(ctx context.Context, id int64, update *model.PatientUpdate) (*model.User, error) {
	update.Name = strings.TrimSpace(update.Name)
	if update.Name == "" {
		return nil, apperrors.BadRequest("name is required", nil)
	}
	if err := s.users.UpdatePatient(ctx, id, update); err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, model.AuditActionPatientUpdate, model.AuditEntityUser, id, "patient profile updated")
	return s.getPatient(ctx, id)
}

func (s *Service) DueList(ctx context.Context) ([]model.DueEntry, error) {
	return s.reminders.DueList(ctx)
}

func (s *Service) getPatient(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsPatient() {
		return nil, apperrors.NotFound("patient", nil)
	}
	return user, nil
}
