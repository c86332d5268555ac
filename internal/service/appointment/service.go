package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository"
	"github.com/jwalitptl/arogyavax/pkg/auth"
	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
	"github.com/jwalitptl/arogyavax/pkg/messaging"
	"github.com/jwalitptl/arogyavax/pkg/metrics"
)

type Service struct {
	repo      repository.AppointmentRepository
	users     repository.UserRepository
	vaccines  repository.VaccineRepository
	hospitals repository.HospitalRepository
	events    messaging.Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewService(repo repository.AppointmentRepository, users repository.UserRepository, vaccines repository.VaccineRepository,
	hospitals repository.HospitalRepository, events messaging.Publisher, m *metrics.Metrics) *Service {
	return &Service{
		repo:      repo,
		users:     users,
		vaccines:  vaccines,
		hospitals: hospitals,
		events:    events,
		metrics:   m,
		now:       time.Now,
	}
}

// StatusChanged is the payload of the appointment.status_changed event.
type StatusChanged struct {
	AppointmentID int64                   `json:"appointment_id"`
	PatientID     int64                   `json:"patient_id"`
	From          model.AppointmentStatus `json:"from"`
	To            model.AppointmentStatus `json:"to"`
}

func (s *Service) today() model.Date {
	return model.NewDate(s.now().UTC())
}

func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	date, err := model.ParseDate(req.AppointmentDate)
	if err != nil {
		return nil, apperrors.BadRequest(err.Error(), nil)
	}
	if date.Before(s.today().Time) {
		return nil, apperrors.BadRequest("appointment cannot be scheduled in the past", nil)
	}
	if strings.TrimSpace(req.AppointmentTime) == "" {
		return nil, apperrors.BadRequest("appointment_time is required", nil)
	}

	if err := s.validateRefs(ctx, req); err != nil {
		return nil, err
	}

	apt := &model.Appointment{
		PatientID:       req.PatientID,
		VaccineID:       req.VaccineID,
		HospitalID:      req.HospitalID,
		AppointmentDate: date,
		AppointmentTime: strings.TrimSpace(req.AppointmentTime),
		Status:          model.AppointmentStatusScheduled,
	}
	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.AppointmentsCreated.Inc()
	}
	s.publish(ctx, messaging.EventAppointmentCreated, apt)
	return apt, nil
}

func (s *Service) validateRefs(ctx context.Context, req *model.CreateAppointmentRequest) error {
	if claims, ok := auth.ClaimsFromContext(ctx); ok && claims.Role == model.RolePatient && claims.UserID != req.PatientID {
		return apperrors.Forbidden("patients may only book their own appointments")
	}
	patient, err := s.users.GetByID(ctx, req.PatientID)
	if err != nil {
		return err
	}
	if !patient.IsPatient() {
		return apperrors.BadRequest(fmt.Sprintf("user %d is not a patient", req.PatientID), nil)
	}
	if _, err := s.vaccines.GetByID(ctx, req.VaccineID); err != nil {
		return err
	}
	if _, err := s.hospitals.GetByID(ctx, req.HospitalID); err != nil {
		return err
	}
	return nil
}

// UpdateStatus moves an appointment along scheduled -> checked-in -> completed,
// or cancels it from either open state.
func (s *Service) UpdateStatus(ctx context.Context, id int64, to model.AppointmentStatus) (*model.Appointment, error) {
	apt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := apt.Status
	if !from.CanTransition(to) {
		return nil, apperrors.Conflict(fmt.Sprintf("cannot change appointment from %s to %s", from, to), nil)
	}
	if err := s.repo.UpdateStatus(ctx, id, from, to); err != nil {
		return nil, err
	}
	apt.Status = to

	s.publish(ctx, messaging.EventAppointmentStatus, StatusChanged{
		AppointmentID: id,
		PatientID:     apt.PatientID,
		From:          from,
		To:            to,
	})
	return apt, nil
}

// ListByDate returns appointments on the filter date, today when unset.
func (s *Service) ListByDate(ctx context.Context, filter model.AppointmentFilter) ([]*model.AppointmentView, error) {
	date := s.today()
	if filter.Date != "" {
		parsed, err := model.ParseDate(filter.Date)
		if err != nil {
			return nil, apperrors.BadRequest(err.Error(), nil)
		}
		date = parsed
	}
	return s.repo.ListByDate(ctx, date, filter.HospitalID)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*model.AppointmentView, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) publish(ctx context.Context, eventType string, payload interface{}) {
	if err := s.events.Publish(ctx, eventType, payload); err != nil {
		log.Warn().Err(err).Str("event", eventType).Msg("failed to publish appointment event")
	}
}
