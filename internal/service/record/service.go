package record

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository"
	"github.com/jwalitptl/arogyavax/internal/service/audit"
	"github.com/jwalitptl/arogyavax/internal/service/catalogue"
	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
	"github.com/jwalitptl/arogyavax/pkg/messaging"
	"github.com/jwalitptl/arogyavax/pkg/metrics"
)

const msgAdministered = "Vaccine administered successfully!"

type Service struct {
	users     repository.UserRepository
	vaccines  repository.VaccineRepository
	records   repository.RecordRepository
	catalogue *catalogue.Service
	events    messaging.Publisher
	auditor   *audit.Service
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewService(users repository.UserRepository, vaccines repository.VaccineRepository, records repository.RecordRepository,
	catalogue *catalogue.Service, events messaging.Publisher, auditor *audit.Service, m *metrics.Metrics) *Service {
	return &Service{
		users:     users,
		vaccines:  vaccines,
		records:   records,
		catalogue: catalogue,
		events:    events,
		auditor:   auditor,
		metrics:   m,
		now:       time.Now,
	}
}

// RecordVaccine administers a dose to the patient matching the identifier.
func (s *Service) RecordVaccine(ctx context.Context, req *model.RecordVaccineRequest) (*model.RecordVaccineResponse, error) {
	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" {
		return nil, apperrors.BadRequest("identifier is required", nil)
	}
	patient, err := s.users.FindPatientByIdentifier(ctx, identifier)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("Patient", err)
		}
		return nil, err
	}

	vaccine, err := s.resolveVaccine(ctx, req)
	if err != nil {
		return nil, err
	}

	hospitalID, err := s.catalogue.ResolveHospital(ctx, req.HospitalID)
	if err != nil {
		return nil, err
	}

	today := model.NewDate(s.now().UTC())
	rec := &model.VaccinationRecord{
		PatientID:        patient.ID,
		VaccineID:        vaccine.ID,
		HospitalID:       &hospitalID,
		DateAdministered: &today,
		Status:           model.RecordStatusAdministered,
	}
	if err := s.records.Administer(ctx, rec); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.VaccinationsRecorded.Inc()
	}

	event := model.VaccineAdministered{
		RecordID:     rec.ID,
		PatientID:    patient.ID,
		PatientName:  patient.Name,
		PatientEmail: patient.Email,
		VaccineID:    vaccine.ID,
		VaccineName:  vaccine.Name,
		HospitalID:   hospitalID,
		Date:         today,
	}
	if err := s.events.Publish(ctx, messaging.EventVaccineAdministered, event); err != nil {
		log.Warn().Err(err).Int64("record_id", rec.ID).Msg("failed to publish vaccine.administered")
	}

	s.auditor.Record(ctx, model.AuditActionRecordVaccine, model.AuditEntityRecord, rec.ID,
		fmt.Sprintf("%s administered to patient %d", vaccine.Name, patient.ID))

	return &model.RecordVaccineResponse{
		Message:  msgAdministered,
		Patient:  patient.Name,
		RecordID: rec.ID,
	}, nil
}

func (s *Service) resolveVaccine(ctx context.Context, req *model.RecordVaccineRequest) (*model.Vaccine, error) {
	if req.VaccineID != nil && *req.VaccineID > 0 {
		v, err := s.vaccines.GetByID(ctx, *req.VaccineID)
		if err == nil {
			return v, nil
		}
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	name := strings.TrimSpace(req.VaccineName)
	if name == "" {
		return nil, apperrors.NotFound("Vaccine", nil)
	}
	v, err := s.vaccines.GetByName(ctx, name)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("Vaccine", err)
		}
		return nil, err
	}
	return v, nil
}
