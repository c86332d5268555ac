package certificate

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository"
	"github.com/jwalitptl/arogyavax/internal/service/audit"
	"github.com/jwalitptl/arogyavax/internal/storage"
	"github.com/jwalitptl/arogyavax/pkg/auth"
	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
	"github.com/jwalitptl/arogyavax/pkg/messaging"
	"github.com/jwalitptl/arogyavax/pkg/metrics"
)

const (
	unknownVaccine  = "Unknown Vaccine"
	unknownHospital = "Unknown Hospital"
)

type Service struct {
	records repository.RecordRepository
	// store is nil when object storage is not configured.
	store         storage.Storage
	presignExpiry time.Duration
	events        messaging.Publisher
	auditor       *audit.Service
	metrics       *metrics.Metrics
}

func NewService(records repository.RecordRepository, store storage.Storage, presignExpiry time.Duration,
	events messaging.Publisher, auditor *audit.Service, m *metrics.Metrics) *Service {
	if presignExpiry <= 0 {
		presignExpiry = 15 * time.Minute
	}
	return &Service{
		records:       records,
		store:         store,
		presignExpiry: presignExpiry,
		events:        events,
		auditor:       auditor,
		metrics:       m,
	}
}

// Issue assigns a certificate to an administered record. Issuing twice
// returns the existing certificate.
func (s *Service) Issue(ctx context.Context, recordID int64) (*model.Certificate, error) {
	src, err := s.records.GetCertificateSource(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if src.CertificateIssued {
		return s.view(ctx, src)
	}
	if !model.RecordTaken(src.Status) {
		return nil, apperrors.Conflict("Vaccine has not been administered for this record.", nil)
	}

	number := "AV-" + strings.ToUpper(uuid.NewString())
	src.CertificateNumber = &number
	cert := toCertificate(src)

	var key *string
	if s.store != nil {
		k, err := s.upload(ctx, src.PatientID, cert)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		key = &k
	}

	issued, err := s.records.MarkCertificateIssued(ctx, recordID, number, key)
	if err != nil {
		return nil, err
	}
	if !issued {
		// Another request issued it first.
		src, err = s.records.GetCertificateSource(ctx, recordID)
		if err != nil {
			return nil, err
		}
		return s.view(ctx, src)
	}
	src.CertificateIssued = true
	src.CertificateKey = key

	if s.metrics != nil {
		s.metrics.CertificatesIssued.Inc()
	}
	if err := s.events.Publish(ctx, messaging.EventCertificateIssued, cert); err != nil {
		log.Warn().Err(err).Int64("record_id", recordID).Msg("failed to publish certificate.issued")
	}
	s.auditor.Record(ctx, model.AuditActionCertificate, model.AuditEntityRecord, recordID, number)

	return s.view(ctx, src)
}

// Get returns an issued certificate. Patients may only read their own.
func (s *Service) Get(ctx context.Context, recordID int64) (*model.Certificate, error) {
	src, err := s.records.GetCertificateSource(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if claims, ok := auth.ClaimsFromContext(ctx); ok && claims.Role == model.RolePatient && claims.UserID != src.PatientID {
		return nil, apperrors.Forbidden("patients may only view their own certificates")
	}
	if !src.CertificateIssued {
		return nil, apperrors.NotFound("Certificate", nil)
	}
	return s.view(ctx, src)
}

func (s *Service) upload(ctx context.Context, patientID int64, cert *model.Certificate) (string, error) {
	body, err := Render(cert)
	if err != nil {
		return "", fmt.Errorf("render certificate: %w", err)
	}
	key := fmt.Sprintf("certificates/%d/%s.txt", patientID, cert.CertificateNumber)
	err = s.store.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "text/plain; charset=utf-8",
		Metadata: map[string]string{
			"record-id": fmt.Sprint(cert.RecordID),
		},
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *Service) view(ctx context.Context, src *model.CertificateSource) (*model.Certificate, error) {
	cert := toCertificate(src)
	if s.store != nil && src.CertificateKey != nil {
		u, err := s.store.PresignGet(ctx, *src.CertificateKey, s.presignExpiry)
		if err != nil {
			log.Warn().Err(err).Int64("record_id", src.RecordID).Msg("failed to presign certificate")
		} else {
			cert.DownloadURL = &u
		}
	}
	return cert, nil
}

func toCertificate(src *model.CertificateSource) *model.Certificate {
	cert := &model.Certificate{
		RecordID:     src.RecordID,
		PatientName:  src.PatientName,
		VaccineName:  unknownVaccine,
		HospitalName: unknownHospital,
	}
	if src.CertificateNumber != nil {
		cert.CertificateNumber = *src.CertificateNumber
	}
	if src.VaccineName != nil {
		cert.VaccineName = *src.VaccineName
	}
	if src.HospitalName != nil {
		cert.HospitalName = *src.HospitalName
	}
	if src.DateAdministered != nil {
		cert.DateAdministered = *src.DateAdministered
	}
	return cert
}
