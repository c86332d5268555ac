package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository"
	"github.com/jwalitptl/arogyavax/internal/service/audit"
	"github.com/jwalitptl/arogyavax/pkg/auth"
	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
)

type Service struct {
	users     repository.UserRepository
	hospitals repository.HospitalRepository
	stats     repository.StatsRepository
	auditor   *audit.Service
	now       func() time.Time
}

func NewService(users repository.UserRepository, hospitals repository.HospitalRepository, stats repository.StatsRepository, auditor *audit.Service) *Service {
	return &Service{
		users:     users,
		hospitals: hospitals,
		stats:     stats,
		auditor:   auditor,
		now:       time.Now,
	}
}

func (s *Service) Stats(ctx context.Context) (*model.AdminStats, error) {
	return s.stats.AdminStats(ctx, model.NewDate(s.now().UTC()))
}

func (s *Service) ListUsers(ctx context.Context, filter model.UserFilter) ([]*model.User, error) {
	return s.users.List(ctx, filter)
}

func (s *Service) UpdateUserStatus(ctx context.Context, id int64, status string) error {
	switch status {
	case model.UserStatusActive, model.UserStatusPending, model.UserStatusRejected:
	default:
		return apperrors.BadRequest(fmt.Sprintf("invalid status %q", status), nil)
	}
	if err := s.notSelf(ctx, id); err != nil {
		return err
	}
	if err := s.users.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.auditor.Record(ctx, model.AuditActionUserStatus, model.AuditEntityUser, id, "status set to "+status)
	return nil
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.notSelf(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.auditor.Record(ctx, model.AuditActionUserDelete, model.AuditEntityUser, id, "user deleted")
	return nil
}

// notSelf stops an admin from locking themselves out.
func (s *Service) notSelf(ctx context.Context, id int64) error {
	if claims, ok := auth.ClaimsFromContext(ctx); ok && claims.UserID == id {
		return apperrors.BadRequest("you cannot change your own account", nil)
	}
	return nil
}

// ListHospitals returns every hospital, approved or not.
func (s *Service) ListHospitals(ctx context.Context) ([]*model.Hospital, error) {
	return s.hospitals.List(ctx, false)
}

func (s *Service) SetHospitalApproval(ctx context.Context, id int64, approved bool) error {
	if err := s.hospitals.SetApproval(ctx, id, approved); err != nil {
		return err
	}

	details := "hospital rejected"
	if approved {
		details = "hospital approved"
	}
	s.auditor.Record(ctx, model.AuditActionHospitalApproval, model.AuditEntityHospital, id, details)
	return nil
}

func (s *Service) AuditLogs(ctx context.Context, filter model.AuditFilter) (*model.Page[*model.AuditLog], error) {
	return s.auditor.List(ctx, filter)
}
