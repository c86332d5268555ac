package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository"
	"github.com/jwalitptl/arogyavax/pkg/auth"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type Service struct {
	repo repository.AuditRepository
	now  func() time.Time
}

func NewService(repo repository.AuditRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Record writes an audit entry for the caller found in ctx. Failures are
// logged and never fail the audited operation.
func (s *Service) Record(ctx context.Context, action, entityType string, entityID int64, details string) {
	entry := &model.AuditLog{
		Action:     action,
		EntityType: strPtr(entityType),
		EntityID:   &entityID,
		Details:    strPtr(details),
		IPAddress:  strPtr(auth.ClientIPFromContext(ctx)),
	}
	if claims, ok := auth.ClaimsFromContext(ctx); ok {
		entry.PerformedBy = &claims.UserID
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		log.Error().Err(err).
			Str("action", action).
			Int64("entity_id", entityID).
			Msg("failed to write audit log")
	}
}

func (s *Service) List(ctx context.Context, filter model.AuditFilter) (*model.Page[*model.AuditLog], error) {
	filter.Normalize(defaultPageSize, maxPageSize)

	logs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &model.Page[*model.AuditLog]{
		Items:  logs,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

// Cleanup removes audit logs older than retentionDays.
func (s *Service) Cleanup(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, fmt.Errorf("invalid retention of %d days", retentionDays)
	}
	cutoff := s.now().AddDate(0, 0, -retentionDays)
	return s.repo.DeleteOlderThan(ctx, cutoff)
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
