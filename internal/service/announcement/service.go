package announcement

import (
	"context"
	"strings"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository"
	"github.com/jwalitptl/arogyavax/internal/service/audit"
	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
)

type Service struct {
	repo    repository.AnnouncementRepository
	auditor *audit.Service
}

func NewService(repo repository.AnnouncementRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) List(ctx context.Context) ([]*model.Announcement, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, req *model.CreateAnnouncementRequest) (*model.Announcement, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.BadRequest("title is required", nil)
	}
	a := &model.Announcement{Title: title, Message: req.Message}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, model.AuditActionAnnouncement, model.AuditEntityAnnouncement, a.ID, title)
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditor.Record(ctx, model.AuditActionAnnouncementDel, model.AuditEntityAnnouncement, id, "")
	return nil
}
