package worker

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// AuditCleaner deletes audit logs older than a retention window.
type AuditCleaner interface {
	Cleanup(ctx context.Context, retentionDays int) (int64, error)
}

type AuditCleanupWorker struct {
	auditor       AuditCleaner
	retentionDays int
}

func NewAuditCleanupWorker(auditor AuditCleaner, retentionDays int) *AuditCleanupWorker {
	return &AuditCleanupWorker{
		auditor:       auditor,
		retentionDays: retentionDays,
	}
}

// Run is a worker.Task.
func (w *AuditCleanupWorker) Run(ctx context.Context) error {
	rows, err := w.auditor.Cleanup(ctx, w.retentionDays)
	if err != nil {
		return fmt.Errorf("failed to cleanup audit logs: %w", err)
	}

	log.Info().Int64("rows", rows).Int("retention_days", w.retentionDays).Msg("cleaned up audit logs")
	return nil
}
