package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository"
)

type statsRepository struct {
	BaseRepository
}

func NewStatsRepository(base BaseRepository) repository.StatsRepository {
	return &statsRepository{base}
}

func (r *statsRepository) AdminStats(ctx context.Context, today model.Date) (*model.AdminStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = 'patient') AS patients,
			(SELECT COUNT(*) FROM users WHERE role = 'nurse') AS nurses,
			(SELECT COUNT(*) FROM hospitals) AS hospitals,
			(SELECT COUNT(*) FROM vaccination_records WHERE status IN ('administered', 'completed')) AS vaccinations,
			(SELECT COUNT(*) FROM users WHERE status = 'pending') AS pending_approvals,
			(SELECT COUNT(*) FROM appointments WHERE appointment_date = $1) AS appointments_today
	`

	var stats model.AdminStats
	if err := r.db.GetContext(ctx, &stats, query, today); err != nil {
		return nil, fmt.Errorf("failed to get admin stats: %w", err)
	}
	return &stats, nil
}
