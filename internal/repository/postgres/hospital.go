package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository"
)

type hospitalRepository struct {
	BaseRepository
}

func NewHospitalRepository(base BaseRepository) repository.HospitalRepository {
	return &hospitalRepository{base}
}

func (r *hospitalRepository) List(ctx context.Context, approvedOnly bool) ([]*model.Hospital, error) {
	query := `SELECT id, name, location, approved_status, user_id FROM hospitals`
	if approvedOnly {
		query += ` WHERE approved_status = 1`
	}
	query += ` ORDER BY name`

	hospitals := []*model.Hospital{}
	if err := r.db.SelectContext(ctx, &hospitals, query); err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	return hospitals, nil
}

func (r *hospitalRepository) GetByID(ctx context.Context, id int64) (*model.Hospital, error) {
	var h model.Hospital
	query := `SELECT id, name, location, approved_status, user_id FROM hospitals WHERE id = $1`
	if err := r.db.GetContext(ctx, &h, query, id); err != nil {
		return nil, wrapError(err, "hospital", "get hospital")
	}
	return &h, nil
}

func (r *hospitalRepository) Create(ctx context.Context, h *model.Hospital) error {
	query := `
		INSERT INTO hospitals (name, location, approved_status, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query, h.Name, h.Location, h.ApprovedStatus, h.UserID).Scan(&h.ID)
	return wrapError(err, "hospital", "create hospital")
}

func (r *hospitalRepository) SetApproval(ctx context.Context, id int64, approved bool) error {
	status := 0
	if approved {
		status = 1
	}
	result, err := r.db.ExecContext(ctx, `UPDATE hospitals SET approved_status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update hospital approval: %w", err)
	}
	return requireAffected(result, "hospital")
}

func (r *hospitalRepository) Ensure(ctx context.Context, name, location string) (*model.Hospital, error) {
	var h model.Hospital
	query := `SELECT id, name, location, approved_status, user_id FROM hospitals WHERE name = $1 ORDER BY id LIMIT 1`
	err := r.db.GetContext(ctx, &h, query, name)
	if err == nil {
		return &h, nil
	}
	if err = wrapError(err, "hospital", "get hospital by name"); !isNotFound(err) {
		return nil, err
	}

	h = model.Hospital{Name: name, Location: &location, ApprovedStatus: 1}
	if err := r.Create(ctx, &h); err != nil {
		return nil, err
	}
	return &h, nil
}
