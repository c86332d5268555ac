package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository"
)

const vaccineColumns = `id, name, timing_label, description, age_required_days, created_at`

type vaccineRepository struct {
	BaseRepository
}

func NewVaccineRepository(base BaseRepository) repository.VaccineRepository {
	return &vaccineRepository{base}
}

func (r *vaccineRepository) List(ctx context.Context) ([]*model.Vaccine, error) {
	query := `SELECT ` + vaccineColumns + ` FROM vaccines ORDER BY age_required_days NULLS LAST, name`

	vaccines := []*model.Vaccine{}
	if err := r.db.SelectContext(ctx, &vaccines, query); err != nil {
		return nil, fmt.Errorf("failed to list vaccines: %w", err)
	}
	return vaccines, nil
}

func (r *vaccineRepository) GetByID(ctx context.Context, id int64) (*model.Vaccine, error) {
	var v model.Vaccine
	if err := r.db.GetContext(ctx, &v, `SELECT `+vaccineColumns+` FROM vaccines WHERE id = $1`, id); err != nil {
		return nil, wrapError(err, "vaccine", "get vaccine")
	}
	return &v, nil
}

func (r *vaccineRepository) GetByName(ctx context.Context, name string) (*model.Vaccine, error) {
	query := `SELECT ` + vaccineColumns + ` FROM vaccines WHERE name = $1 ORDER BY id LIMIT 1`

	var v model.Vaccine
	if err := r.db.GetContext(ctx, &v, query, name); err != nil {
		return nil, wrapError(err, "vaccine", "get vaccine by name")
	}
	return &v, nil
}

func (r *vaccineRepository) Create(ctx context.Context, v *model.Vaccine) error {
	query := `
		INSERT INTO vaccines (name, timing_label, description, age_required_days)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, v.Name, v.TimingLabel, v.Description, v.AgeRequiredDays).
		Scan(&v.ID, &v.CreatedAt)
	return wrapError(err, "vaccine", "create vaccine")
}

func (r *vaccineRepository) FindOrCreate(ctx context.Context, name string) (*model.Vaccine, error) {
	v, err := r.GetByName(ctx, name)
	if err == nil {
		return v, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	v = &model.Vaccine{Name: name}
	if err := r.Create(ctx, v); err != nil {
		// lost a race against a concurrent insert
		if isConflict(err) {
			return r.GetByName(ctx, name)
		}
		return nil, err
	}
	return v, nil
}
