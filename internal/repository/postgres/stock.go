package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository"
)

type stockRepository struct {
	BaseRepository
}

func NewStockRepository(base BaseRepository) repository.StockRepository {
	return &stockRepository{base}
}

func (r *stockRepository) List(ctx context.Context, hospitalID *int64) ([]*model.Stock, error) {
	query := `
		SELECT s.id, s.hospital_id, s.vaccine_id, v.name AS vaccine_name, s.quantity, s.updated_at
		FROM stock s
		LEFT JOIN vaccines v ON s.vaccine_id = v.id
	`
	var args []interface{}
	if hospitalID != nil {
		query += ` WHERE s.hospital_id = $1`
		args = append(args, *hospitalID)
	}
	query += ` ORDER BY v.name, s.hospital_id`

	stock := []*model.Stock{}
	if err := r.db.SelectContext(ctx, &stock, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list stock: %w", err)
	}
	return stock, nil
}

func (r *stockRepository) Add(ctx context.Context, hospitalID, vaccineID int64, quantity int) (s *model.Stock, err error) {
	start := time.Now()
	defer func() { r.observe("stock_add", start, err) }()

	query := `
		INSERT INTO stock (hospital_id, vaccine_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (hospital_id, vaccine_id)
		DO UPDATE SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING id, hospital_id, vaccine_id, quantity, updated_at
	`

	var row model.Stock
	if err := r.db.QueryRowxContext(ctx, query, hospitalID, vaccineID, quantity).StructScan(&row); err != nil {
		return nil, fmt.Errorf("failed to add stock: %w", err)
	}
	return &row, nil
}
