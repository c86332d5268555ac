package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository"
	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
)

type recordRepository struct {
	BaseRepository
}

func NewRecordRepository(base BaseRepository) repository.RecordRepository {
	return &recordRepository{base}
}

func (r *recordRepository) History(ctx context.Context, patientID int64) ([]*model.HistoryEntry, error) {
	query := `
		SELECT r.id, r.vaccine_id, v.name AS vaccine_name, h.name AS hospital_name,
		       r.date_administered, r.status, r.certificate_issued
		FROM vaccination_records r
		LEFT JOIN vaccines v ON r.vaccine_id = v.id
		LEFT JOIN hospitals h ON r.hospital_id = h.id
		WHERE r.patient_id = $1
		ORDER BY r.date_administered DESC NULLS LAST, r.id DESC
	`

	entries := []*model.HistoryEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	return entries, nil
}

func (r *recordRepository) TakenVaccineIDs(ctx context.Context, patientID int64) ([]int64, error) {
	query := `
		SELECT DISTINCT vaccine_id FROM vaccination_records
		WHERE patient_id = $1 AND status IN ('administered', 'completed')
	`

	ids := []int64{}
	if err := r.db.SelectContext(ctx, &ids, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to get taken vaccines: %w", err)
	}
	return ids, nil
}

func (r *recordRepository) TakenDoses(ctx context.Context) ([]model.TakenDose, error) {
	query := `
		SELECT DISTINCT patient_id, vaccine_id FROM vaccination_records
		WHERE status IN ('administered', 'completed')
	`

	doses := []model.TakenDose{}
	if err := r.db.SelectContext(ctx, &doses, query); err != nil {
		return nil, fmt.Errorf("failed to get taken doses: %w", err)
	}
	return doses, nil
}

func (r *recordRepository) Administer(ctx context.Context, rec *model.VaccinationRecord) (err error) {
	start := time.Now()
	defer func() { r.observe("administer", start, err) }()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if rec.HospitalID != nil {
			if err := decrementStock(ctx, tx, *rec.HospitalID, rec.VaccineID); err != nil {
				return err
			}
		}

		query := `
			INSERT INTO vaccination_records (patient_id, vaccine_id, hospital_id, date_administered, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`
		if err := tx.QueryRowxContext(ctx, query,
			rec.PatientID,
			rec.VaccineID,
			rec.HospitalID,
			rec.DateAdministered,
			rec.Status,
		).Scan(&rec.ID, &rec.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert vaccination record: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE appointments SET status = 'completed'
			WHERE patient_id = $1 AND vaccine_id = $2 AND status IN ('scheduled', 'checked-in')
		`, rec.PatientID, rec.VaccineID); err != nil {
			return fmt.Errorf("failed to complete appointments: %w", err)
		}
		return nil
	})
}

// decrementStock takes one unit when the hospital tracks stock for the vaccine.
// Untracked vaccines are not limited.
func decrementStock(ctx context.Context, tx *sqlx.Tx, hospitalID, vaccineID int64) error {
	var quantity int
	err := tx.QueryRowxContext(ctx, `
		SELECT quantity FROM stock WHERE hospital_id = $1 AND vaccine_id = $2 FOR UPDATE
	`, hospitalID, vaccineID).Scan(&quantity)
	if err != nil {
		if isNotFound(wrapError(err, "stock", "get stock")) {
			return nil
		}
		return fmt.Errorf("failed to get stock: %w", err)
	}
	if quantity <= 0 {
		return apperrors.Conflict("Out of stock", nil)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE stock SET quantity = quantity - 1, updated_at = NOW()
		WHERE hospital_id = $1 AND vaccine_id = $2
	`, hospitalID, vaccineID); err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	return nil
}

func (r *recordRepository) GetCertificateSource(ctx context.Context, recordID int64) (*model.CertificateSource, error) {
	query := `
		SELECT r.id, r.patient_id, r.status, r.certificate_issued, r.certificate_number, r.certificate_key,
		       u.name AS patient_name, v.name AS vaccine_name, h.name AS hospital_name, r.date_administered
		FROM vaccination_records r
		JOIN users u ON r.patient_id = u.id
		LEFT JOIN vaccines v ON r.vaccine_id = v.id
		LEFT JOIN hospitals h ON r.hospital_id = h.id
		WHERE r.id = $1
	`

	var src model.CertificateSource
	if err := r.db.GetContext(ctx, &src, query, recordID); err != nil {
		return nil, wrapError(err, "vaccination record", "get vaccination record")
	}
	return &src, nil
}

func (r *recordRepository) MarkCertificateIssued(ctx context.Context, recordID int64, number string, key *string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE vaccination_records
		SET certificate_issued = TRUE, certificate_number = $1, certificate_key = $2
		WHERE id = $3 AND certificate_issued = FALSE
	`, number, key, recordID)
	if err != nil {
		return false, wrapError(err, "certificate", "mark certificate issued")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows == 1, nil
}
