package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository"
	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
)

const appointmentViewSelect = `
	SELECT a.id, a.patient_id, a.vaccine_id, a.hospital_id, a.appointment_date, a.appointment_time,
	       a.status, a.created_at,
	       u.name AS patient_name, u.phone AS patient_phone, v.name AS vaccine_name, h.name AS hospital_name
	FROM appointments a
	LEFT JOIN users u ON a.patient_id = u.id
	LEFT JOIN vaccines v ON a.vaccine_id = v.id
	LEFT JOIN hospitals h ON a.hospital_id = h.id
`

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(base BaseRepository) repository.AppointmentRepository {
	return &appointmentRepository{base}
}

func (r *appointmentRepository) Create(ctx context.Context, a *model.Appointment) error {
	query := `
		INSERT INTO appointments (patient_id, vaccine_id, hospital_id, appointment_date, appointment_time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		a.PatientID,
		a.VaccineID,
		a.HospitalID,
		a.AppointmentDate,
		a.AppointmentTime,
		a.Status,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `
		SELECT id, patient_id, vaccine_id, hospital_id, appointment_date, appointment_time, status, created_at
		FROM appointments WHERE id = $1
	`
	var a model.Appointment
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		return nil, wrapError(err, "appointment", "get appointment")
	}
	return &a, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int64, from, to model.AppointmentStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE appointments SET status = $1 WHERE id = $2 AND status = $3`, to, id, from)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.Conflict("appointment status changed concurrently", nil)
	}
	return nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.AppointmentView, error) {
	query := appointmentViewSelect + `
		WHERE a.patient_id = $1
		ORDER BY a.appointment_date DESC, a.appointment_time DESC
	`
	views := []*model.AppointmentView{}
	if err := r.db.SelectContext(ctx, &views, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient appointments: %w", err)
	}
	return views, nil
}

func (r *appointmentRepository) ListByDate(ctx context.Context, date model.Date, hospitalID int64) ([]*model.AppointmentView, error) {
	query := appointmentViewSelect + ` WHERE a.appointment_date = $1`
	args := []interface{}{date}
	if hospitalID > 0 {
		query += ` AND a.hospital_id = $2`
		args = append(args, hospitalID)
	}
	query += ` ORDER BY a.appointment_time, a.id`

	views := []*model.AppointmentView{}
	if err := r.db.SelectContext(ctx, &views, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return views, nil
}
