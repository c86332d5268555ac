package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/arogyavax/internal/model"
)

// SeedData is the demo data written by the seeder.
type SeedData struct {
	Hospital    model.Hospital
	Users       []model.User
	Vaccines    []model.Vaccine
	StockPerJab int
	// AppointmentFor books one appointment on AppointmentDate for the user with this email.
	AppointmentFor  string
	AppointmentDate model.Date
}

type Seeder struct {
	BaseRepository
}

func NewSeeder(base BaseRepository) *Seeder {
	return &Seeder{base}
}

// Seed writes data in a single transaction. Existing users and vaccines are left untouched.
func (s *Seeder) Seed(ctx context.Context, data SeedData) error {
	return s.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, u := range data.Users {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO users (name, email, password_hash, role, status, phone, dob, hospital_location)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				ON CONFLICT (email) DO NOTHING
			`, u.Name, u.Email, u.PasswordHash, u.Role, u.Status, u.Phone, u.DOB, u.HospitalLocation); err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
			}
		}

		for _, v := range data.Vaccines {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO vaccines (name, timing_label, description, age_required_days)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT DO NOTHING
			`, v.Name, v.TimingLabel, v.Description, v.AgeRequiredDays); err != nil {
				return fmt.Errorf("failed to seed vaccine %s: %w", v.Name, err)
			}
		}

		var hospitalID int64
		err := tx.GetContext(ctx, &hospitalID, `SELECT id FROM hospitals WHERE name = $1 ORDER BY id LIMIT 1`, data.Hospital.Name)
		if isNotFound(wrapError(err, "hospital", "")) {
			err = tx.GetContext(ctx, &hospitalID, `
				INSERT INTO hospitals (name, location, approved_status) VALUES ($1, $2, 1) RETURNING id
			`, data.Hospital.Name, data.Hospital.Location)
		}
		if err != nil {
			return fmt.Errorf("failed to seed hospital: %w", err)
		}

		if data.StockPerJab > 0 {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO stock (hospital_id, vaccine_id, quantity)
				SELECT $1, id, $2 FROM vaccines
				ON CONFLICT (hospital_id, vaccine_id) DO NOTHING
			`, hospitalID, data.StockPerJab); err != nil {
				return fmt.Errorf("failed to seed stock: %w", err)
			}
		}

		if data.AppointmentFor != "" {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO appointments (patient_id, vaccine_id, hospital_id, appointment_date, appointment_time, status)
				SELECT u.id, v.id, $2, $3, '10:00', 'scheduled'
				FROM users u, (SELECT id FROM vaccines ORDER BY id LIMIT 1) v
				WHERE u.email = $1
				AND NOT EXISTS (
					SELECT 1 FROM appointments a WHERE a.patient_id = u.id AND a.appointment_date = $3
				)
			`, data.AppointmentFor, hospitalID, data.AppointmentDate); err != nil {
				return fmt.Errorf("failed to seed appointment: %w", err)
			}
		}
		return nil
	})
}
