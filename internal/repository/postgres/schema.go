package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is applied statement by statement at startup; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('patient', 'admin', 'nurse')),
		phone TEXT,
		aadhaar TEXT,
		profile_pic TEXT,
		status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'pending', 'rejected')),
		admit_id TEXT,
		trna_id TEXT,
		hospital_location TEXT,
		dob DATE,
		gender TEXT,
		address TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_phone ON users (phone)`,
	`CREATE INDEX IF NOT EXISTS idx_users_aadhaar ON users (aadhaar)`,
	`CREATE TABLE IF NOT EXISTS vaccines (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		timing_label TEXT,
		description TEXT,
		age_required_days INTEGER,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_vaccines_name_timing ON vaccines (name, COALESCE(timing_label, ''))`,
	`CREATE TABLE IF NOT EXISTS hospitals (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		location TEXT,
		approved_status INTEGER NOT NULL DEFAULT 0,
		user_id BIGINT REFERENCES users(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS vaccination_records (
		id BIGSERIAL PRIMARY KEY,
		patient_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		vaccine_id BIGINT NOT NULL REFERENCES vaccines(id),
		hospital_id BIGINT REFERENCES hospitals(id),
		date_administered DATE,
		status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'administered', 'missed', 'completed')),
		certificate_issued BOOLEAN NOT NULL DEFAULT FALSE,
		certificate_number TEXT UNIQUE,
		certificate_key TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_records_patient ON vaccination_records (patient_id)`,
	`CREATE TABLE IF NOT EXISTS stock (
		id BIGSERIAL PRIMARY KEY,
		hospital_id BIGINT NOT NULL REFERENCES hospitals(id) ON DELETE CASCADE,
		vaccine_id BIGINT NOT NULL REFERENCES vaccines(id) ON DELETE CASCADE,
		quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (hospital_id, vaccine_id)
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id BIGSERIAL PRIMARY KEY,
		patient_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		vaccine_id BIGINT NOT NULL REFERENCES vaccines(id),
		hospital_id BIGINT NOT NULL REFERENCES hospitals(id),
		appointment_date DATE NOT NULL,
		appointment_time TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'scheduled' CHECK (status IN ('scheduled', 'checked-in', 'completed', 'cancelled')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_date ON appointments (appointment_date)`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
		id BIGSERIAL PRIMARY KEY,
		action TEXT NOT NULL,
		details TEXT,
		performed_by BIGINT,
		entity_type TEXT,
		entity_id BIGINT,
		ip_address TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_logs_created_at ON audit_logs (created_at)`,
	`CREATE TABLE IF NOT EXISTS announcements (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		message TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// ApplySchema creates missing tables and indexes.
func ApplySchema(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i, err)
		}
	}
	return nil
}
