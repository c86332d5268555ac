package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository"
)

const userColumns = `id, name, email, password_hash, role, phone, aadhaar, profile_pic, status,
	admit_id, trna_id, hospital_location, dob, gender, address, created_at`

type userRepository struct {
	BaseRepository
}

func NewUserRepository(base BaseRepository) repository.UserRepository {
	return &userRepository{base}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (
			name, email, password_hash, role, phone, aadhaar, profile_pic, status,
			admit_id, trna_id, hospital_location, dob, gender, address
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Phone,
		user.Aadhaar,
		user.ProfilePic,
		user.Status,
		user.AdmitID,
		user.TrnaID,
		user.HospitalLocation,
		user.DOB,
		user.Gender,
		user.Address,
	).Scan(&user.ID, &user.CreatedAt)
	return wrapError(err, "user", "create user")
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, wrapError(err, "user", "get user")
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, wrapError(err, "user", "get user by email")
	}
	return &user, nil
}

func (r *userRepository) FindPatientByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE role = 'patient' AND (phone = $1 OR aadhaar = $1)
		ORDER BY id LIMIT 1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, identifier); err != nil {
		return nil, wrapError(err, "patient", "find patient")
	}
	return &user, nil
}

func (r *userRepository) SearchPatients(ctx context.Context, q string) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE role = 'patient' AND (
			name ILIKE $1 OR
			email ILIKE $1 OR
			phone ILIKE $1 OR
			aadhaar ILIKE $1
		)
		ORDER BY name`

	users := []*model.User{}
	if err := r.db.SelectContext(ctx, &users, query, "%"+q+"%"); err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return users, nil
}

func (r *userRepository) UpdatePatient(ctx context.Context, id int64, u *model.PatientUpdate) error {
	query := `
		UPDATE users SET
			name = $1,
			phone = $2,
			aadhaar = $3,
			dob = $4,
			gender = $5,
			address = $6
		WHERE id = $7 AND role = 'patient'
	`

	result, err := r.db.ExecContext(ctx, query,
		u.Name,
		u.Phone,
		u.Aadhaar,
		u.DOB,
		u.Gender,
		u.Address,
		id,
	)
	if err != nil {
		return wrapError(err, "patient", "update patient")
	}
	return requireAffected(result, "patient")
}

func (r *userRepository) List(ctx context.Context, filter model.UserFilter) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE 1=1`
	var args []interface{}

	if filter.Role != "" {
		args = append(args, filter.Role)
		query += fmt.Sprintf(" AND role = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC, id DESC"

	users := []*model.User{}
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) ListPatientsWithDOB(ctx context.Context) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE role = 'patient' AND dob IS NOT NULL AND status = 'active'
		ORDER BY id`

	users := []*model.User{}
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return users, nil
}

func (r *userRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}
	return requireAffected(result, "user")
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return requireAffected(result, "user")
}
