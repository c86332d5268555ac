package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/arogyavax/internal/model"
	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
)

func newMock(t *testing.T) (BaseRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewBaseRepository(sqlx.NewDb(db, "sqlmock"), nil), mock
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }

func TestUserRepository_Create(t *testing.T) {
	base, mock := newMock(t)
	repo := NewUserRepository(base)
	ctx := context.Background()

	t.Run("assigns id", func(t *testing.T) {
		now := time.Now().UTC()
		mock.ExpectQuery("INSERT INTO users").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(42, now))

		u := &model.User{Name: "Asha", Email: "asha@example.com", PasswordHash: "h", Role: model.RolePatient, Status: model.UserStatusActive}
		require.NoError(t, repo.Create(ctx, u))
		assert.Equal(t, int64(42), u.ID)
		assert.Equal(t, now, u.CreatedAt)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value"})

		err := repo.Create(ctx, &model.User{Email: "asha@example.com"})
		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail(t *testing.T) {
	base, mock := newMock(t)
	repo := NewUserRepository(base)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "status", "dob", "created_at"}).
			AddRow(7, "Ravi", "ravi@example.com", "hash", "nurse", "pending", nil, time.Now())
		mock.ExpectQuery("SELECT (.+) FROM users WHERE LOWER\\(email\\)").
			WithArgs("ravi@example.com").
			WillReturnRows(rows)

		u, err := repo.GetByEmail(ctx, "ravi@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(7), u.ID)
		assert.Equal(t, model.UserStatusPending, u.Status)
		assert.Nil(t, u.DOB)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE LOWER\\(email\\)").
			WithArgs("missing@example.com").
			WillReturnError(sql.ErrNoRows)

		u, err := repo.GetByEmail(ctx, "missing@example.com")
		assert.Nil(t, u)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SearchPatients(t *testing.T) {
	base, mock := newMock(t)
	repo := NewUserRepository(base)

	dob := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("%987%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role", "status", "phone", "dob"}).
			AddRow(1, "Baby Rao", "rao@example.com", "patient", "active", "9876543210", dob))

	users, err := repo.SearchPatients(context.Background(), "987")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "2024-01-10", users[0].DOB.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateStatus_NotFound(t *testing.T) {
	base, mock := newMock(t)
	repo := NewUserRepository(base)

	mock.ExpectExec("UPDATE users SET status").
		WithArgs("active", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 99, "active")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_Administer(t *testing.T) {
	ctx := context.Background()
	today := model.NewDate(time.Now())

	newRecord := func() *model.VaccinationRecord {
		return &model.VaccinationRecord{
			PatientID:        3,
			VaccineID:        5,
			HospitalID:       int64Ptr(1),
			DateAdministered: &today,
			Status:           model.RecordStatusAdministered,
		}
	}

	t.Run("decrements tracked stock", func(t *testing.T) {
		base, mock := newMock(t)
		repo := NewRecordRepository(base)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT quantity FROM stock").
			WithArgs(int64(1), int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(3))
		mock.ExpectExec("UPDATE stock SET quantity = quantity - 1").
			WithArgs(int64(1), int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO vaccination_records").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(11, time.Now()))
		mock.ExpectExec("UPDATE appointments SET status = 'completed'").
			WithArgs(int64(3), int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		rec := newRecord()
		require.NoError(t, repo.Administer(ctx, rec))
		assert.Equal(t, int64(11), rec.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("untracked stock is not limited", func(t *testing.T) {
		base, mock := newMock(t)
		repo := NewRecordRepository(base)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT quantity FROM stock").WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("INSERT INTO vaccination_records").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(12, time.Now()))
		mock.ExpectExec("UPDATE appointments").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		require.NoError(t, repo.Administer(ctx, newRecord()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("out of stock rolls back", func(t *testing.T) {
		base, mock := newMock(t)
		repo := NewRecordRepository(base)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT quantity FROM stock").
			WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(0))
		mock.ExpectRollback()

		err := repo.Administer(ctx, newRecord())
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrConflict, appErr.Code)
		assert.Equal(t, "Out of stock", appErr.Message)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRecordRepository_MarkCertificateIssued(t *testing.T) {
	base, mock := newMock(t)
	repo := NewRecordRepository(base)

	mock.ExpectExec("UPDATE vaccination_records").
		WillReturnResult(sqlmock.NewResult(0, 0))

	issued, err := repo.MarkCertificateIssued(context.Background(), 4, "num", nil)
	require.NoError(t, err)
	assert.False(t, issued)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockRepository_Add(t *testing.T) {
	base, mock := newMock(t)
	repo := NewStockRepository(base)

	mock.ExpectQuery("INSERT INTO stock (.+) ON CONFLICT").
		WithArgs(int64(1), int64(2), 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "hospital_id", "vaccine_id", "quantity", "updated_at"}).
			AddRow(3, 1, 2, 25, time.Now()))

	s, err := repo.Add(context.Background(), 1, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 25, s.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepository_UpdateStatus_Concurrent(t *testing.T) {
	base, mock := newMock(t)
	repo := NewAppointmentRepository(base)

	mock.ExpectExec("UPDATE appointments SET status").
		WithArgs(model.AppointmentStatusCheckedIn, int64(8), model.AppointmentStatusScheduled).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 8, model.AppointmentStatusScheduled, model.AppointmentStatusCheckedIn)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepository_List(t *testing.T) {
	base, mock := newMock(t)
	repo := NewAuditRepository(base)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM audit_logs WHERE 1=1 AND action = \\$1").
		WithArgs("user.status").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery("SELECT (.+) FROM audit_logs WHERE 1=1 AND action = \\$1 ORDER BY created_at DESC, id DESC LIMIT \\$2 OFFSET \\$3").
		WithArgs("user.status", 2, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "action", "created_at"}).
			AddRow(3, "user.status", time.Now()).
			AddRow(2, "user.status", time.Now()))

	filter := model.AuditFilter{Action: "user.status", Pagination: model.Pagination{Limit: 2}}
	logs, total, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, logs, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHospitalRepository_Ensure_CreatesMissing(t *testing.T) {
	base, mock := newMock(t)
	repo := NewHospitalRepository(base)

	mock.ExpectQuery("SELECT (.+) FROM hospitals WHERE name = \\$1").
		WithArgs("City General").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO hospitals").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	h, err := repo.Ensure(context.Background(), "City General", "Downtown")
	require.NoError(t, err)
	assert.Equal(t, int64(1), h.ID)
	assert.True(t, h.Approved())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplySchema(t *testing.T) {
	base, mock := newMock(t)
	for range schema {
		mock.ExpectExec(".+").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	require.NoError(t, ApplySchema(context.Background(), base.GetDB()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeeder_Seed(t *testing.T) {
	data := SeedData{
		Hospital:        model.Hospital{Name: "City General"},
		Users:           []model.User{{Name: "John Doe", Email: "john@example.com", Role: model.RolePatient}},
		Vaccines:        []model.Vaccine{{Name: "BCG", TimingLabel: strPtr("At birth")}},
		StockPerJab:     50,
		AppointmentFor:  "john@example.com",
		AppointmentDate: model.Today(),
	}

	t.Run("creates missing hospital", func(t *testing.T) {
		base, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO vaccines").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectQuery("SELECT id FROM hospitals").WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("INSERT INTO hospitals").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectExec("INSERT INTO stock").WithArgs(7, 50).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO appointments").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		require.NoError(t, NewSeeder(base).Seed(context.Background(), data))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		base, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO users").WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		err := NewSeeder(base).Seed(context.Background(), data)
		assert.ErrorIs(t, err, sql.ErrConnDone)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
