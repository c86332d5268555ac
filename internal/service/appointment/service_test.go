package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository/mocks"
	"github.com/jwalitptl/arogyavax/pkg/auth"
	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
	"github.com/jwalitptl/arogyavax/pkg/messaging"
	"github.com/jwalitptl/arogyavax/pkg/metrics"
)

type fixture struct {
	svc       *Service
	repo      *mocks.MockAppointmentRepository
	users     *mocks.MockUserRepository
	vaccines  *mocks.MockVaccineRepository
	hospitals *mocks.MockHospitalRepository
	events    *mocks.MockPublisher
	metrics   *metrics.Metrics
}

func newFixture() *fixture {
	f := &fixture{
		repo:      new(mocks.MockAppointmentRepository),
		users:     new(mocks.MockUserRepository),
		vaccines:  new(mocks.MockVaccineRepository),
		hospitals: new(mocks.MockHospitalRepository),
		events:    new(mocks.MockPublisher),
		metrics:   metrics.NewMetrics("appointment_test", prometheus.NewRegistry()),
	}
	f.svc = NewService(f.repo, f.users, f.vaccines, f.hospitals, f.events, f.metrics)
	f.svc.now = func() time.Time { return time.Date(2024, 5, 1, 22, 30, 0, 0, time.UTC) }
	return f
}

func validRequest(date string) *model.CreateAppointmentRequest {
	return &model.CreateAppointmentRequest{
		PatientID:       7,
		VaccineID:       2,
		HospitalID:      1,
		AppointmentDate: date,
		AppointmentTime: "10:30",
	}
}

func TestService_CreateAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("today is allowed", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByID", ctx, int64(7)).Return(&model.User{ID: 7, Role: model.RolePatient}, nil)
		f.vaccines.On("GetByID", ctx, int64(2)).Return(&model.Vaccine{ID: 2}, nil)
		f.hospitals.On("GetByID", ctx, int64(1)).Return(&model.Hospital{ID: 1}, nil)
		f.repo.On("Create", ctx, mock.MatchedBy(func(a *model.Appointment) bool {
			return a.Status == model.AppointmentStatusScheduled && a.AppointmentDate.String() == "2024-05-01"
		})).Return(nil)
		f.events.On("Publish", ctx, messaging.EventAppointmentCreated, mock.Anything).Return(nil)

		apt, err := f.svc.CreateAppointment(ctx, validRequest("2024-05-01"))
		require.NoError(t, err)
		assert.Equal(t, "10:30", apt.AppointmentTime)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AppointmentsCreated))
	})

	t.Run("past date", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.CreateAppointment(ctx, validRequest("2024-04-30"))
		assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("malformed date", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.CreateAppointment(ctx, validRequest("01/05/2024"))
		assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
	})

	t.Run("not a patient", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByID", ctx, int64(7)).Return(&model.User{ID: 7, Role: model.RoleNurse}, nil)
		_, err := f.svc.CreateAppointment(ctx, validRequest("2024-06-01"))
		assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
	})

	t.Run("patient booking for someone else", func(t *testing.T) {
		f := newFixture()
		pctx := auth.WithClaims(ctx, &auth.Claims{UserID: 8, Role: model.RolePatient})
		_, err := f.svc.CreateAppointment(pctx, validRequest("2024-06-01"))
		assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
		f.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown vaccine", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByID", ctx, int64(7)).Return(&model.User{ID: 7, Role: model.RolePatient}, nil)
		f.vaccines.On("GetByID", ctx, int64(2)).Return(nil, apperrors.NotFound("vaccine", nil))
		_, err := f.svc.CreateAppointment(ctx, validRequest("2024-06-01"))
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		from    model.AppointmentStatus
		to      model.AppointmentStatus
		wantErr bool
	}{
		{"check in", model.AppointmentStatusScheduled, model.AppointmentStatusCheckedIn, false},
		{"cancel scheduled", model.AppointmentStatusScheduled, model.AppointmentStatusCancelled, false},
		{"complete", model.AppointmentStatusCheckedIn, model.AppointmentStatusCompleted, false},
		{"skip check in", model.AppointmentStatusScheduled, model.AppointmentStatusCompleted, true},
		{"reopen cancelled", model.AppointmentStatusCancelled, model.AppointmentStatusScheduled, true},
		{"complete twice", model.AppointmentStatusCompleted, model.AppointmentStatusCompleted, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.repo.On("GetByID", ctx, int64(3)).Return(&model.Appointment{ID: 3, PatientID: 7, Status: tt.from}, nil)
			f.repo.On("UpdateStatus", ctx, int64(3), tt.from, tt.to).Return(nil)
			f.events.On("Publish", ctx, messaging.EventAppointmentStatus, StatusChanged{
				AppointmentID: 3, PatientID: 7, From: tt.from, To: tt.to,
			}).Return(nil)

			apt, err := f.svc.UpdateStatus(ctx, 3, tt.to)
			if tt.wantErr {
				assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
				f.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, apt.Status)
			f.events.AssertExpectations(t)
		})
	}
}

func TestService_UpdateStatus_LostRace(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.repo.On("GetByID", ctx, int64(3)).Return(&model.Appointment{ID: 3, Status: model.AppointmentStatusScheduled}, nil)
	f.repo.On("UpdateStatus", ctx, int64(3), model.AppointmentStatusScheduled, model.AppointmentStatusCheckedIn).
		Return(apperrors.Conflict("appointment status changed concurrently", nil))

	_, err := f.svc.UpdateStatus(ctx, 3, model.AppointmentStatusCheckedIn)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	f.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ListByDate(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to today", func(t *testing.T) {
		f := newFixture()
		today, _ := model.ParseDate("2024-05-01")
		f.repo.On("ListByDate", ctx, today, int64(0)).Return([]*model.AppointmentView{}, nil)

		_, err := f.svc.ListByDate(ctx, model.AppointmentFilter{})
		require.NoError(t, err)
		f.repo.AssertExpectations(t)
	})

	t.Run("explicit date and hospital", func(t *testing.T) {
		f := newFixture()
		day, _ := model.ParseDate("2024-05-09")
		f.repo.On("ListByDate", ctx, day, int64(4)).Return([]*model.AppointmentView{{}}, nil)

		got, err := f.svc.ListByDate(ctx, model.AppointmentFilter{Date: "2024-05-09", HospitalID: 4})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}
