package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository/mocks"
	"github.com/jwalitptl/arogyavax/internal/service/audit"
	"github.com/jwalitptl/arogyavax/pkg/auth"
	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
)

type fixture struct {
	svc       *Service
	users     *mocks.MockUserRepository
	hospitals *mocks.MockHospitalRepository
	stats     *mocks.MockStatsRepository
	audits    *mocks.MockAuditRepository
}

func newFixture() *fixture {
	f := &fixture{
		users:     new(mocks.MockUserRepository),
		hospitals: new(mocks.MockHospitalRepository),
		stats:     new(mocks.MockStatsRepository),
		audits:    new(mocks.MockAuditRepository),
	}
	f.svc = NewService(f.users, f.hospitals, f.stats, audit.NewService(f.audits))
	return f
}

func adminCtx() context.Context {
	ctx := auth.WithClaims(context.Background(), &auth.Claims{UserID: 1, Role: model.RoleAdmin})
	return auth.WithClientIP(ctx, "10.0.0.5")
}

func TestService_Stats_UsesToday(t *testing.T) {
	f := newFixture()
	f.svc.now = func() time.Time { return time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC) }
	ctx := context.Background()
	day, _ := model.ParseDate("2024-02-29")
	f.stats.On("AdminStats", ctx, day).Return(&model.AdminStats{Patients: 3}, nil)

	got, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Patients)
}

func TestService_UpdateUserStatus(t *testing.T) {
	ctx := adminCtx()

	t.Run("approves nurse and audits with actor", func(t *testing.T) {
		f := newFixture()
		f.users.On("UpdateStatus", ctx, int64(5), model.UserStatusActive).Return(nil)
		f.audits.On("Create", ctx, mock.MatchedBy(func(l *model.AuditLog) bool {
			return l.Action == model.AuditActionUserStatus &&
				*l.PerformedBy == 1 && *l.EntityID == 5 && *l.IPAddress == "10.0.0.5"
		})).Return(nil)

		require.NoError(t, f.svc.UpdateUserStatus(ctx, 5, model.UserStatusActive))
		f.audits.AssertExpectations(t)
	})

	t.Run("invalid status", func(t *testing.T) {
		f := newFixture()
		err := f.svc.UpdateUserStatus(ctx, 5, "banned")
		assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
	})

	t.Run("own account", func(t *testing.T) {
		f := newFixture()
		err := f.svc.UpdateUserStatus(ctx, 1, model.UserStatusRejected)
		assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
		f.users.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_DeleteUser(t *testing.T) {
	ctx := adminCtx()

	t.Run("missing user is not audited", func(t *testing.T) {
		f := newFixture()
		f.users.On("Delete", ctx, int64(8)).Return(apperrors.NotFound("user", nil))
		err := f.svc.DeleteUser(ctx, 8)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
		f.audits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("deletes", func(t *testing.T) {
		f := newFixture()
		f.users.On("Delete", ctx, int64(8)).Return(nil)
		f.audits.On("Create", ctx, mock.Anything).Return(nil)
		require.NoError(t, f.svc.DeleteUser(ctx, 8))
		f.audits.AssertNumberOfCalls(t, "Create", 1)
	})
}

func TestService_Hospitals(t *testing.T) {
	ctx := adminCtx()
	f := newFixture()
	f.hospitals.On("List", ctx, false).Return([]*model.Hospital{{ID: 1}, {ID: 2}}, nil)
	f.hospitals.On("SetApproval", ctx, int64(2), true).Return(nil)
	f.audits.On("Create", ctx, mock.MatchedBy(func(l *model.AuditLog) bool {
		return *l.Details == "hospital approved"
	})).Return(nil)

	all, err := f.svc.ListHospitals(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	require.NoError(t, f.svc.SetHospitalApproval(ctx, 2, true))
	f.audits.AssertExpectations(t)
}

func TestService_AuditLogs_Paginates(t *testing.T) {
	ctx := adminCtx()
	f := newFixture()
	f.audits.On("List", ctx, model.AuditFilter{
		Pagination: model.Pagination{Limit: 200, Offset: 0},
		Action:     "user.delete",
	}).Return([]*model.AuditLog{{ID: 1}}, int64(1), nil)

	page, err := f.svc.AuditLogs(ctx, model.AuditFilter{
		Pagination: model.Pagination{Limit: 1000, Offset: -3},
		Action:     "user.delete",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 200, page.Limit)
}
