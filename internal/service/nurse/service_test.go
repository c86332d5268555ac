package nurse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository/mocks"
	"github.com/jwalitptl/arogyavax/internal/service/audit"
	"github.com/jwalitptl/arogyavax/internal/service/reminder"
	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
)

type fixture struct {
	svc     *Service
	users   *mocks.MockUserRepository
	records *mocks.MockRecordRepository
	audits  *mocks.MockAuditRepository
}

func newFixture() *fixture {
	f := &fixture{
		users:   new(mocks.MockUserRepository),
		records: new(mocks.MockRecordRepository),
		audits:  new(mocks.MockAuditRepository),
	}
	f.audits.On("Create", mock.Anything, mock.Anything).Return(nil)
	rem := reminder.NewService(f.users, new(mocks.MockVaccineRepository), f.records)
	f.svc = NewService(f.users, f.records, rem, audit.NewService(f.audits))
	return f
}

func TestService_SearchPatients_EmptyQuery(t *testing.T) {
	f := newFixture()
	got, err := f.svc.SearchPatients(context.Background(), "   ")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	f.users.AssertNotCalled(t, "SearchPatients", mock.Anything, mock.Anything)
}

func TestService_SearchPatients(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.users.On("SearchPatients", ctx, "asha").Return([]*model.User{{ID: 7}}, nil)

	got, err := f.svc.SearchPatients(ctx, " asha ")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestService_GetPatient(t *testing.T) {
	ctx := context.Background()

	t.Run("with history", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByID", ctx, int64(7)).Return(&model.User{ID: 7, Role: model.RolePatient}, nil)
		f.records.On("History", ctx, int64(7)).Return([]*model.HistoryEntry{{ID: 1}}, nil)

		got, err := f.svc.GetPatient(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), got.Patient.ID)
		require.Len(t, got.Vaccinations, 1)
		assert.Equal(t, "Unknown Vaccine", *got.Vaccinations[0].VaccineName)
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByID", ctx, int64(9)).Return(nil, apperrors.NotFound("user", nil))
		_, err := f.svc.GetPatient(ctx, 9)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("staff account is not a patient", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByID", ctx, int64(2)).Return(&model.User{ID: 2, Role: model.RoleNurse}, nil)
		_, err := f.svc.GetPatient(ctx, 2)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
		f.records.AssertNotCalled(t, "History", mock.Anything, mock.Anything)
	})
}

func TestService_UpdatePatient(t *testing.T) {
	ctx := context.Background()

	t.Run("updates and audits", func(t *testing.T) {
		f := newFixture()
		update := &model.PatientUpdate{Name: " Asha K "}
		f.users.On("UpdatePatient", ctx, int64(7), mock.MatchedBy(func(u *model.PatientUpdate) bool {
			return u.Name == "Asha K"
		})).Return(nil)
		f.users.On("GetByID", ctx, int64(7)).Return(&model.User{ID: 7, Name: "Asha K", Role: model.RolePatient}, nil)

		got, err := f.svc.UpdatePatient(ctx, 7, update)
		require.NoError(t, err)
		assert.Equal(t, "Asha K", got.Name)
		f.audits.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("missing patient", func(t *testing.T) {
		f := newFixture()
		f.users.On("UpdatePatient", ctx, int64(9), mock.Anything).Return(apperrors.NotFound("patient", nil))
		_, err := f.svc.UpdatePatient(ctx, 9, &model.PatientUpdate{Name: "X"})
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
		f.audits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("blank name", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.UpdatePatient(ctx, 7, &model.PatientUpdate{Name: " "})
		assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
	})
}
