package patient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository/mocks"
	"github.com/jwalitptl/arogyavax/internal/service/reminder"
	"github.com/jwalitptl/arogyavax/pkg/auth"
	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
)

func strPtr(s string) *string { return &s }

func newService() (*Service, *mocks.MockRecordRepository, *mocks.MockAppointmentRepository, *mocks.MockUserRepository) {
	records := new(mocks.MockRecordRepository)
	appointments := new(mocks.MockAppointmentRepository)
	users := new(mocks.MockUserRepository)
	vaccines := new(mocks.MockVaccineRepository)
	return NewService(records, appointments, reminder.NewService(users, vaccines, records)), records, appointments, users
}

func asUser(id int64, role string) context.Context {
	return auth.WithClaims(context.Background(), &auth.Claims{UserID: id, Role: role})
}

func TestService_History(t *testing.T) {
	svc, records, _, _ := newService()
	ctx := asUser(7, model.RolePatient)
	records.On("History", ctx, int64(7)).Return([]*model.HistoryEntry{
		{ID: 2, VaccineName: strPtr("OPV")},
		{ID: 1},
		{ID: 0, VaccineName: strPtr("")},
	}, nil)

	got, err := svc.History(ctx, 7)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "OPV", *got[0].VaccineName)
	assert.Equal(t, "Unknown Vaccine", *got[1].VaccineName)
	assert.Equal(t, "Unknown Vaccine", *got[2].VaccineName)
}

func TestService_Authorization(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		wantCode apperrors.ErrorCode
	}{
		{"anonymous", context.Background(), apperrors.ErrUnauthorized},
		{"other patient", asUser(8, model.RolePatient), apperrors.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, records, appointments, _ := newService()

			_, err := svc.History(tt.ctx, 7)
			assert.True(t, apperrors.Is(err, tt.wantCode))
			_, err = svc.Reminders(tt.ctx, 7)
			assert.True(t, apperrors.Is(err, tt.wantCode))
			_, err = svc.Appointments(tt.ctx, 7)
			assert.True(t, apperrors.Is(err, tt.wantCode))

			records.AssertNotCalled(t, "History", mock.Anything, mock.Anything)
			appointments.AssertNotCalled(t, "ListByPatient", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Appointments_Staff(t *testing.T) {
	svc, _, appointments, _ := newService()
	ctx := asUser(2, model.RoleNurse)
	appointments.On("ListByPatient", ctx, int64(7)).Return([]*model.AppointmentView{{}, {}}, nil)

	got, err := svc.Appointments(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestService_Reminders_UnknownPatient(t *testing.T) {
	svc, _, _, users := newService()
	ctx := asUser(1, model.RoleAdmin)
	users.On("GetByID", ctx, int64(42)).Return(nil, apperrors.NotFound("user", nil))

	got, err := svc.Reminders(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, got)
}
