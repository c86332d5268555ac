package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository/mocks"
	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
)

func date(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func intPtr(v int) *int { return &v }

func TestDueDate(t *testing.T) {
	tests := []struct {
		dob  string
		days int
		want string
	}{
		{"2024-01-01", 0, "2024-01-01"},
		{"2024-01-01", 42, "2024-02-12"},
		{"2024-02-28", 1, "2024-02-29"},
		{"2023-02-28", 1, "2023-03-01"},
		{"2023-12-31", 270, "2024-09-26"},
	}
	for _, tt := range tests {
		t.Run(tt.dob, func(t *testing.T) {
			assert.Equal(t, tt.want, DueDate(date(t, tt.dob), tt.days).String())
		})
	}
}

func TestClassify(t *testing.T) {
	today := date(t, "2026-10-19")
	tests := []struct {
		name       string
		offset     int
		wantStatus string
		wantLevel  string
		wantOK     bool
	}{
		{"long overdue", -30, model.ReminderOverdue, model.AlertDanger, true},
		{"yesterday", -1, model.ReminderOverdue, model.AlertDanger, true},
		{"today", 0, model.ReminderDue, model.AlertSuccess, true},
		{"tomorrow", 1, model.ReminderUrgent, model.AlertWarning, true},
		{"three days", 3, model.ReminderUrgent, model.AlertWarning, true},
		{"four days", 4, model.ReminderSoon, model.AlertInfo, true},
		{"a week", 7, model.ReminderSoon, model.AlertInfo, true},
		{"eight days", 8, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, level, daysLeft, ok := Classify(today.AddDays(tt.offset), today)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantLevel, level)
			assert.Equal(t, tt.offset, daysLeft)
		})
	}
}

func TestCompute(t *testing.T) {
	today := date(t, "2026-10-19")
	dob := today.AddDays(-40)

	// dob is 40 days ago; BCG is already taken.
	vaccines := []*model.Vaccine{
		{ID: 1, Name: "BCG", AgeRequiredDays: intPtr(0)},
		{ID: 2, Name: "OPV-1", AgeRequiredDays: intPtr(42)},
		{ID: 3, Name: "DTP-1", AgeRequiredDays: intPtr(42)},
		{ID: 4, Name: "Hepatitis B", AgeRequiredDays: intPtr(30)},
		{ID: 5, Name: "Measles", AgeRequiredDays: intPtr(270)},
		{ID: 6, Name: "Covishield"},
		{ID: 7, Name: "Rotavirus", AgeRequiredDays: intPtr(45)},
		{ID: 8, Name: "IPV", AgeRequiredDays: intPtr(40)},
	}

	got := Compute(dob, vaccines, map[int64]bool{1: true}, today)

	require.Len(t, got, 5)
	names := make([]string, len(got))
	for i, r := range got {
		names[i] = r.Vaccine
	}
	assert.Equal(t, []string{"Hepatitis B", "IPV", "DTP-1", "OPV-1", "Rotavirus"}, names)

	assert.Equal(t, model.ReminderOverdue, got[0].Status)
	assert.Equal(t, "OVERDUE: You missed Hepatitis B! Due was 2026-10-09", got[0].Message)
	assert.Equal(t, -10, got[0].DaysLeft)

	assert.Equal(t, "Due Today: Please get IPV", got[1].Message)
	assert.Equal(t, "Reminder: DTP-1 due in 2 days", got[2].Message)
	assert.Equal(t, "Upcoming: Rotavirus due in 5 days", got[4].Message)
	assert.Equal(t, "2026-10-24", got[4].DueDate.String())
}

func TestCompute_Empty(t *testing.T) {
	today := date(t, "2026-10-19")
	got := Compute(today, nil, nil, today)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func newService(users *mocks.MockUserRepository, vaccines *mocks.MockVaccineRepository, records *mocks.MockRecordRepository, today model.Date) *Service {
	svc := NewService(users, vaccines, records)
	svc.now = func() time.Time { return today.Add(9 * time.Hour) }
	return svc
}

func TestService_ForPatient(t *testing.T) {
	ctx := context.Background()
	today := date(t, "2026-10-19")
	dob := today.AddDays(-2)

	t.Run("unknown patient has no reminders", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("GetByID", ctx, int64(9)).Return(nil, apperrors.NewNotFound("user", nil))

		got, err := newService(users, nil, nil, today).ForPatient(ctx, 9)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("patient without dob has no reminders", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("GetByID", ctx, int64(1)).Return(&model.User{ID: 1}, nil)

		got, err := newService(users, nil, nil, today).ForPatient(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("taken vaccines are skipped", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		vaccines := new(mocks.MockVaccineRepository)
		records := new(mocks.MockRecordRepository)

		users.On("GetByID", ctx, int64(1)).Return(&model.User{ID: 1, DOB: &dob}, nil)
		vaccines.On("List", ctx).Return([]*model.Vaccine{
			{ID: 1, Name: "BCG", AgeRequiredDays: intPtr(0)},
			{ID: 2, Name: "OPV-0", AgeRequiredDays: intPtr(0)},
		}, nil)
		records.On("TakenVaccineIDs", ctx, int64(1)).Return([]int64{1}, nil)

		got, err := newService(users, vaccines, records, today).ForPatient(ctx, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "OPV-0", got[0].Vaccine)
		assert.Equal(t, model.ReminderOverdue, got[0].Status)
	})
}

func TestService_DueList(t *testing.T) {
	ctx := context.Background()
	today := date(t, "2026-10-19")
	dobA := today.AddDays(-1)
	dobB := today

	users := new(mocks.MockUserRepository)
	vaccines := new(mocks.MockVaccineRepository)
	records := new(mocks.MockRecordRepository)

	users.On("ListPatientsWithDOB", ctx).Return([]*model.User{
		{ID: 1, Name: "Zara", Email: "zara@example.com", DOB: &dobA},
		{ID: 2, Name: "Arjun", Email: "arjun@example.com", DOB: &dobB},
	}, nil)
	vaccines.On("List", ctx).Return([]*model.Vaccine{
		{ID: 10, Name: "BCG", AgeRequiredDays: intPtr(0)},
	}, nil)
	records.On("TakenDoses", ctx).Return([]model.TakenDose{}, nil)

	got, err := newService(users, vaccines, records, today).DueList(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Zara", got[0].PatientName)
	assert.Equal(t, model.ReminderOverdue, got[0].Status)
	assert.Equal(t, "Arjun", got[1].PatientName)
	assert.Equal(t, model.ReminderDue, got[1].Status)

	records.AssertExpectations(t)
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
