package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jwalitptl/arogyavax/internal/model"
)

type MockVaccineRepository struct {
	mock.Mock
}

func (m *MockVaccineRepository) List(ctx context.Context) ([]*model.Vaccine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Vaccine), args.Error(1)
}

func (m *MockVaccineRepository) GetByID(ctx context.Context, id int64) (*model.Vaccine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vaccine), args.Error(1)
}

func (m *MockVaccineRepository) GetByName(ctx context.Context, name string) (*model.Vaccine, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vaccine), args.Error(1)
}

func (m *MockVaccineRepository) Create(ctx context.Context, vaccine *model.Vaccine) error {
	args := m.Called(ctx, vaccine)
	return args.Error(0)
}

func (m *MockVaccineRepository) FindOrCreate(ctx context.Context, name string) (*model.Vaccine, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vaccine), args.Error(1)
}

type MockHospitalRepository struct {
	mock.Mock
}

func (m *MockHospitalRepository) List(ctx context.Context, approvedOnly bool) ([]*model.Hospital, error) {
	args := m.Called(ctx, approvedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Hospital), args.Error(1)
}

func (m *MockHospitalRepository) GetByID(ctx context.Context, id int64) (*model.Hospital, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hospital), args.Error(1)
}

func (m *MockHospitalRepository) Create(ctx context.Context, hospital *model.Hospital) error {
	args := m.Called(ctx, hospital)
	return args.Error(0)
}

func (m *MockHospitalRepository) SetApproval(ctx context.Context, id int64, approved bool) error {
	args := m.Called(ctx, id, approved)
	return args.Error(0)
}

func (m *MockHospitalRepository) Ensure(ctx context.Context, name, location string) (*model.Hospital, error) {
	args := m.Called(ctx, name, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hospital), args.Error(1)
}

type MockAnnouncementRepository struct {
	mock.Mock
}

func (m *MockAnnouncementRepository) List(ctx context.Context) ([]*model.Announcement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Announcement), args.Error(1)
}

func (m *MockAnnouncementRepository) Create(ctx context.Context, a *model.Announcement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAnnouncementRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
