package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"registration-backend/internal/capacity"
	"registration-backend/internal/domain"
	"registration-backend/internal/service"
)

type MockRegistrationService struct {
	mock.Mock
}

func (m *MockRegistrationService) Submit(ctx context.Context, in *domain.Submission) (*domain.Registration, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Registration), args.Error(1)
}

func (m *MockRegistrationService) EmailRegistered(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockRegistrationService) CheckStatus(ctx context.Context, transactionID string) (*domain.StatusSummary, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusSummary), args.Error(1)
}

func (m *MockRegistrationService) GetRegistration(ctx context.Context, id int32) (*domain.Registration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Registration), args.Error(1)
}

func (m *MockRegistrationService) StayAvailability(ctx context.Context) (*capacity.Availability, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*capacity.Availability), args.Error(1)
}

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAdminService) ListRegistrations(ctx context.Context, filter domain.ListFilter, page, pageSize int32) ([]domain.Registration, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	var regs []domain.Registration
	if args.Get(0) != nil {
		regs = args.Get(0).([]domain.Registration)
	}
	return regs, args.Get(1).(int64), args.Error(2)
}

func (m *MockAdminService) ApproveRegistration(ctx context.Context, id int32, approver string) (*domain.Registration, bool, error) {
	args := m.Called(ctx, id, approver)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Registration), args.Bool(1), args.Error(2)
}

func (m *MockAdminService) RejectRegistration(ctx context.Context, id int32, approver, reason string) (*domain.Registration, bool, error) {
	args := m.Called(ctx, id, approver, reason)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Registration), args.Bool(1), args.Error(2)
}

func (m *MockAdminService) Stats(ctx context.Context) (*service.StatsOverview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StatsOverview), args.Error(1)
}
