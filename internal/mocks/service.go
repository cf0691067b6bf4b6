package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/segyhp/leasing-engine/internal/domain"
)

type MockAgreementService struct {
	mock.Mock
}

func (m *MockAgreementService) CreateAgreement(ctx context.Context, req *domain.CreateAgreementRequest) (*domain.LeasingAgreement, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeasingAgreement), args.Error(1)
}

func (m *MockAgreementService) GetAgreement(ctx context.Context, agreementID string) (*domain.LeasingAgreement, error) {
	args := m.Called(ctx, agreementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeasingAgreement), args.Error(1)
}

func (m *MockAgreementService) ListEmployeeAgreements(ctx context.Context, employeeID string) ([]*domain.LeasingAgreement, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LeasingAgreement), args.Error(1)
}
