package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/segyhp/leasing-engine/internal/domain"
)

type MockAgreementRepository struct {
	mock.Mock
}

func (m *MockAgreementRepository) Save(ctx context.Context, agreement *domain.LeasingAgreement) (*domain.LeasingAgreement, error) {
	args := m.Called(ctx, agreement)
	if fn, ok := args.Get(0).(func(context.Context, *domain.LeasingAgreement) *domain.LeasingAgreement); ok {
		return fn(ctx, agreement), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeasingAgreement), args.Error(1)
}

func (m *MockAgreementRepository) FindByID(ctx context.Context, id string) (*domain.LeasingAgreement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeasingAgreement), args.Error(1)
}

func (m *MockAgreementRepository) FindByEmployeeID(ctx context.Context, employeeID string) ([]*domain.LeasingAgreement, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LeasingAgreement), args.Error(1)
}

func (m *MockAgreementRepository) FindByStatus(ctx context.Context, status domain.AgreementStatus) ([]*domain.LeasingAgreement, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LeasingAgreement), args.Error(1)
}

func (m *MockAgreementRepository) UpdatePaymentStatus(ctx context.Context, paymentID string, status domain.PaymentStatus) error {
	args := m.Called(ctx, paymentID, status)
	return args.Error(0)
}

// SaveReturnsInput makes Save echo back whatever agreement it receives
func (m *MockAgreementRepository) SaveReturnsInput() *mock.Call {
	return m.On("Save", mock.Anything, mock.Anything).Return(
		func(_ context.Context, a *domain.LeasingAgreement) *domain.LeasingAgreement { return a },
		nil,
	)
}
