package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/segyhp/leasing-engine/internal/domain"
)

type MockInventory struct {
	mock.Mock
}

func (m *MockInventory) ReserveItem(ctx context.Context, itemID string) (bool, error) {
	args := m.Called(ctx, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInventory) ReleaseItem(ctx context.Context, itemID string) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockInventory) CheckAvailability(ctx context.Context, itemID string) (bool, error) {
	args := m.Called(ctx, itemID)
	return args.Bool(0), args.Error(1)
}

type MockBilling struct {
	mock.Mock
}

func (m *MockBilling) CreateBillingRecord(ctx context.Context, agreement *domain.LeasingAgreement) (string, error) {
	args := m.Called(ctx, agreement)
	return args.String(0), args.Error(1)
}

func (m *MockBilling) UpdateBillingRecord(ctx context.Context, agreementID string, status string) error {
	args := m.Called(ctx, agreementID, status)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendAgreementCreated(ctx context.Context, employeeID, agreementID string) error {
	args := m.Called(ctx, employeeID, agreementID)
	return args.Error(0)
}

func (m *MockNotifier) SendPaymentDue(ctx context.Context, employeeID string, payment domain.PaymentSchedule) error {
	args := m.Called(ctx, employeeID, payment)
	return args.Error(0)
}

type MockEmployeeDirectory struct {
	mock.Mock
}

func (m *MockEmployeeDirectory) GetEmployeeType(ctx context.Context, employeeID string) (domain.EmployeeTier, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).(domain.EmployeeTier), args.Error(1)
}

func (m *MockEmployeeDirectory) ValidateEmployee(ctx context.Context, employeeID, companyID string) (bool, error) {
	args := m.Called(ctx, employeeID, companyID)
	return args.Bool(0), args.Error(1)
}
