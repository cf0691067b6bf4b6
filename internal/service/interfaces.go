package service

import (
	"context"

	"github.com/segyhp/leasing-engine/internal/domain"
)

// Inventory reserves leasable items
type Inventory interface {
	ReserveItem(ctx context.Context, itemID string) (bool, error)
	ReleaseItem(ctx context.Context, itemID string) error
	CheckAvailability(ctx context.Context, itemID string) (bool, error)
}

// Billing keeps the billing-side record of an agreement
type Billing interface {
	CreateBillingRecord(ctx context.Context, agreement *domain.LeasingAgreement) (string, error)
	UpdateBillingRecord(ctx context.Context, agreementID string, status string) error
}

// Notifier informs employees about their agreements
type Notifier interface {
	SendAgreementCreated(ctx context.Context, employeeID, agreementID string) error
	SendPaymentDue(ctx context.Context, employeeID string, payment domain.PaymentSchedule) error
}

// EmployeeDirectory answers questions about employees
type EmployeeDirectory interface {
	GetEmployeeType(ctx context.Context, employeeID string) (domain.EmployeeTier, error)
	ValidateEmployee(ctx context.Context, employeeID, companyID string) (bool, error)
}
