package repository

import (
	"context"

	"github.com/segyhp/leasing-engine/internal/domain"
)

// AgreementRepository defines the interface for agreement data operations
type AgreementRepository interface {
	// Save inserts or updates an agreement together with its payment schedule
	Save(ctx context.Context, agreement *domain.LeasingAgreement) (*domain.LeasingAgreement, error)

	// FindByID retrieves an agreement; errors.ErrAgreementNotFound when missing
	FindByID(ctx context.Context, id string) (*domain.LeasingAgreement, error)

	// FindByEmployeeID retrieves all agreements of an employee, newest first
	FindByEmployeeID(ctx context.Context, employeeID string) ([]*domain.LeasingAgreement, error)

	// FindByStatus retrieves all agreements in the given status
	FindByStatus(ctx context.Context, status domain.AgreementStatus) ([]*domain.LeasingAgreement, error)

	// UpdatePaymentStatus updates the status of a single schedule entry
	UpdatePaymentStatus(ctx context.Context, paymentID string, status domain.PaymentStatus) error
}
