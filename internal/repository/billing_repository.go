package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/leasing-engine/internal/domain"
	customError "github.com/segyhp/leasing-engine/pkg/errors"
)

// BillingRepository keeps one billing record per agreement
type BillingRepository struct {
	db *sqlx.DB
}

func NewBillingRepository(db *sqlx.DB) *BillingRepository {
	return &BillingRepository{db: db}
}

// CreateBillingRecord opens a billing record for the agreement and returns its id
func (r *BillingRepository) CreateBillingRecord(ctx context.Context, agreement *domain.LeasingAgreement) (string, error) {
	query := `
		INSERT INTO billing_records (id, agreement_id, amount, currency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`

	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, query,
		id,
		agreement.ID,
		agreement.Price,
		agreement.Currency,
		domain.BillingStatusOpen,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *BillingRepository) UpdateBillingRecord(ctx context.Context, agreementID string, status string) error {
	query := `
		UPDATE billing_records
		SET status = $2, updated_at = NOW()
		WHERE agreement_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, agreementID, status)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return customError.ErrBillingNotFound
	}
	return nil
}
