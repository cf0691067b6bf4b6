package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	BillingStatusOpen      = "OPEN"
	BillingStatusCancelled = "CANCELLED"
)

// BillingRecord is the billing-side reference created for an agreement
type BillingRecord struct {
	ID          string          `json:"id" db:"id"`
	AgreementID string          `json:"agreement_id" db:"agreement_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Currency    string          `json:"currency" db:"currency"`
	Status      string          `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}
