package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// AgreementStatus is the lifecycle state of a leasing agreement
type AgreementStatus string

const (
	AgreementStatusDraft     AgreementStatus = "DRAFT"
	AgreementStatusPending   AgreementStatus = "PENDING"
	AgreementStatusActive    AgreementStatus = "ACTIVE"
	AgreementStatusCompleted AgreementStatus = "COMPLETED"
	AgreementStatusCancelled AgreementStatus = "CANCELLED"
)

// LeasingAgreement represents a leasing agreement entity.
// Values are treated as immutable; status changes produce a copy via WithStatus.
type LeasingAgreement struct {
	ID               string            `json:"id" db:"id"`
	EmployeeID       string            `json:"employee_id" db:"employee_id"`
	ItemID           string            `json:"item_id" db:"item_id"`
	CompanyID        string            `json:"company_id" db:"company_id"`
	StartDate        time.Time         `json:"start_date" db:"start_date"`
	EndDate          time.Time         `json:"end_date" db:"end_date"`
	Status           AgreementStatus   `json:"status" db:"status"`
	Price            decimal.Decimal   `json:"price" db:"price"`
	Currency         string            `json:"currency" db:"currency"`
	PaymentFrequency PaymentFrequency  `json:"payment_frequency" db:"payment_frequency"`
	PaymentSchedule  []PaymentSchedule `json:"payment_schedule" db:"-"`
	Metadata         map[string]any    `json:"metadata,omitempty" db:"-"`
	CreatedAt        time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at" db:"updated_at"`
}

// WithStatus returns a copy of the agreement with the given status and update time
func (a *LeasingAgreement) WithStatus(status AgreementStatus, at time.Time) *LeasingAgreement {
	clone := *a
	clone.Status = status
	clone.UpdatedAt = at

	if a.PaymentSchedule != nil {
		clone.PaymentSchedule = make([]PaymentSchedule, len(a.PaymentSchedule))
		copy(clone.PaymentSchedule, a.PaymentSchedule)
	}

	if a.Metadata != nil {
		clone.Metadata = make(map[string]any, len(a.Metadata))
		for k, v := range a.Metadata {
			clone.Metadata[k] = v
		}
	}

	return &clone
}

// ScheduleTotal sums the amounts of all payment schedule entries
func (a *LeasingAgreement) ScheduleTotal() decimal.Decimal {
	total := decimal.Zero
	for _, entry := range a.PaymentSchedule {
		total = total.Add(entry.Amount)
	}
	return total
}

// DTOs for requests and responses

// RequestPrice is the price exactly as a client sent it, either a JSON number
// or a quoted string. Any other JSON value is kept verbatim and rejected by validation.
type RequestPrice string

func (p *RequestPrice) UnmarshalJSON(data []byte) error {
	var quoted string
	if err := json.Unmarshal(data, &quoted); err == nil {
		*p = RequestPrice(quoted)
		return nil
	}
	*p = RequestPrice(data)
	return nil
}

func (p RequestPrice) String() string {
	return string(p)
}

// CreateAgreementRequest is the raw creation request as received from a client.
// Dates and price stay text until validation has run.
type CreateAgreementRequest struct {
	EmployeeID       string         `json:"employee_id"`
	ItemID           string         `json:"item_id"`
	CompanyID        string         `json:"company_id"`
	StartDate        string         `json:"start_date"`
	EndDate          string         `json:"end_date"`
	Price            RequestPrice   `json:"price"`
	Currency         string         `json:"currency"`
	PaymentFrequency string         `json:"payment_frequency"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

type AgreementListResponse struct {
	EmployeeID string              `json:"employee_id"`
	Agreements []*LeasingAgreement `json:"agreements"`
}
