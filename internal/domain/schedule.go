package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the state of a single scheduled payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusPaid      PaymentStatus = "PAID"
	PaymentStatusOverdue   PaymentStatus = "OVERDUE"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

// PaymentFrequency controls how often an installment is due
type PaymentFrequency string

const (
	PaymentFrequencyMonthly   PaymentFrequency = "MONTHLY"
	PaymentFrequencyQuarterly PaymentFrequency = "QUARTERLY"
	PaymentFrequencyAnnually  PaymentFrequency = "ANNUALLY"
)

var frequencyIntervals = map[PaymentFrequency]int{
	PaymentFrequencyMonthly:   1,
	PaymentFrequencyQuarterly: 3,
	PaymentFrequencyAnnually:  12,
}

// IntervalMonths returns the number of months between two installments
func (f PaymentFrequency) IntervalMonths() (int, bool) {
	months, ok := frequencyIntervals[f]
	return months, ok
}

// PaymentSchedule represents one installment of an agreement.
// DueDate is a value, so entries never share a date instance.
type PaymentSchedule struct {
	ID              string          `json:"id" db:"id"`
	AgreementID     string          `json:"agreement_id" db:"agreement_id"`
	Sequence        int             `json:"sequence" db:"seq"`
	DueDate         time.Time       `json:"due_date" db:"due_date"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	Status          PaymentStatus   `json:"status" db:"status"`
	AttemptCount    int             `json:"attempt_count" db:"attempt_count"`
	PaymentID       *string         `json:"payment_id,omitempty" db:"payment_id"`
	LastAttemptDate *time.Time      `json:"last_attempt_date,omitempty" db:"last_attempt_date"`
}
