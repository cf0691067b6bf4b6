package schedule

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/segyhp/leasing-engine/internal/domain"
	"github.com/segyhp/leasing-engine/pkg/utils"
)

// Generator splits an agreement price into dated installments
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// PaymentCount returns how many installments cover the lease, at least one
func PaymentCount(durationMonths, intervalMonths int) int {
	count := (durationMonths + intervalMonths - 1) / intervalMonths
	if count < 1 {
		return 1
	}
	return count
}

// Generate builds the payment schedule for an agreement.
// Every entry but the last gets round2(price/n); the last absorbs the remainder
// so the entries always sum to the agreement price exactly.
func (g *Generator) Generate(agreement *domain.LeasingAgreement, frequency domain.PaymentFrequency) ([]domain.PaymentSchedule, error) {
	intervalMonths, ok := frequency.IntervalMonths()
	if !ok {
		return nil, fmt.Errorf("unsupported payment frequency %q", frequency)
	}

	durationMonths := utils.MonthsBetween(agreement.StartDate, agreement.EndDate)
	totalPayments := PaymentCount(durationMonths, intervalMonths)

	totalAmount := agreement.Price
	baseAmount := utils.RoundCurrency(totalAmount.Div(decimal.NewFromInt(int64(totalPayments))))
	lastAmount := totalAmount.Sub(baseAmount.Mul(decimal.NewFromInt(int64(totalPayments - 1))))

	schedules := make([]domain.PaymentSchedule, 0, totalPayments)
	for i := 0; i < totalPayments; i++ {
		amount := baseAmount
		if i == totalPayments-1 {
			amount = lastAmount
		}

		schedules = append(schedules, domain.PaymentSchedule{
			ID:           fmt.Sprintf("%s-payment-%d", agreement.ID, i+1),
			AgreementID:  agreement.ID,
			Sequence:     i + 1,
			DueDate:      utils.CalculateDueDate(agreement.StartDate, i, intervalMonths),
			Amount:       amount,
			Status:       domain.PaymentStatusPending,
			AttemptCount: 0,
		})
	}

	return schedules, nil
}
