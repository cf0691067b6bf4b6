package pricing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/segyhp/leasing-engine/internal/config"
	"github.com/segyhp/leasing-engine/internal/domain"
	"github.com/segyhp/leasing-engine/pkg/utils"
)

// Engine computes the discounted total cost of a lease
type Engine struct {
	longTermDiscount  decimal.Decimal
	longTermThreshold int
	employeeDiscounts map[domain.EmployeeTier]decimal.Decimal
}

// NewEngine creates a pricing engine from the leasing policy
func NewEngine(policy config.LeasingPolicy) *Engine {
	discounts := make(map[domain.EmployeeTier]decimal.Decimal, len(policy.EmployeeDiscounts))
	for tier, multiplier := range policy.EmployeeDiscounts {
		discounts[domain.EmployeeTier(strings.ToUpper(tier))] = multiplier
	}

	return &Engine{
		longTermDiscount:  policy.LongTermDiscount,
		longTermThreshold: policy.LongTermThreshold,
		employeeDiscounts: discounts,
	}
}

// EmployeeMultiplier returns the price multiplier of a tier; unknown tiers pay full price
func (e *Engine) EmployeeMultiplier(tier domain.EmployeeTier) decimal.Decimal {
	if multiplier, ok := e.employeeDiscounts[tier]; ok {
		return multiplier
	}
	return decimal.NewFromInt(1)
}

// LongTermMultiplier returns the discount multiplier for a lease of the given length
func (e *Engine) LongTermMultiplier(durationMonths int) decimal.Decimal {
	if durationMonths >= e.longTermThreshold {
		return e.longTermDiscount
	}
	return decimal.NewFromInt(1)
}

// CalculateCost calculates the total lease cost
// Formula: basePrice * longTermMultiplier * employeeMultiplier, rounded to cents
func (e *Engine) CalculateCost(basePrice decimal.Decimal, startDate, endDate time.Time, tier domain.EmployeeTier) decimal.Decimal {
	durationMonths := utils.MonthsBetween(startDate, endDate)

	total := basePrice.
		Mul(e.LongTermMultiplier(durationMonths)).
		Mul(e.EmployeeMultiplier(tier))

	return utils.RoundCurrency(total)
}
