package schedule

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/leasing-engine/internal/domain"
)

var startDate = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func newAgreement(price string, months int) *domain.LeasingAgreement {
	return &domain.LeasingAgreement{
		ID:        "LA-1700000000000-abc123xyz",
		StartDate: startDate,
		EndDate:   startDate.AddDate(0, months, 0),
		Price:     decimal.RequireFromString(price),
	}
}

func sum(entries []domain.PaymentSchedule) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}

func TestGenerate_RemainderOnLastPayment(t *testing.T) {
	entries, err := NewGenerator().Generate(newAgreement("100", 3), domain.PaymentFrequencyMonthly)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("33.33")))
	assert.True(t, entries[1].Amount.Equal(decimal.RequireFromString("33.33")))
	assert.True(t, entries[2].Amount.Equal(decimal.RequireFromString("33.34")))
	assert.True(t, sum(entries).Equal(decimal.NewFromInt(100)))
}

// Tiny prices over many periods round the base installment up, so the last
// entry goes negative while the sum stays exact.
func TestGenerate_TinyPriceLastPaymentMayBeNegative(t *testing.T) {
	entries, err := NewGenerator().Generate(newAgreement("0.05", 7), domain.PaymentFrequencyMonthly)
	require.NoError(t, err)
	require.Len(t, entries, 7)

	for _, entry := range entries[:6] {
		assert.True(t, entry.Amount.Equal(decimal.RequireFromString("0.01")), "got %s", entry.Amount)
	}
	assert.True(t, entries[6].Amount.Equal(decimal.RequireFromString("-0.01")), "got %s", entries[6].Amount)
	assert.True(t, sum(entries).Equal(decimal.RequireFromString("0.05")))
}

func TestGenerate_SumMatchesPrice(t *testing.T) {
	prices := []string{"100", "0.01", "999.99", "1234.57", "1000000", "720", "333.33"}
	frequencies := []domain.PaymentFrequency{
		domain.PaymentFrequencyMonthly,
		domain.PaymentFrequencyQuarterly,
		domain.PaymentFrequencyAnnually,
	}

	for _, price := range prices {
		for _, frequency := range frequencies {
			for _, months := range []int{1, 5, 7, 12, 17, 60} {
				agreement := newAgreement(price, months)
				entries, err := NewGenerator().Generate(agreement, frequency)
				require.NoError(t, err)
				assert.True(t, sum(entries).Equal(agreement.Price),
					"price %s, %s over %d months: sum %s", price, frequency, months, sum(entries))
			}
		}
	}
}

func TestGenerate_PaymentCounts(t *testing.T) {
	tests := []struct {
		name      string
		months    int
		frequency domain.PaymentFrequency
		expected  int
	}{
		{name: "five months monthly", months: 5, frequency: domain.PaymentFrequencyMonthly, expected: 5},
		{name: "twelve months quarterly", months: 12, frequency: domain.PaymentFrequencyQuarterly, expected: 4},
		{name: "thirteen months quarterly rounds up", months: 13, frequency: domain.PaymentFrequencyQuarterly, expected: 5},
		{name: "seventeen months annually", months: 17, frequency: domain.PaymentFrequencyAnnually, expected: 2},
		{name: "same day range", months: 0, frequency: domain.PaymentFrequencyMonthly, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := NewGenerator().Generate(newAgreement("1000", tt.months), tt.frequency)
			require.NoError(t, err)
			assert.Len(t, entries, tt.expected)
		})
	}
}

func TestGenerate_DegenerateRangeSinglePayment(t *testing.T) {
	agreement := newAgreement("250.50", 0)
	agreement.EndDate = agreement.StartDate

	entries, err := NewGenerator().Generate(agreement, domain.PaymentFrequencyAnnually)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("250.50")))
	assert.Equal(t, startDate, entries[0].DueDate)
}

func TestGenerate_EntryFields(t *testing.T) {
	agreement := newAgreement("1200", 12)
	entries, err := NewGenerator().Generate(agreement, domain.PaymentFrequencyQuarterly)
	require.NoError(t, err)

	for i, entry := range entries {
		assert.Equal(t, fmt.Sprintf("%s-payment-%d", agreement.ID, i+1), entry.ID)
		assert.Equal(t, agreement.ID, entry.AgreementID)
		assert.Equal(t, i+1, entry.Sequence)
		assert.Equal(t, domain.PaymentStatusPending, entry.Status)
		assert.Equal(t, 0, entry.AttemptCount)
		assert.Nil(t, entry.PaymentID)
		assert.Nil(t, entry.LastAttemptDate)
		assert.Equal(t, startDate.AddDate(0, 3*i, 0), entry.DueDate)
	}
}

func TestGenerate_DueDatesAreIndependent(t *testing.T) {
	entries, err := NewGenerator().Generate(newAgreement("500", 5), domain.PaymentFrequencyMonthly)
	require.NoError(t, err)

	before := make([]time.Time, len(entries))
	for i, e := range entries {
		before[i] = e.DueDate
	}

	entries[2].DueDate = entries[2].DueDate.AddDate(1, 0, 0)

	for i, e := range entries {
		if i == 2 {
			continue
		}
		assert.Equal(t, before[i], e.DueDate, "entry %d changed", i)
	}
	for i := 1; i < len(entries); i++ {
		if i == 2 || i == 3 {
			continue
		}
		assert.True(t, entries[i].DueDate.After(entries[i-1].DueDate))
	}
}

func TestGenerate_UnknownFrequency(t *testing.T) {
	_, err := NewGenerator().Generate(newAgreement("100", 3), domain.PaymentFrequency("WEEKLY"))
	assert.Error(t, err)
}

func TestPaymentCount(t *testing.T) {
	assert.Equal(t, 1, PaymentCount(0, 1))
	assert.Equal(t, 1, PaymentCount(-2, 1))
	assert.Equal(t, 5, PaymentCount(5, 1))
	assert.Equal(t, 2, PaymentCount(4, 3))
	assert.Equal(t, 5, PaymentCount(60, 12))
}
