package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithStatus_CopiesMutableState(t *testing.T) {
	created := time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)
	original := &LeasingAgreement{
		ID:     "LA-1-aaaaaaaaa",
		Status: AgreementStatusDraft,
		Price:  decimal.NewFromInt(100),
		PaymentSchedule: []PaymentSchedule{
			{ID: "LA-1-aaaaaaaaa-payment-1", Amount: decimal.NewFromInt(50), Status: PaymentStatusPending},
			{ID: "LA-1-aaaaaaaaa-payment-2", Amount: decimal.NewFromInt(50), Status: PaymentStatusPending},
		},
		Metadata:  map[string]any{"department": "engineering"},
		CreatedAt: created,
		UpdatedAt: created,
	}

	later := created.Add(time.Minute)
	clone := original.WithStatus(AgreementStatusPending, later)
	clone.PaymentSchedule[0].Status = PaymentStatusCancelled
	clone.Metadata["department"] = "finance"

	assert.Equal(t, AgreementStatusPending, clone.Status)
	assert.Equal(t, later, clone.UpdatedAt)
	assert.Equal(t, created, clone.CreatedAt)

	assert.Equal(t, AgreementStatusDraft, original.Status)
	assert.Equal(t, created, original.UpdatedAt)
	assert.Equal(t, PaymentStatusPending, original.PaymentSchedule[0].Status)
	assert.Equal(t, "engineering", original.Metadata["department"])
}

func TestWithStatus_NilCollectionsStayNil(t *testing.T) {
	clone := (&LeasingAgreement{ID: "LA-1-aaaaaaaaa"}).WithStatus(AgreementStatusActive, time.Now())

	assert.Nil(t, clone.PaymentSchedule)
	assert.Nil(t, clone.Metadata)
}

func TestScheduleTotal(t *testing.T) {
	agreement := &LeasingAgreement{PaymentSchedule: []PaymentSchedule{
		{Amount: decimal.RequireFromString("33.33")},
		{Amount: decimal.RequireFromString("33.33")},
		{Amount: decimal.RequireFromString("33.34")},
	}}

	assert.True(t, agreement.ScheduleTotal().Equal(decimal.NewFromInt(100)))
}

func TestIntervalMonths(t *testing.T) {
	tests := []struct {
		frequency PaymentFrequency
		months    int
		ok        bool
	}{
		{PaymentFrequencyMonthly, 1, true},
		{PaymentFrequencyQuarterly, 3, true},
		{PaymentFrequencyAnnually, 12, true},
		{PaymentFrequency("WEEKLY"), 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.frequency), func(t *testing.T) {
			months, ok := tt.frequency.IntervalMonths()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.months, months)
		})
	}
}

func TestRequestPrice_KeepsRawValue(t *testing.T) {
	tests := []struct {
		body string
		want RequestPrice
	}{
		{body: `{"price": 1000.50}`, want: "1000.50"},
		{body: `{"price": "99.99"}`, want: "99.99"},
		{body: `{"price": "abc"}`, want: "abc"},
		{body: `{"price": true}`, want: "true"},
		{body: `{"price": null}`, want: ""},
		{body: `{}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var req CreateAgreementRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.Price)
		})
	}
}
