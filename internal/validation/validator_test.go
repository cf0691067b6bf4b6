package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/leasing-engine/internal/config"
	"github.com/segyhp/leasing-engine/internal/domain"
	customError "github.com/segyhp/leasing-engine/pkg/errors"
)

var fixedNow = time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)

func newTestValidator() *Validator {
	return New(config.DefaultLeasingPolicy(), func() time.Time { return fixedNow })
}

func validRequest() *domain.CreateAgreementRequest {
	return &domain.CreateAgreementRequest{
		EmployeeID:       "EMP001",
		ItemID:           "ITEM-01",
		CompanyID:        "COMP_1",
		StartDate:        "2024-06-10",
		EndDate:          "2025-06-10",
		Price:            domain.RequestPrice("1000"),
		Currency:         "USD",
		PaymentFrequency: "MONTHLY",
		Metadata:         map[string]any{"department": "engineering"},
	}
}

func TestValidate_ValidRequest(t *testing.T) {
	assert.NoError(t, newTestValidator().Validate(validRequest()))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*domain.CreateAgreementRequest)
		expectedField string
		expectedCode  string
	}{
		{
			name:          "missing employee id",
			mutate:        func(r *domain.CreateAgreementRequest) { r.EmployeeID = "" },
			expectedField: "employee_id",
			expectedCode:  customError.CodeRequired,
		},
		{
			name:          "whitespace item id",
			mutate:        func(r *domain.CreateAgreementRequest) { r.ItemID = "   " },
			expectedField: "item_id",
			expectedCode:  customError.CodeRequired,
		},
		{
			name:          "missing company id",
			mutate:        func(r *domain.CreateAgreementRequest) { r.CompanyID = "" },
			expectedField: "company_id",
			expectedCode:  customError.CodeRequired,
		},
		{
			name:          "missing start date",
			mutate:        func(r *domain.CreateAgreementRequest) { r.StartDate = "" },
			expectedField: "start_date",
			expectedCode:  customError.CodeRequired,
		},
		{
			name:          "unparseable end date",
			mutate:        func(r *domain.CreateAgreementRequest) { r.EndDate = "next summer" },
			expectedField: "end_date",
			expectedCode:  customError.CodeInvalidFormat,
		},
		{
			name:          "start date yesterday",
			mutate:        func(r *domain.CreateAgreementRequest) { r.StartDate = "2024-06-09" },
			expectedField: "start_date",
			expectedCode:  customError.CodePastDate,
		},
		{
			name: "end before start",
			mutate: func(r *domain.CreateAgreementRequest) {
				r.StartDate = "2024-08-01"
				r.EndDate = "2024-07-01"
			},
			expectedField: "end_date",
			expectedCode:  customError.CodeInvalidRange,
		},
		{
			name:          "end equals start",
			mutate:        func(r *domain.CreateAgreementRequest) { r.EndDate = r.StartDate },
			expectedField: "end_date",
			expectedCode:  customError.CodeInvalidRange,
		},
		{
			name:          "longer than five years",
			mutate:        func(r *domain.CreateAgreementRequest) { r.EndDate = "2029-06-11" },
			expectedField: "end_date",
			expectedCode:  customError.CodeDurationExceeded,
		},
		{
			name:          "twenty nine days",
			mutate:        func(r *domain.CreateAgreementRequest) { r.EndDate = "2024-07-09" },
			expectedField: "end_date",
			expectedCode:  customError.CodeDurationTooShort,
		},
		{
			name:          "price not numeric",
			mutate:        func(r *domain.CreateAgreementRequest) { r.Price = domain.RequestPrice("abc") },
			expectedField: "price",
			expectedCode:  customError.CodeInvalidType,
		},
		{
			name:          "price missing",
			mutate:        func(r *domain.CreateAgreementRequest) { r.Price = "" },
			expectedField: "price",
			expectedCode:  customError.CodeInvalidType,
		},
		{
			name:          "price zero",
			mutate:        func(r *domain.CreateAgreementRequest) { r.Price = domain.RequestPrice("0") },
			expectedField: "price",
			expectedCode:  customError.CodeInvalidValue,
		},
		{
			name:          "price negative",
			mutate:        func(r *domain.CreateAgreementRequest) { r.Price = domain.RequestPrice("-10") },
			expectedField: "price",
			expectedCode:  customError.CodeInvalidValue,
		},
		{
			name:          "price over limit",
			mutate:        func(r *domain.CreateAgreementRequest) { r.Price = domain.RequestPrice("1000000.01") },
			expectedField: "price",
			expectedCode:  customError.CodeExceedsLimit,
		},
		{
			name:          "price with three decimals",
			mutate:        func(r *domain.CreateAgreementRequest) { r.Price = domain.RequestPrice("10.999") },
			expectedField: "price",
			expectedCode:  customError.CodeInvalidPrecision,
		},
		{
			name:          "unsupported currency",
			mutate:        func(r *domain.CreateAgreementRequest) { r.Currency = "JPY" },
			expectedField: "currency",
			expectedCode:  customError.CodeUnsupportedCurrency,
		},
		{
			name:          "unknown frequency",
			mutate:        func(r *domain.CreateAgreementRequest) { r.PaymentFrequency = "WEEKLY" },
			expectedField: "payment_frequency",
			expectedCode:  customError.CodeInvalidFrequency,
		},
		{
			name:          "employee id too short",
			mutate:        func(r *domain.CreateAgreementRequest) { r.EmployeeID = "E1" },
			expectedField: "employee_id",
			expectedCode:  customError.CodeInvalidLength,
		},
		{
			name:          "item id too long",
			mutate:        func(r *domain.CreateAgreementRequest) { r.ItemID = strings.Repeat("x", 51) },
			expectedField: "item_id",
			expectedCode:  customError.CodeInvalidLength,
		},
		{
			name:          "company id with illegal characters",
			mutate:        func(r *domain.CreateAgreementRequest) { r.CompanyID = "ACME CORP" },
			expectedField: "company_id",
			expectedCode:  customError.CodeInvalidFormat,
		},
		{
			name: "metadata too large",
			mutate: func(r *domain.CreateAgreementRequest) {
				r.Metadata = map[string]any{"notes": strings.Repeat("a", 10*1024)}
			},
			expectedField: "metadata",
			expectedCode:  customError.CodeSizeExceeded,
		},
		{
			name: "metadata with script tag",
			mutate: func(r *domain.CreateAgreementRequest) {
				r.Metadata = map[string]any{"notes": "<script>alert(1)</script>"}
			},
			expectedField: "metadata",
			expectedCode:  customError.CodeProhibitedContent,
		},
		{
			name: "metadata with javascript url",
			mutate: func(r *domain.CreateAgreementRequest) {
				r.Metadata = map[string]any{"link": "JavaScript:void(0)"}
			},
			expectedField: "metadata",
			expectedCode:  customError.CodeProhibitedContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := newTestValidator().Validate(req)
			require.Error(t, err)

			ve, ok := customError.IsValidation(err)
			require.True(t, ok, "expected ValidationError, got %T", err)
			assert.Equal(t, tt.expectedField, ve.Field)
			assert.Equal(t, tt.expectedCode, ve.Code)
		})
	}
}

func TestValidate_Boundaries(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		endDate   string
		price     string
	}{
		{name: "start date today", startDate: "2024-06-10", endDate: "2024-12-10", price: "10"},
		{name: "exactly thirty days", startDate: "2024-06-10", endDate: "2024-07-10", price: "10"},
		{name: "exactly five years", startDate: "2024-06-10", endDate: "2029-06-10", price: "10"},
		{name: "price at limit", startDate: "2024-06-10", endDate: "2025-06-10", price: "1000000"},
		{name: "price with two decimals", startDate: "2024-06-10", endDate: "2025-06-10", price: "99.99"},
		{name: "timestamp input earlier in the day", startDate: "2024-06-10T01:00:00Z", endDate: "2025-06-10T01:00:00Z", price: "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.StartDate = tt.startDate
			req.EndDate = tt.endDate
			req.Price = domain.RequestPrice(tt.price)

			assert.NoError(t, newTestValidator().Validate(req))
		})
	}
}

func TestValidate_ShortCircuitsOnFirstFailure(t *testing.T) {
	req := validRequest()
	req.EmployeeID = ""
	req.Currency = "JPY"
	req.Price = domain.RequestPrice("-1")

	err := newTestValidator().Validate(req)
	ve, ok := customError.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "employee_id", ve.Field)
	assert.Equal(t, customError.CodeRequired, ve.Code)
}

func TestValidate_NilRequest(t *testing.T) {
	err := newTestValidator().Validate(nil)
	ve, ok := customError.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, customError.CodeRequired, ve.Code)
}

func TestValidate_NoMetadata(t *testing.T) {
	req := validRequest()
	req.Metadata = nil
	assert.NoError(t, newTestValidator().Validate(req))
}
