// Package validation checks creation requests before any side effect happens.
// It performs no I/O; "today" comes from an injected clock.
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/segyhp/leasing-engine/internal/config"
	"github.com/segyhp/leasing-engine/internal/domain"
	customError "github.com/segyhp/leasing-engine/pkg/errors"
	"github.com/segyhp/leasing-engine/pkg/utils"
)

const maxMetadataBytes = 10 * 1024

var (
	identifierRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	prohibitedRegex = regexp.MustCompile(`(?i)<\s*/?\s*script|javascript\s*:`)
)

// Validator runs the ordered request checks and stops at the first failure
type Validator struct {
	v             *validator.Validate
	policy        config.LeasingPolicy
	now           func() time.Time
	currencyTag   string
	frequencyTag  string
	identifierTag string
}

// New creates a Validator. now defaults to time.Now when nil.
func New(policy config.LeasingPolicy, now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}

	v := validator.New()
	// The pattern is static, registration cannot fail.
	_ = v.RegisterValidation("leasing_id", func(fl validator.FieldLevel) bool {
		return identifierRegex.MatchString(fl.Field().String())
	})

	return &Validator{
		v:             v,
		policy:        policy,
		now:           now,
		currencyTag:   "oneof=" + strings.Join(policy.CurrencyList(), " "),
		frequencyTag:  fmt.Sprintf("oneof=%s %s %s", domain.PaymentFrequencyMonthly, domain.PaymentFrequencyQuarterly, domain.PaymentFrequencyAnnually),
		identifierTag: "leasing_id",
	}
}

type idField struct {
	name  string
	value string
}

func idFields(req *domain.CreateAgreementRequest) []idField {
	return []idField{
		{name: "employee_id", value: req.EmployeeID},
		{name: "item_id", value: req.ItemID},
		{name: "company_id", value: req.CompanyID},
	}
}

// Validate returns nil or the first *errors.ValidationError encountered
func (val *Validator) Validate(req *domain.CreateAgreementRequest) error {
	if req == nil {
		return customError.NewValidationError("Request body is required", "request", customError.CodeRequired)
	}

	checks := []func(*domain.CreateAgreementRequest) error{
		val.validateRequired,
		val.validateDates,
		val.validatePrice,
		val.validateCurrency,
		val.validateFrequency,
		val.validateIdentifiers,
		val.validateMetadata,
	}

	for _, check := range checks {
		if err := check(req); err != nil {
			return err
		}
	}

	return nil
}

func (val *Validator) validateRequired(req *domain.CreateAgreementRequest) error {
	for _, f := range idFields(req) {
		if err := val.v.Var(strings.TrimSpace(f.value), "required"); err != nil {
			return customError.NewValidationError(fmt.Sprintf("%s is required", f.name), f.name, customError.CodeRequired)
		}
	}
	return nil
}

func parseRequestDate(value, field string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, customError.NewValidationError(fmt.Sprintf("%s is required", field), field, customError.CodeRequired)
	}

	parsed, err := utils.ParseDate(value)
	if err != nil {
		return time.Time{}, customError.NewValidationError(fmt.Sprintf("%s is not a valid date", field), field, customError.CodeInvalidFormat)
	}
	return parsed, nil
}

func (val *Validator) validateDates(req *domain.CreateAgreementRequest) error {
	start, err := parseRequestDate(req.StartDate, "start_date")
	if err != nil {
		return err
	}

	end, err := parseRequestDate(req.EndDate, "end_date")
	if err != nil {
		return err
	}

	if utils.DateOnly(start).Before(utils.DateOnly(val.now())) {
		return customError.NewValidationError("start_date cannot be in the past", "start_date", customError.CodePastDate)
	}

	if !end.After(start) {
		return customError.NewValidationError("end_date must be after start_date", "end_date", customError.CodeInvalidRange)
	}

	if end.After(start.AddDate(val.policy.MaxLeasingYears, 0, 0)) {
		return customError.NewValidationError(
			fmt.Sprintf("leasing duration cannot exceed %d years", val.policy.MaxLeasingYears),
			"end_date", customError.CodeDurationExceeded)
	}

	if end.Before(start.AddDate(0, 0, val.policy.MinLeasingDays)) {
		return customError.NewValidationError(
			fmt.Sprintf("leasing duration must be at least %d days", val.policy.MinLeasingDays),
			"end_date", customError.CodeDurationTooShort)
	}

	return nil
}

func (val *Validator) validatePrice(req *domain.CreateAgreementRequest) error {
	price, err := utils.DecimalFromString(req.Price.String())
	if err != nil {
		return customError.NewValidationError("price must be a number", "price", customError.CodeInvalidType)
	}

	if !price.IsPositive() {
		return customError.NewValidationError("price must be greater than 0", "price", customError.CodeInvalidValue)
	}

	if price.GreaterThan(val.policy.MaxPrice) {
		return customError.NewValidationError(
			fmt.Sprintf("price cannot exceed %s", val.policy.MaxPrice.String()),
			"price", customError.CodeExceedsLimit)
	}

	if !utils.HasCentPrecision(price) {
		return customError.NewValidationError("price can have at most 2 decimal places", "price", customError.CodeInvalidPrecision)
	}

	return nil
}

func (val *Validator) validateCurrency(req *domain.CreateAgreementRequest) error {
	if err := val.v.Var(req.Currency, "required,"+val.currencyTag); err != nil {
		return customError.NewValidationError(
			fmt.Sprintf("currency must be one of %s", strings.Join(val.policy.CurrencyList(), ", ")),
			"currency", customError.CodeUnsupportedCurrency)
	}
	return nil
}

func (val *Validator) validateFrequency(req *domain.CreateAgreementRequest) error {
	if err := val.v.Var(req.PaymentFrequency, "required,"+val.frequencyTag); err != nil {
		return customError.NewValidationError(
			"payment_frequency must be MONTHLY, QUARTERLY or ANNUALLY",
			"payment_frequency", customError.CodeInvalidFrequency)
	}
	return nil
}

func (val *Validator) validateIdentifiers(req *domain.CreateAgreementRequest) error {
	for _, f := range idFields(req) {
		value := f.value
		if err := val.v.Var(value, "min=3,max=50"); err != nil {
			return customError.NewValidationError(
				fmt.Sprintf("%s must be between 3 and 50 characters", f.name),
				f.name, customError.CodeInvalidLength)
		}
		if err := val.v.Var(value, val.identifierTag); err != nil {
			return customError.NewValidationError(
				fmt.Sprintf("%s may only contain letters, digits, '_' and '-'", f.name),
				f.name, customError.CodeInvalidFormat)
		}
	}
	return nil
}

func (val *Validator) validateMetadata(req *domain.CreateAgreementRequest) error {
	if req.Metadata == nil {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(req.Metadata); err != nil {
		return customError.NewValidationError("metadata must be serializable", "metadata", customError.CodeInvalidFormat)
	}
	raw := bytes.TrimSpace(buf.Bytes())

	if len(raw) > maxMetadataBytes {
		return customError.NewValidationError("metadata cannot exceed 10KB", "metadata", customError.CodeSizeExceeded)
	}

	if prohibitedRegex.Match(raw) {
		return customError.NewValidationError("metadata contains prohibited content", "metadata", customError.CodeProhibitedContent)
	}

	return nil
}
