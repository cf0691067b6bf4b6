package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrAgreementNotFound = errors.New("agreement not found")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrBillingNotFound   = errors.New("billing record not found")
	ErrPaymentNotFound   = errors.New("payment not found")
)

// Validation error codes
const (
	CodeRequired            = "REQUIRED"
	CodeInvalidFormat       = "INVALID_FORMAT"
	CodePastDate            = "PAST_DATE"
	CodeInvalidRange        = "INVALID_RANGE"
	CodeDurationExceeded    = "DURATION_EXCEEDED"
	CodeDurationTooShort    = "DURATION_TOO_SHORT"
	CodeInvalidType         = "INVALID_TYPE"
	CodeInvalidValue        = "INVALID_VALUE"
	CodeExceedsLimit        = "EXCEEDS_LIMIT"
	CodeInvalidPrecision    = "INVALID_PRECISION"
	CodeUnsupportedCurrency = "UNSUPPORTED_CURRENCY"
	CodeInvalidFrequency    = "INVALID_FREQUENCY"
	CodeInvalidLength       = "INVALID_LENGTH"
	CodeSizeExceeded        = "SIZE_EXCEEDED"
	CodeProhibitedContent   = "PROHIBITED_CONTENT"
)

// Business rule codes
const (
	CodeInvalidEmployee = "INVALID_EMPLOYEE"
	CodeItemUnavailable = "ITEM_UNAVAILABLE"
	CodePriceExceeded   = "PRICE_EXCEEDED"
)

// Infrastructure error codes
const (
	ErrCodeAgreementNotFound = "AGREEMENT_NOT_FOUND"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
)

// ValidationError reports malformed or out-of-policy input
type ValidationError struct {
	Message string
	Field   string
	Code    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
}

// NewValidationError creates a new validation error
func NewValidationError(message, field, code string) *ValidationError {
	return &ValidationError{
		Message: message,
		Field:   field,
		Code:    code,
	}
}

// BusinessRuleError reports a failed business precondition on otherwise valid input
type BusinessRuleError struct {
	Message string
	Rule    string
	Code    string
}

func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewBusinessRuleError creates a new business rule error
func NewBusinessRuleError(message, rule, code string) *BusinessRuleError {
	return &BusinessRuleError{
		Message: message,
		Rule:    rule,
		Code:    code,
	}
}

// BusinessError wraps infrastructure failures with a code
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap common errors with business context

func WrapAgreementNotFound(agreementID string) *BusinessError {
	return NewBusinessError(
		ErrCodeAgreementNotFound,
		fmt.Sprintf("Agreement with ID %s not found", agreementID),
		ErrAgreementNotFound,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapInvalidEmployee(employeeID, companyID string) *BusinessRuleError {
	return NewBusinessRuleError(
		fmt.Sprintf("Employee %s does not belong to company %s", employeeID, companyID),
		"employee_company_match",
		CodeInvalidEmployee,
	)
}

func WrapItemUnavailable(itemID string) *BusinessRuleError {
	return NewBusinessRuleError(
		fmt.Sprintf("Item %s is not available for leasing", itemID),
		"item_availability",
		CodeItemUnavailable,
	)
}

func WrapPriceExceeded(price, limit string) *BusinessRuleError {
	return NewBusinessRuleError(
		fmt.Sprintf("Price %s exceeds the maximum of %s", price, limit),
		"price_ceiling",
		CodePriceExceeded,
	)
}

// IsValidation reports whether err is a ValidationError and returns it
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// IsBusinessRule reports whether err is a BusinessRuleError and returns it
func IsBusinessRule(err error) (*BusinessRuleError, bool) {
	var be *BusinessRuleError
	ok := errors.As(err, &be)
	return be, ok
}
