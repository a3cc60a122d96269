// Package validation checks untyped request payloads for the transactions API.
// Every check runs; the result maps a field key to a single message.
package validation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/transaction_records_app/internal/apperrors"
	"github.com/SscSPs/transaction_records_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	FieldJSON              = "json"
	FieldAccountNumberFrom = "accountNumberFrom"
	FieldAccountTypeFrom   = "accountTypeFrom"
	FieldAccountNumberTo   = "accountNumberTo"
	FieldAccountTypeTo     = "accountTypeTo"
	FieldAmount            = "amount"
	FieldMemo              = "memo"
	FieldStartDate         = "startDate"
	FieldEndDate           = "endDate"
	FieldDateRange         = "dateRange"
	FieldPage              = "page"
	FieldLimit             = "limit"

	// DateLayout is the accepted calendar date format for list filters.
	DateLayout = "2006-01-02"

	MaxLimit = 100
	// MaxPage keeps (page-1)*limit well inside the range of an int.
	MaxPage = 1000000
)

const (
	msgInvalidJSON       = "Invalid JSON data provided. Make sure to send valid JSON with Content-Type: application/json"
	msgAmountNotNumber   = "Amount must be a number"
	msgAmountNotPositive = "Amount must be greater than 0"
	msgAmountTooLarge    = "Amount exceeds maximum limit"
	msgAmountPrecision   = "Amount must not have more than 2 decimal places"
	msgMemoNotString     = "Memo must be a string"
	msgInvalidDate       = "Invalid date format. Use YYYY-MM-DD"
	msgDateRange         = "Start date cannot be after end date"
)

var (
	validate = validator.New()

	accountNumberRule = fmt.Sprintf("number,min=%d,max=%d", domain.MinAccountNumberLength, domain.MaxAccountNumberLength)
	accountTypeRule   = "oneof=" + joinAccountTypes(" ")
	memoRule          = fmt.Sprintf("max=%d", domain.MaxMemoLength)

	msgAccountNumber = fmt.Sprintf("Account number must be between %d and %d digits", domain.MinAccountNumberLength, domain.MaxAccountNumberLength)
	msgAccountType   = "Invalid account type. Must be one of: " + joinAccountTypes(", ")
	msgMemoTooLong   = fmt.Sprintf("Memo must not exceed %d characters", domain.MaxMemoLength)
)

// requiredFields is ordered so the reported messages are deterministic.
var requiredFields = []struct {
	field   string
	message string
}{
	{FieldAccountNumberFrom, "Account number from is required"},
	{FieldAccountTypeFrom, "Account type from is required"},
	{FieldAccountNumberTo, "Account number to is required"},
	{FieldAccountTypeTo, "Account type to is required"},
	{FieldAmount, "Amount is required"},
	{FieldMemo, "Memo is required"},
}

// ValidationErrors maps a field key to its error message.
type ValidationErrors map[string]string

// HasErrors reports whether any field failed.
func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + v[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is(err, apperrors.ErrValidation) match.
func (v ValidationErrors) Unwrap() error {
	return apperrors.ErrValidation
}

// ValidateCreate checks a create-transaction payload. A nil map means the body
// was not a JSON object.
func ValidateCreate(fields map[string]any) ValidationErrors {
	errs := ValidationErrors{}

	if fields == nil {
		errs[FieldJSON] = msgInvalidJSON
		return errs
	}

	for _, rf := range requiredFields {
		if isEmpty(fields[rf.field]) {
			errs[rf.field] = rf.message
		}
	}

	for _, field := range []string{FieldAccountNumberFrom, FieldAccountNumberTo} {
		if value, ok := present(fields, field); ok {
			validateAccountNumber(errs, field, value)
		}
	}

	for _, field := range []string{FieldAccountTypeFrom, FieldAccountTypeTo} {
		if value, ok := present(fields, field); ok {
			validateAccountType(errs, field, value)
		}
	}

	if value, ok := present(fields, FieldAmount); ok {
		validateAmount(errs, value)
	}

	if value := fields[FieldMemo]; !isEmpty(value) {
		validateMemo(errs, value)
	}

	return errs
}

// ValidateGetFilters checks list query parameters. A nil map is valid.
func ValidateGetFilters(params map[string]string) ValidationErrors {
	errs := ValidationErrors{}

	if params == nil {
		return errs
	}

	var start, end time.Time
	startOK, endOK := false, false
	if raw := params[FieldStartDate]; raw != "" {
		start, startOK = validateDate(errs, FieldStartDate, raw)
	}
	if raw := params[FieldEndDate]; raw != "" {
		end, endOK = validateDate(errs, FieldEndDate, raw)
	}
	if startOK && endOK && start.After(end) {
		errs[FieldDateRange] = msgDateRange
	}

	if raw, ok := params[FieldPage]; ok {
		validatePaginationParam(errs, FieldPage, raw, 1, MaxPage)
	}
	if raw, ok := params[FieldLimit]; ok {
		validatePaginationParam(errs, FieldLimit, raw, 1, MaxLimit)
	}

	return errs
}

// ParseAmount converts a decoded JSON value into a decimal amount.
// Numbers should be decoded with json.Decoder.UseNumber to keep them exact.
func ParseAmount(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		return decimal.NewFromString(strings.TrimSpace(v))
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	default:
		return decimal.Zero, fmt.Errorf("unsupported amount type %T", value)
	}
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(raw string) (time.Time, error) {
	return time.Parse(DateLayout, raw)
}

func validateAccountNumber(errs ValidationErrors, field string, value any) {
	s, ok := value.(string)
	if !ok || validate.Var(s, accountNumberRule) != nil {
		errs[field] = msgAccountNumber
	}
}

func validateAccountType(errs ValidationErrors, field string, value any) {
	s, ok := value.(string)
	if !ok || validate.Var(strings.ToUpper(s), accountTypeRule) != nil {
		errs[field] = msgAccountType
	}
}

func validateAmount(errs ValidationErrors, value any) {
	amount, err := ParseAmount(value)
	switch {
	case err != nil:
		errs[FieldAmount] = msgAmountNotNumber
	case amount.LessThanOrEqual(decimal.Zero):
		errs[FieldAmount] = msgAmountNotPositive
	case amount.GreaterThan(domain.MaxAmount):
		errs[FieldAmount] = msgAmountTooLarge
	case !amount.Equal(amount.Round(domain.AmountScale)):
		errs[FieldAmount] = msgAmountPrecision
	}
}

func validateMemo(errs ValidationErrors, value any) {
	memo, ok := value.(string)
	if !ok {
		errs[FieldMemo] = msgMemoNotString
		return
	}
	if validate.Var(memo, memoRule) != nil {
		errs[FieldMemo] = msgMemoTooLong
	}
}

func validateDate(errs ValidationErrors, field, raw string) (time.Time, bool) {
	parsed, err := ParseDate(raw)
	if err != nil {
		errs[field] = msgInvalidDate
		return time.Time{}, false
	}
	return parsed, true
}

// validatePaginationParam checks raw against [lower, upper].
func validatePaginationParam(errs ValidationErrors, field, raw string, lower, upper int) {
	label := strings.ToUpper(field[:1]) + field[1:]

	value, err := strconv.Atoi(raw)
	switch {
	case err != nil:
		errs[field] = label + " must be an integer"
	case value < lower:
		errs[field] = fmt.Sprintf("%s must be greater than or equal to %d", label, lower)
	case value > upper:
		errs[field] = fmt.Sprintf("%s must be less than or equal to %d", label, upper)
	}
}

// present reports whether the key exists with a non-null value.
func present(fields map[string]any, key string) (any, bool) {
	value, ok := fields[key]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// isEmpty treats absent, null, "", "0", false and numeric zero as missing.
func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == "" || v == "0"
	case bool:
		return !v
	case json.Number:
		f, err := v.Float64()
		return err == nil && f == 0
	case float64:
		return v == 0
	case int:
		return v == 0
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}

func joinAccountTypes(sep string) string {
	names := make([]string, len(domain.AccountTypes))
	for i, t := range domain.AccountTypes {
		names[i] = string(t)
	}
	return strings.Join(names, sep)
}
