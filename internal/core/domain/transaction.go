package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the category of an account on either side of a transfer.
type AccountType string

const (
	AccountTypeChecking   AccountType = "CHECKING"
	AccountTypeSavings    AccountType = "SAVINGS"
	AccountTypeCredit     AccountType = "CREDIT"
	AccountTypeInvestment AccountType = "INVESTMENT"
)

// AccountTypes lists the valid account types in display order.
var AccountTypes = []AccountType{
	AccountTypeChecking,
	AccountTypeSavings,
	AccountTypeCredit,
	AccountTypeInvestment,
}

// NormalizeAccountType upper-cases raw input. The result is not guaranteed to be valid.
func NormalizeAccountType(raw string) AccountType {
	return AccountType(strings.ToUpper(raw))
}

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	for _, known := range AccountTypes {
		if t == known {
			return true
		}
	}
	return false
}

const (
	MinAccountNumberLength = 9
	MaxAccountNumberLength = 12
	MaxMemoLength          = 255
	AmountScale            = 2
	TraceNumberLength      = 32
)

// MaxAmount is the inclusive upper bound for a transfer amount.
var MaxAmount = decimal.RequireFromString("999999999.99")

// Transaction is an immutable record of a transfer between two accounts.
type Transaction struct {
	TransactionID     string          `json:"transactionID"`
	AccountNumberFrom string          `json:"accountNumberFrom"`
	AccountTypeFrom   AccountType     `json:"accountTypeFrom"`
	AccountNumberTo   string          `json:"accountNumberTo"`
	AccountTypeTo     AccountType     `json:"accountTypeTo"`
	TraceNumber       string          `json:"traceNumber"`
	Amount            decimal.Decimal `json:"amount"`
	CreationDate      time.Time       `json:"creationDate"`
	Memo              string          `json:"memo"`
}

// NewTransaction holds the values written by the store. TransactionID and
// CreationDate are assigned by the store itself.
type NewTransaction struct {
	AccountNumberFrom string
	AccountTypeFrom   AccountType
	AccountNumberTo   string
	AccountTypeTo     AccountType
	TraceNumber       string
	Amount            decimal.Decimal
	Memo              string
}

// Normalized returns a copy with account types upper-cased.
func (n NewTransaction) Normalized() NewTransaction {
	n.AccountTypeFrom = NormalizeAccountType(string(n.AccountTypeFrom))
	n.AccountTypeTo = NormalizeAccountType(string(n.AccountTypeTo))
	return n
}

// ListFilter restricts a listing by creation date. Nil bounds are not applied.
// EndDate is a calendar day and includes every record created on that day.
type ListFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// EndExclusive returns the first instant after EndDate's day, or nil.
func (f ListFilter) EndExclusive() *time.Time {
	if f.EndDate == nil {
		return nil
	}
	end := f.EndDate.AddDate(0, 0, 1)
	return &end
}

// ListResult is one page of transactions together with the unpaginated match count.
type ListResult struct {
	Items []Transaction
	Total int64
}
