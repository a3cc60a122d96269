package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/transaction_records_app/internal/core/domain"
	"github.com/SscSPs/transaction_records_app/internal/core/validation"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is a create payload that has already passed validation.
type CreateTransactionRequest struct {
	AccountNumberFrom string          `json:"accountNumberFrom" example:"123456789"`
	AccountTypeFrom   string          `json:"accountTypeFrom" example:"CHECKING"`
	AccountNumberTo   string          `json:"accountNumberTo" example:"987654321"`
	AccountTypeTo     string          `json:"accountTypeTo" example:"SAVINGS"`
	Amount            decimal.Decimal `json:"amount" swaggertype:"number" example:"100.50"`
	Memo              string          `json:"memo" example:"Rent"`
}

// NewCreateTransactionRequest builds the request from a field map that passed
// validation.ValidateCreate.
func NewCreateTransactionRequest(fields map[string]any) (CreateTransactionRequest, error) {
	amount, err := validation.ParseAmount(fields[validation.FieldAmount])
	if err != nil {
		return CreateTransactionRequest{}, fmt.Errorf("amount: %w", err)
	}
	return CreateTransactionRequest{
		AccountNumberFrom: stringField(fields, validation.FieldAccountNumberFrom),
		AccountTypeFrom:   stringField(fields, validation.FieldAccountTypeFrom),
		AccountNumberTo:   stringField(fields, validation.FieldAccountNumberTo),
		AccountTypeTo:     stringField(fields, validation.FieldAccountTypeTo),
		Amount:            amount,
		Memo:              stringField(fields, validation.FieldMemo),
	}, nil
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}

// TransactionResponse is the external representation of a transaction.
type TransactionResponse struct {
	TransactionID     string    `json:"transactionID"`
	AccountNumberFrom string    `json:"accountNumberFrom"`
	AccountTypeFrom   string    `json:"accountTypeFrom"`
	AccountNumberTo   string    `json:"accountNumberTo"`
	AccountTypeTo     string    `json:"accountTypeTo"`
	TraceNumber       string    `json:"traceNumber"`
	Amount            string    `json:"amount" example:"100.50"`
	CreationDate      time.Time `json:"creationDate"`
	Memo              string    `json:"memo"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:     txn.TransactionID,
		AccountNumberFrom: txn.AccountNumberFrom,
		AccountTypeFrom:   string(txn.AccountTypeFrom),
		AccountNumberTo:   txn.AccountNumberTo,
		AccountTypeTo:     string(txn.AccountTypeTo),
		TraceNumber:       txn.TraceNumber,
		Amount:            txn.Amount.StringFixed(domain.AmountScale),
		CreationDate:      txn.CreationDate,
		Memo:              txn.Memo,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
// The result is never nil so it renders as a JSON array.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// CreateTransactionResponse is the data block of a successful create.
type CreateTransactionResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Message     string              `json:"message" example:"Transaction created successfully"`
}

// ListTransactionsParams defines query parameters for listing transactions.
// Zero Page or Limit means "not supplied".
type ListTransactionsParams struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// PaginationResponse describes the page returned by a listing.
type PaginationResponse struct {
	CurrentPage int   `json:"currentPage"`
	PerPage     int   `json:"perPage"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int64 `json:"totalPages"`
}

// ListTransactionsResponse is the data block of a successful listing.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationResponse    `json:"pagination"`
}
