package repositories

import (
	"context"

	"github.com/SscSPs/transaction_records_app/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// ListTransactions returns up to limit transactions matching filter, newest first,
	// skipping offset rows, together with the total number of matching rows.
	ListTransactions(ctx context.Context, filter domain.ListFilter, limit int, offset int) (*domain.ListResult, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// CreateTransaction inserts one transaction atomically and returns the stored record,
	// including the store-assigned ID and creation date.
	CreateTransaction(ctx context.Context, txn domain.NewTransaction) (*domain.Transaction, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
