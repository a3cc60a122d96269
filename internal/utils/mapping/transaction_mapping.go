package mapping

import (
	"github.com/SscSPs/transaction_records_app/internal/core/domain"
	"github.com/SscSPs/transaction_records_app/internal/models"
)

// ToDomainTransaction converts a stored row to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		AccountNumberFrom: m.AccountNumberFrom,
		AccountTypeFrom:   domain.AccountType(m.AccountTypeFrom),
		AccountNumberTo:   m.AccountNumberTo,
		AccountTypeTo:     domain.AccountType(m.AccountTypeTo),
		TraceNumber:       m.TraceNumber,
		Amount:            m.Amount,
		CreationDate:      m.CreationDate,
		Memo:              m.Memo,
	}
}

// ToDomainTransactionSlice converts stored rows to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

// ToModelTransaction converts a new transaction into a row ready for insertion.
// Store-assigned columns are left zero.
func ToModelTransaction(n domain.NewTransaction) models.Transaction {
	return models.Transaction{
		AccountNumberFrom: n.AccountNumberFrom,
		AccountTypeFrom:   string(n.AccountTypeFrom),
		AccountNumberTo:   n.AccountNumberTo,
		AccountTypeTo:     string(n.AccountTypeTo),
		TraceNumber:       n.TraceNumber,
		Amount:            n.Amount,
		Memo:              n.Memo,
	}
}
