package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persisted row of the transactions table.
type Transaction struct {
	TransactionID     string          `db:"transaction_id" gorm:"column:transaction_id;primaryKey"`
	AccountNumberFrom string          `db:"account_number_from" gorm:"column:account_number_from"`
	AccountTypeFrom   string          `db:"account_type_from" gorm:"column:account_type_from"`
	AccountNumberTo   string          `db:"account_number_to" gorm:"column:account_number_to"`
	AccountTypeTo     string          `db:"account_type_to" gorm:"column:account_type_to"`
	TraceNumber       string          `db:"trace_number" gorm:"column:trace_number"`
	Amount            decimal.Decimal `db:"amount" gorm:"column:amount"`
	CreationDate      time.Time       `db:"creation_date" gorm:"column:creation_date"`
	Memo              string          `db:"memo" gorm:"column:memo"`
}

// TableName is used by gorm.
func (Transaction) TableName() string {
	return "transactions"
}

// ColumnMapping pairs a storage column with the external camelCase field name.
type ColumnMapping struct {
	Column string
	Field  string
}

// TransactionColumns is the ordered translation table between the transactions
// table and the external API contract. Select lists, RETURNING clauses and scan
// targets all follow this order.
var TransactionColumns = []ColumnMapping{
	{Column: "transaction_id", Field: "transactionID"},
	{Column: "account_number_from", Field: "accountNumberFrom"},
	{Column: "account_type_from", Field: "accountTypeFrom"},
	{Column: "account_number_to", Field: "accountNumberTo"},
	{Column: "account_type_to", Field: "accountTypeTo"},
	{Column: "trace_number", Field: "traceNumber"},
	{Column: "amount", Field: "amount"},
	{Column: "creation_date", Field: "creationDate"},
	{Column: "memo", Field: "memo"},
}

// TransactionColumnList renders the mapped columns as a comma separated SQL list.
func TransactionColumnList() string {
	cols := make([]string, len(TransactionColumns))
	for i, c := range TransactionColumns {
		cols[i] = c.Column
	}
	return strings.Join(cols, ", ")
}

// ExternalField returns the camelCase field name for a storage column.
func ExternalField(column string) (string, bool) {
	for _, c := range TransactionColumns {
		if c.Column == column {
			return c.Field, true
		}
	}
	return "", false
}

// ScanTargets returns pointers to t's fields in TransactionColumns order.
func (t *Transaction) ScanTargets() []any {
	return []any{
		&t.TransactionID,
		&t.AccountNumberFrom,
		&t.AccountTypeFrom,
		&t.AccountNumberTo,
		&t.AccountTypeTo,
		&t.TraceNumber,
		&t.Amount,
		&t.CreationDate,
		&t.Memo,
	}
}
