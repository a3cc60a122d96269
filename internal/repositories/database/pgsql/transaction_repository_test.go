package pgsql

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/SscSPs/transaction_records_app/internal/apperrors"
	"github.com/SscSPs/transaction_records_app/internal/core/domain"
	"github.com/SscSPs/transaction_records_app/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var transactionColumns = []string{
	"transaction_id", "account_number_from", "account_type_from", "account_number_to",
	"account_type_to", "trace_number", "amount", "creation_date", "memo",
}

func newMockRepo(t *testing.T) (*PgxTransactionRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPgxTransactionRepository(mock), mock
}

func sampleNewTransaction() domain.NewTransaction {
	return domain.NewTransaction{
		AccountNumberFrom: "123456789",
		AccountTypeFrom:   domain.AccountTypeChecking,
		AccountNumberTo:   "987654321",
		AccountTypeTo:     domain.AccountTypeSavings,
		TraceNumber:       "0123456789abcdef0123456789abcdef",
		Amount:            decimal.RequireFromString("100.50"),
		Memo:              "Test transaction",
	}
}

func storedRow(mock pgxmock.PgxPoolIface, created time.Time) *pgxmock.Rows {
	return mock.NewRows(transactionColumns).AddRow(
		"7d9f7c86-3c59-4d6f-9d0c-3f2f5a1f8b21",
		"123456789",
		"CHECKING",
		"987654321",
		"SAVINGS",
		"0123456789abcdef0123456789abcdef",
		decimal.RequireFromString("100.50"),
		created,
		"Test transaction",
	)
}

// anyInsertArgs matches the seven values bound by the insert statement.
func anyInsertArgs() []any {
	args := make([]any, 7)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestColumnListMatchesMockColumns(t *testing.T) {
	assert.Equal(t, len(transactionColumns), len(models.TransactionColumns))
	for i, c := range models.TransactionColumns {
		assert.Equal(t, transactionColumns[i], c.Column)
	}
}

func TestCreateTransaction_Success(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	in := sampleNewTransaction()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO transactions")).
		WithArgs("123456789", "CHECKING", "987654321", "SAVINGS", in.TraceNumber, pgxmock.AnyArg(), "Test transaction").
		WillReturnRows(storedRow(mock, created))
	mock.ExpectCommit()

	txn, err := repo.CreateTransaction(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, "7d9f7c86-3c59-4d6f-9d0c-3f2f5a1f8b21", txn.TransactionID)
	assert.Equal(t, domain.AccountTypeChecking, txn.AccountTypeFrom)
	assert.Equal(t, domain.AccountTypeSavings, txn.AccountTypeTo)
	assert.Equal(t, in.TraceNumber, txn.TraceNumber)
	assert.True(t, in.Amount.Equal(txn.Amount))
	assert.Equal(t, created, txn.CreationDate)
	assert.Equal(t, "Test transaction", txn.Memo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTransaction_ClassifiesConstraintErrors(t *testing.T) {
	tests := []struct {
		name     string
		dbErr    error
		wantKind error
		wantMsg  string
	}{
		{
			name:     "unique violation",
			dbErr:    &pgconn.PgError{Code: "23505", ConstraintName: "transactions_trace_number_key"},
			wantKind: apperrors.ErrDuplicateTraceNumber,
			wantMsg:  "Duplicate trace number detected",
		},
		{
			name:     "check violation",
			dbErr:    &pgconn.PgError{Code: "23514", ConstraintName: "transactions_amount_check"},
			wantKind: apperrors.ErrConstraintViolation,
			wantMsg:  "Invalid data: Check constraints failed",
		},
		{
			name:     "syntax error",
			dbErr:    &pgconn.PgError{Code: "42601"},
			wantKind: apperrors.ErrPersistence,
			wantMsg:  "Failed to create transaction",
		},
		{
			name:     "connection lost",
			dbErr:    errors.New("conn closed"),
			wantKind: apperrors.ErrPersistence,
			wantMsg:  "Failed to create transaction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)

			mock.ExpectBegin()
			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO transactions")).
				WithArgs(anyInsertArgs()...).
				WillReturnError(tt.dbErr)
			mock.ExpectRollback()

			txn, err := repo.CreateTransaction(context.Background(), sampleNewTransaction())

			require.Error(t, err)
			assert.Nil(t, txn)
			assert.ErrorIs(t, err, tt.wantKind)
			assert.Equal(t, tt.wantMsg, apperrors.Message(err, ""))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreateTransaction_NoRowReturned(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO transactions")).
		WithArgs(anyInsertArgs()...).
		WillReturnRows(mock.NewRows(transactionColumns))
	mock.ExpectRollback()

	txn, err := repo.CreateTransaction(context.Background(), sampleNewTransaction())

	require.Error(t, err)
	assert.Nil(t, txn)
	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.Contains(t, err.Error(), "no row returned")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTransaction_BeginFails(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	txn, err := repo.CreateTransaction(context.Background(), sampleNewTransaction())

	require.Error(t, err)
	assert.Nil(t, txn)
	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTransaction_CommitFails(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO transactions")).
		WithArgs(anyInsertArgs()...).
		WillReturnRows(storedRow(mock, time.Now()))
	mock.ExpectCommit().WillReturnError(&pgconn.PgError{Code: "23505"})

	txn, err := repo.CreateTransaction(context.Background(), sampleNewTransaction())

	require.Error(t, err)
	assert.Nil(t, txn)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateTraceNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTransactions_NoFilter(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM transactions")).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(int64(11)))
	mock.ExpectQuery(regexp.QuoteMeta("FROM transactions ORDER BY creation_date DESC LIMIT $1 OFFSET $2")).
		WithArgs(10, 10).
		WillReturnRows(storedRow(mock, created))

	result, err := repo.ListTransactions(context.Background(), domain.ListFilter{}, 10, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(11), result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Test transaction", result.Items[0].Memo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTransactions_DateRange(t *testing.T) {
	repo, mock := newMockRepo(t)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	endExclusive := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM transactions WHERE creation_date >= $1 AND creation_date < $2")).
		WithArgs(start, endExclusive).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE creation_date >= $1 AND creation_date < $2 ORDER BY creation_date DESC LIMIT $3 OFFSET $4")).
		WithArgs(start, endExclusive, 5, 0).
		WillReturnRows(mock.NewRows(transactionColumns))

	result, err := repo.ListTransactions(context.Background(), domain.ListFilter{StartDate: &start, EndDate: &end}, 5, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Total)
	assert.Empty(t, result.Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTransactions_EndDateOnly(t *testing.T) {
	repo, mock := newMockRepo(t)
	end := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM transactions WHERE creation_date < $1")).
		WithArgs(end.AddDate(0, 0, 1)).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $2 OFFSET $3")).
		WithArgs(end.AddDate(0, 0, 1), 10, 0).
		WillReturnRows(mock.NewRows(transactionColumns))

	_, err := repo.ListTransactions(context.Background(), domain.ListFilter{EndDate: &end}, 10, 0)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTransactions_ReadErrorsArePersistence(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).WillReturnError(&pgconn.PgError{Code: "23505"})

	result, err := repo.ListTransactions(context.Background(), domain.ListFilter{}, 10, 0)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.NotErrorIs(t, err, apperrors.ErrDuplicateTraceNumber)
	assert.Equal(t, "Failed to retrieve transactions", apperrors.Message(err, ""))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTransactions_PageQueryFails(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY creation_date DESC")).
		WithArgs(10, 0).
		WillReturnError(errors.New("timeout"))

	result, err := repo.ListTransactions(context.Background(), domain.ListFilter{}, 10, 0)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestViolatedField(t *testing.T) {
	assert.Equal(t, "amount", violatedField(&pgconn.PgError{ConstraintName: "transactions_amount_check"}))
	assert.Equal(t, "traceNumber", violatedField(&pgconn.PgError{ConstraintName: "transactions_trace_number_key"}))
	assert.Equal(t, "accountTypeFrom", violatedField(&pgconn.PgError{ConstraintName: "transactions_account_type_from_check"}))
	assert.Equal(t, "", violatedField(&pgconn.PgError{ConstraintName: "something_else"}))
	assert.Equal(t, "", violatedField(errors.New("plain")))
}

func TestBuildDateConditions(t *testing.T) {
	where, args := buildDateConditions(domain.ListFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	where, args = buildDateConditions(domain.ListFilter{StartDate: &start})
	assert.Equal(t, " WHERE creation_date >= $1", where)
	assert.Equal(t, []any{start}, args)
}
