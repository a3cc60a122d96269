package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/transaction_records_app/internal/apperrors"
	"github.com/SscSPs/transaction_records_app/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_records_app/internal/core/ports/repositories"
	"github.com/SscSPs/transaction_records_app/internal/middleware"
	"github.com/SscSPs/transaction_records_app/internal/models"
	"github.com/SscSPs/transaction_records_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	msgCreateFailed = "Failed to create transaction"
	msgListFailed   = "Failed to retrieve transactions"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// NewPgxTransactionRepository creates a new repository for transaction data.
func NewPgxTransactionRepository(pool DBPool) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

var insertTransactionQuery = fmt.Sprintf(`
	INSERT INTO transactions (account_number_from, account_type_from, account_number_to, account_type_to, trace_number, amount, memo)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING %s;
`, models.TransactionColumnList())

// CreateTransaction inserts txn inside a database transaction and returns the stored row.
func (r *PgxTransactionRepository) CreateTransaction(ctx context.Context, txn domain.NewTransaction) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	modelTxn := mapping.ToModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction", slog.String("error", err.Error()))
		return nil, classifyError(err, msgCreateFailed)
	}

	var stored models.Transaction
	err = tx.QueryRow(ctx, insertTransactionQuery,
		modelTxn.AccountNumberFrom,
		modelTxn.AccountTypeFrom,
		modelTxn.AccountNumberTo,
		modelTxn.AccountTypeTo,
		modelTxn.TraceNumber,
		modelTxn.Amount,
		modelTxn.Memo,
	).Scan(stored.ScanTargets()...)
	if err != nil {
		r.rollback(ctx, tx, logger)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAppError(apperrors.ErrPersistence, msgCreateFailed, errors.New("no row returned"))
		}
		appErr := classifyError(err, msgCreateFailed)
		logger.Error("Failed to insert transaction",
			slog.String("error", err.Error()),
			slog.String("trace_number", modelTxn.TraceNumber),
			slog.String("field", violatedField(err)))
		return nil, appErr
	}

	// A failed commit has already rolled back.
	if err := r.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return nil, classifyError(err, msgCreateFailed)
	}

	domainTxn := mapping.ToDomainTransaction(stored)
	return &domainTxn, nil
}

// ListTransactions counts the rows matching filter and then fetches one page, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter domain.ListFilter, limit int, offset int) (*domain.ListResult, error) {
	where, args := buildDateConditions(filter)

	var total int64
	countQuery := "SELECT COUNT(*) FROM transactions" + where
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, classifyReadError(err)
	}

	pageQuery := fmt.Sprintf("SELECT %s FROM transactions%s ORDER BY creation_date DESC LIMIT $%d OFFSET $%d",
		models.TransactionColumnList(), where, len(args)+1, len(args)+2)
	rows, err := r.Pool.Query(ctx, pageQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, classifyReadError(err)
	}
	defer rows.Close()

	modelTxns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		var txn models.Transaction
		err := row.Scan(txn.ScanTargets()...)
		return txn, err
	})
	if err != nil {
		return nil, classifyReadError(err)
	}

	return &domain.ListResult{
		Items: mapping.ToDomainTransactionSlice(modelTxns),
		Total: total,
	}, nil
}

func (r *PgxTransactionRepository) rollback(ctx context.Context, tx pgx.Tx, logger *slog.Logger) {
	if err := r.Rollback(ctx, tx); err != nil {
		logger.Error("Failed to rollback transaction", slog.String("error", err.Error()))
	}
}

// buildDateConditions returns a WHERE clause (with leading space) and its arguments.
func buildDateConditions(filter domain.ListFilter) (string, []any) {
	var conditions []string
	var args []any
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("creation_date >= $%d", len(args)))
	}
	if end := filter.EndExclusive(); end != nil {
		args = append(args, *end)
		conditions = append(conditions, fmt.Sprintf("creation_date < $%d", len(args)))
	}
	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// classifyReadError never reports constraint kinds; reads only fail as persistence errors.
func classifyReadError(err error) error {
	return apperrors.NewAppError(apperrors.ErrPersistence, msgListFailed, err)
}

// violatedField names the external field behind a check constraint such as
// transactions_amount_check, or "" when it cannot be derived.
func violatedField(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.ConstraintName == "" {
		return ""
	}
	column := strings.TrimSuffix(strings.TrimPrefix(pgErr.ConstraintName, "transactions_"), "_check")
	column = strings.TrimSuffix(column, "_key")
	if field, ok := models.ExternalField(column); ok {
		return field
	}
	return ""
}
