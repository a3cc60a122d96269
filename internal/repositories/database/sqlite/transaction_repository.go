package sqlite

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/transaction_records_app/internal/apperrors"
	"github.com/SscSPs/transaction_records_app/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_records_app/internal/core/ports/repositories"
	"github.com/SscSPs/transaction_records_app/internal/middleware"
	"github.com/SscSPs/transaction_records_app/internal/models"
	"github.com/SscSPs/transaction_records_app/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

const (
	msgCreateFailed = "Failed to create transaction"
	msgListFailed   = "Failed to retrieve transactions"
)

type GormTransactionRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormTransactionRepository creates a transaction repository on an opened database.
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*GormTransactionRepository)(nil)

// NewRepositoryProvider wires the SQLite repositories.
func NewRepositoryProvider(db *gorm.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: NewGormTransactionRepository(db),
	}
}

// CreateTransaction inserts txn and reads the stored row back inside one transaction.
func (r *GormTransactionRepository) CreateTransaction(ctx context.Context, txn domain.NewTransaction) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	row := mapping.ToModelTransaction(txn)
	row.TransactionID = uuid.NewString()
	row.CreationDate = r.now()

	var stored models.Transaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return tx.Where("transaction_id = ?", row.TransactionID).Take(&stored).Error
	})
	if err != nil {
		logger.Error("Failed to insert transaction",
			slog.String("error", err.Error()),
			slog.String("trace_number", row.TraceNumber))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrPersistence, msgCreateFailed, errors.New("no row returned"))
		}
		return nil, classifyError(err, msgCreateFailed)
	}

	domainTxn := mapping.ToDomainTransaction(stored)
	return &domainTxn, nil
}

// ListTransactions counts the rows matching filter and then fetches one page, newest first.
func (r *GormTransactionRepository) ListTransactions(ctx context.Context, filter domain.ListFilter, limit int, offset int) (*domain.ListResult, error) {
	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Transaction{})
		if filter.StartDate != nil {
			q = q.Where("creation_date >= ?", filter.StartDate.UTC())
		}
		if end := filter.EndExclusive(); end != nil {
			q = q.Where("creation_date < ?", end.UTC())
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrPersistence, msgListFailed, err)
	}

	var rows []models.Transaction
	if err := scoped().Order("creation_date DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrPersistence, msgListFailed, err)
	}

	return &domain.ListResult{
		Items: mapping.ToDomainTransactionSlice(rows),
		Total: total,
	}, nil
}

// classifyError maps sqlite3 constraint codes to domain error kinds.
func classifyError(err error, fallback string) *apperrors.AppError {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique:
			return apperrors.NewAppError(apperrors.ErrDuplicateTraceNumber, "Duplicate trace number detected", err)
		case sqlite3.ErrConstraintCheck:
			return apperrors.NewAppError(apperrors.ErrConstraintViolation, "Invalid data: Check constraints failed", err)
		}
	}
	return apperrors.NewAppError(apperrors.ErrPersistence, fallback, err)
}
