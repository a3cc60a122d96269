package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/transaction_records_app/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_records_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/transaction_records_app/internal/core/ports/services"
	"github.com/SscSPs/transaction_records_app/internal/core/validation"
	"github.com/SscSPs/transaction_records_app/internal/dto"
	"github.com/google/uuid"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// TraceNumberGenerator returns a fresh 32 character trace number.
type TraceNumberGenerator func() string

// NewTraceNumber is a UUIDv4 with the hyphens removed.
func NewTraceNumber() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// TransactionServiceOption configures optional dependencies of transactionService.
type TransactionServiceOption func(*transactionService)

// WithTraceNumberGenerator overrides how trace numbers are produced.
func WithTraceNumberGenerator(gen TraceNumberGenerator) TransactionServiceOption {
	return func(s *transactionService) {
		s.newTraceNumber = gen
	}
}

type transactionService struct {
	BaseService
	repo           portsrepo.TransactionRepositoryFacade
	newTraceNumber TraceNumberGenerator
}

// NewTransactionService creates the transaction service backed by repo.
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, opts ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	s := &transactionService{
		repo:           repo,
		newTraceNumber: NewTraceNumber,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction assigns a trace number, upper-cases the account types and
// stores the transaction.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	newTxn := domain.NewTransaction{
		AccountNumberFrom: req.AccountNumberFrom,
		AccountTypeFrom:   domain.AccountType(req.AccountTypeFrom),
		AccountNumberTo:   req.AccountNumberTo,
		AccountTypeTo:     domain.AccountType(req.AccountTypeTo),
		TraceNumber:       s.newTraceNumber(),
		Amount:            req.Amount,
		Memo:              req.Memo,
	}.Normalized()

	txn, err := s.repo.CreateTransaction(ctx, newTxn)
	if err != nil {
		s.LogError(ctx, err, "Failed to create transaction", slog.String("trace_number", newTxn.TraceNumber))
		return nil, fmt.Errorf("failed to create transaction in service: %w", err)
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("trace_number", txn.TraceNumber))
	return txn, nil
}

// ListTransactions returns one page of transactions, newest first.
// Dates are expected to have passed validation.ValidateGetFilters.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	page, limit := ResolvePaging(params.Page, params.Limit)

	filter, err := buildListFilter(params)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	s.LogDebug(ctx, "Listing transactions", slog.Int("page", page), slog.Int("limit", limit), slog.Int("offset", offset))

	result, err := s.repo.ListTransactions(ctx, filter, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions in service: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(result.Items),
		Pagination: dto.PaginationResponse{
			CurrentPage: page,
			PerPage:     limit,
			TotalItems:  result.Total,
			TotalPages:  TotalPages(result.Total, limit),
		},
	}, nil
}

// ResolvePaging applies defaults to page and limit. Zero means "not supplied".
// Page is clamped to [1, validation.MaxPage] and limit to [1, validation.MaxLimit].
func ResolvePaging(page, limit int) (int, int) {
	switch {
	case page < 1:
		page = DefaultPage
	case page > validation.MaxPage:
		page = validation.MaxPage
	}
	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit < 1:
		limit = 1
	case limit > validation.MaxLimit:
		limit = validation.MaxLimit
	}
	return page, limit
}

// TotalPages is ceil(total / perPage).
func TotalPages(total int64, perPage int) int64 {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return (total + int64(perPage) - 1) / int64(perPage)
}

func buildListFilter(params dto.ListTransactionsParams) (domain.ListFilter, error) {
	var filter domain.ListFilter
	if params.StartDate != "" {
		start, err := parseFilterDate(validation.FieldStartDate, params.StartDate)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &start
	}
	if params.EndDate != "" {
		end, err := parseFilterDate(validation.FieldEndDate, params.EndDate)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &end
	}
	return filter, nil
}

func parseFilterDate(field, raw string) (time.Time, error) {
	parsed, err := validation.ParseDate(raw)
	if err != nil {
		return time.Time{}, validation.ValidationErrors{field: "Invalid date format. Use YYYY-MM-DD"}
	}
	return parsed, nil
}
