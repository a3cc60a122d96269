package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/transaction_records_app/internal/apperrors"
	portssvc "github.com/SscSPs/transaction_records_app/internal/core/ports/services"
	"github.com/SscSPs/transaction_records_app/internal/core/validation"
	"github.com/SscSPs/transaction_records_app/internal/dto"
	"github.com/SscSPs/transaction_records_app/internal/middleware"
	"github.com/SscSPs/transaction_records_app/internal/utils"
	"github.com/gin-gonic/gin"
)

const eventTransactionCreated = "transaction_created"

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	analytics          *utils.PosthogClientWrapper
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade, analytics *utils.PosthogClientWrapper) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		analytics:          analytics,
	}
}

// RegisterTransactionRoutes registers routes related to transactions.
func RegisterTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, analytics *utils.PosthogClientWrapper) {
	h := newTransactionHandler(transactionService, analytics)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
	}
}

// createTransaction godoc
// @Summary Record a transfer
// @Description Validates the payload, assigns a trace number and stores the transaction.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transfer details"
// @Success 201 {object} dto.SuccessResponse{data=dto.CreateTransactionResponse}
// @Failure 400 {object} dto.ErrorResponse "Duplicate trace number or check constraint failure"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Failure 500 {object} dto.ErrorResponse "Database error occurred"
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	fields := decodeObject(c)
	if errs := validation.ValidateCreate(fields); errs.HasErrors() {
		logger.Warn("Validation failed for CreateTransaction", slog.Any("errors", map[string]string(errs)))
		respondValidationError(c, errs)
		return
	}

	req, err := dto.NewCreateTransactionRequest(fields)
	if err != nil {
		logger.Warn("Failed to build CreateTransaction request", slog.String("error", err.Error()))
		respondValidationError(c, map[string]string{validation.FieldAmount: "Amount must be a number"})
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		h.respondServiceError(c, logger, err, "Failed to create transaction")
		return
	}

	logger.Info("Transaction created successfully", slog.String("transaction_id", txn.TransactionID))
	middleware.PosthogEvent(c, h.analytics, eventTransactionCreated, map[string]any{
		"transaction_id":    txn.TransactionID,
		"account_type_from": string(txn.AccountTypeFrom),
		"account_type_to":   string(txn.AccountTypeTo),
	})

	respondSuccess(c, http.StatusCreated, dto.CreateTransactionResponse{
		Transaction: dto.ToTransactionResponse(txn),
		Message:     "Transaction created successfully",
	})
}

// listTransactions godoc
// @Summary List transfers
// @Description Returns transactions newest first, optionally restricted to a creation date range.
// @Tags transactions
// @Produce  json
// @Param   page query int false "Page number (default 1)"
// @Param   limit query int false "Items per page (default 10, max 100)"
// @Param   startDate query string false "Earliest creation date (YYYY-MM-DD)"
// @Param   endDate query string false "Latest creation date, inclusive (YYYY-MM-DD)"
// @Success 200 {object} dto.SuccessResponse{data=dto.ListTransactionsResponse}
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Failure 500 {object} dto.ErrorResponse "Database error occurred"
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	if errs := validation.ValidateGetFilters(queryParams(c)); errs.HasErrors() {
		logger.Warn("Validation failed for ListTransactions", slog.Any("errors", map[string]string(errs)))
		respondValidationError(c, errs)
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListTransactions", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		h.respondServiceError(c, logger, err, "Failed to list transactions")
		return
	}

	respondSuccess(c, http.StatusOK, resp)
}

func (h *transactionHandler) respondServiceError(c *gin.Context, logger *slog.Logger, err error, logMsg string) {
	var verrs validation.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		logger.Warn(logMsg, slog.String("error", err.Error()))
		respondValidationError(c, verrs)
	case errors.Is(err, apperrors.ErrDuplicateTraceNumber), errors.Is(err, apperrors.ErrConstraintViolation):
		logger.Warn(logMsg, slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, apperrors.Message(err, err.Error()))
	case errors.Is(err, apperrors.ErrPersistence):
		logger.Error(logMsg, slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, msgDatabaseError)
	default:
		logger.Error(logMsg, slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, msgUnexpectedError)
	}
}

// decodeObject reads the body as a JSON object, keeping numbers as json.Number.
// It returns nil when the body is missing, malformed, not an object, or followed
// by anything other than whitespace.
func decodeObject(c *gin.Context) map[string]any {
	if c.Request.Body == nil {
		return nil
	}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.UseNumber()

	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil
	}
	fields, _ := payload.(map[string]any)
	return fields
}

// queryParams collects the list filters that were supplied, first value wins.
func queryParams(c *gin.Context) map[string]string {
	params := make(map[string]string)
	query := c.Request.URL.Query()
	for _, key := range []string{validation.FieldPage, validation.FieldLimit, validation.FieldStartDate, validation.FieldEndDate} {
		if values, ok := query[key]; ok && len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}
