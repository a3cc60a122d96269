package handlers

import (
	"net/http"

	"github.com/SscSPs/transaction_records_app/internal/dto"
	"github.com/gin-gonic/gin"
)

const (
	msgValidationFailed = "Validation failed"
	msgDatabaseError    = "Database error occurred"
	msgUnexpectedError  = "An unexpected error occurred"
	msgRouteNotFound    = "Route not found"
	msgMethodNotAllowed = "Method not allowed"
)

func respondSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, dto.SuccessResponse{Status: dto.StatusSuccess, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, dto.ErrorResponse{Status: dto.StatusError, Message: message})
}

func respondValidationError(c *gin.Context, errs map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
		Status:  dto.StatusError,
		Message: msgValidationFailed,
		Errors:  errs,
	})
}

func notFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, msgRouteNotFound)
}

func methodNotAllowed(c *gin.Context) {
	respondError(c, http.StatusMethodNotAllowed, msgMethodNotAllowed)
}
