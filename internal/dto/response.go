package dto

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// SuccessResponse is the envelope for successful responses.
type SuccessResponse struct {
	Status string `json:"status" example:"success"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse is the envelope for failed responses. Errors is only set for validation failures.
type ErrorResponse struct {
	Status  string            `json:"status" example:"error"`
	Message string            `json:"message" example:"Validation failed"`
	Errors  map[string]string `json:"errors,omitempty"`
}
