package apperrors

import "errors"

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicateTraceNumber indicates that the store rejected a write because the trace number already exists.
var ErrDuplicateTraceNumber = errors.New("duplicate trace number")

// ErrConstraintViolation indicates that the store rejected a write on a check constraint.
var ErrConstraintViolation = errors.New("constraint violation")

// ErrPersistence indicates any other storage failure (connectivity, syntax, internal invariants).
var ErrPersistence = errors.New("persistence failure")

// AppError carries a client-facing message alongside the kind and underlying cause.
// Kind is one of the sentinel errors above so callers can use errors.Is.
type AppError struct {
	Kind    error
	Message string
	Err     error
}

// NewAppError creates an AppError of the given kind.
func NewAppError(kind error, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Is reports whether target matches the error kind.
func (e *AppError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Message returns the human-readable message of the first AppError in err's chain,
// or fallback when there is none.
func Message(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
