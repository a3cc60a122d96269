package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_IsMatchesKind(t *testing.T) {
	cause := errors.New("unique_violation")
	err := NewAppError(ErrDuplicateTraceNumber, "Duplicate trace number detected", cause)

	assert.ErrorIs(t, err, ErrDuplicateTraceNumber)
	assert.ErrorIs(t, err, cause, "cause should stay reachable through Unwrap")
	assert.NotErrorIs(t, err, ErrConstraintViolation)
	assert.Equal(t, "Duplicate trace number detected: unique_violation", err.Error())
}

func TestAppError_WrappedStillMatches(t *testing.T) {
	err := fmt.Errorf("create: %w", NewAppError(ErrPersistence, "Failed to create transaction", nil))

	assert.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, "Failed to create transaction", Message(err, "fallback"))
}

func TestMessage_Fallback(t *testing.T) {
	assert.Equal(t, "fallback", Message(errors.New("plain"), "fallback"))
	assert.Equal(t, "fallback", Message(nil, "fallback"))
}
