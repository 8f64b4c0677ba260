package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessError_UnwrapsToSentinel(t *testing.T) {
	err := WrapLoanNotFound(12)

	assert.True(t, errors.Is(err, ErrLoanNotFound))
	assert.Equal(t, ErrCodeLoanNotFound, err.Code)
	assert.Contains(t, err.Error(), "Loan with ID 12 not found")
}

func TestWrapDatabaseError_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")

	err := WrapDatabaseError(cause)

	assert.ErrorIs(t, err, ErrDatabase)
	assert.ErrorIs(t, err, cause)
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("create loan: %w", WrapInvalidTermLabel(errors.New("bad")))

	assert.Equal(t, ErrCodeInvalidTermLabel, CodeOf(wrapped))
	assert.ErrorIs(t, wrapped, ErrInvalidTermLabel)
	assert.Equal(t, "", CodeOf(errors.New("plain")))
}
