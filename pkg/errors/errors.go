package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrClientNotFound   = errors.New("client not found")
	ErrLoanNotFound     = errors.New("loan not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrClientExists     = errors.New("client already exists")
	ErrInvalidTermLabel = errors.New("invalid term label")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrDatabase         = errors.New("database error")
	ErrCache            = errors.New("cache error")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeClientNotFound   = "CLIENT_NOT_FOUND"
	ErrCodeLoanNotFound     = "LOAN_NOT_FOUND"
	ErrCodePaymentNotFound  = "PAYMENT_NOT_FOUND"
	ErrCodeClientExists     = "CLIENT_ALREADY_EXISTS"
	ErrCodeInvalidTermLabel = "INVALID_TERM_LABEL"
	ErrCodeInvalidAmount    = "INVALID_AMOUNT"
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
	ErrCodeDatabaseError    = "DATABASE_ERROR"
	ErrCodeCacheError       = "CACHE_ERROR"
)

// CodeOf returns the business code carried by err, or "" for plain errors.
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// Wrap common errors with business context
func WrapClientNotFound(clientID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeClientNotFound,
		fmt.Sprintf("Client with ID %d not found", clientID),
		ErrClientNotFound,
	)
}

func WrapLoanNotFound(loanID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan with ID %d not found", loanID),
		ErrLoanNotFound,
	)
}

func WrapPaymentNotFound(paymentID int64) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentNotFound,
		fmt.Sprintf("Payment with ID %d not found", paymentID),
		ErrPaymentNotFound,
	)
}

func WrapClientExists(dni string) *BusinessError {
	return NewBusinessError(
		ErrCodeClientExists,
		fmt.Sprintf("Client with DNI %s already exists", dni),
		ErrClientExists,
	)
}

func WrapInvalidTermLabel(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidTermLabel,
		"term label does not match a plan and is not a usable number of periods",
		fmt.Errorf("%w: %w", ErrInvalidTermLabel, err),
	)
}

func WrapInvalidAmount(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidAmount,
		"amount is not valid",
		fmt.Errorf("%w: %w", ErrInvalidAmount, err),
	)
}

func WrapInvalidRequest(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidRequest,
		"request is not valid",
		fmt.Errorf("%w: %w", ErrInvalidRequest, err),
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		fmt.Errorf("%w: %w", ErrDatabase, err),
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		fmt.Errorf("%w: %w", ErrCache, err),
	)
}
