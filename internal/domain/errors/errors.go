package errors

import (
	"errors"
	"fmt"
)

var (
	// User errors
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrUnauthorized   = errors.New("unauthorized")

	// Account errors
	ErrAccountNotFound      = errors.New("account not found")
	ErrDuplicateAccountName = errors.New("account name already exists for this user")
	ErrAccountClosed        = errors.New("account is closed")
	ErrMainAccountClose     = errors.New("main account cannot be closed")
	ErrPendingTransfers     = errors.New("account has pending transfers")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInvalidAmount        = errors.New("invalid amount")

	// Transfer errors
	ErrTransferNotFound       = errors.New("transfer not found")
	ErrSameAccount            = errors.New("source and target accounts are the same")
	ErrTransferSettled        = errors.New("transfer already settled")
	ErrTransferCancelled      = errors.New("transfer already cancelled")
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// Beneficiary errors
	ErrBeneficiaryNotFound   = errors.New("beneficiary not found")
	ErrDuplicateBeneficiary  = errors.New("beneficiary already exists")
	ErrOwnAccountBeneficiary = errors.New("cannot add your own account as beneficiary")

	// Store errors
	ErrCommitConflict = errors.New("commit conflict")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidInput     = errors.New("invalid input")
)

// DomainError wraps errors with additional context
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
