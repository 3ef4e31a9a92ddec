package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
)

// Ledger error codes shared across contexts. Each operation builds its own
// message; the code is what callers and the HTTP layer dispatch on.
const (
	CodeNotFound               = "NOT_FOUND"
	CodeInvalidAmount          = "INVALID_AMOUNT"
	CodeInsufficientStock      = "INSUFFICIENT_STOCK"
	CodeCreditLimitExceeded    = "CREDIT_LIMIT_EXCEEDED"
	CodeInvalidStateTransition = "INVALID_STATE_TRANSITION"
	CodeAllocationMismatch     = "ALLOCATION_MISMATCH"
	CodeOverAllocation         = "OVER_ALLOCATION"
	CodeOwnershipMismatch      = "RECEIVABLE_OWNERSHIP_MISMATCH"
	CodeAlreadyPaid            = "ALREADY_PAID"
)

// IsDomainError reports whether err is a DomainError with the given code.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}
