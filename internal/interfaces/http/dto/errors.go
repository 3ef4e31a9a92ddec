package dto

import (
	"net/http"

	"github.com/erp/ledger/internal/domain/shared"
)

// Transport-level error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = shared.CodeNotFound
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Business rule violations map to 422 so clients can tell them apart
// from malformed input.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:      http.StatusInternalServerError,
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,

	shared.CodeInvalidAmount:          http.StatusBadRequest,
	shared.CodeInsufficientStock:      http.StatusUnprocessableEntity,
	shared.CodeCreditLimitExceeded:    http.StatusUnprocessableEntity,
	shared.CodeInvalidStateTransition: http.StatusUnprocessableEntity,
	shared.CodeAllocationMismatch:     http.StatusUnprocessableEntity,
	shared.CodeOverAllocation:         http.StatusUnprocessableEntity,
	shared.CodeOwnershipMismatch:      http.StatusUnprocessableEntity,
	shared.CodeAlreadyPaid:            http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes default to 400 Bad Request since domain validation
// errors are the common case.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
