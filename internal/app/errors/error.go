package errors

import (
	"net/http"
	"reflect"

	"github.com/sirupsen/logrus"
)

// Error codes for better client error handling
const (
	ErrCodeMissingDocumentation = "MISSING_DOCUMENTATION"
	ErrCodeMixedSubcontractor   = "MIXED_SUBCONTRACTOR"
	ErrCodeEmptySelection       = "EMPTY_SELECTION"
	ErrCodeMissingReference     = "MISSING_REFERENCE"
	ErrCodeUserCancelled        = "USER_CANCELLED"
	ErrCodeInvalidTransition    = "INVALID_TRANSITION"
	ErrCodeBaseCostLocked       = "BASE_COST_LOCKED"
	ErrCodeJobNotFound          = "JOB_NOT_FOUND"
	ErrCodeInvoiceNotFound      = "INVOICE_NOT_FOUND"
)

type AppError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(statusCode int, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// NewDomainError creates a recoverable, user-facing validation error carrying
// a machine-readable code from the billing error taxonomy. Domain errors are
// always detected before any mutation.
func NewDomainError(code, message string) *AppError {
	return &AppError{
		StatusCode: http.StatusUnprocessableEntity,
		Code:       code,
		Message:    message,
	}
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message)
}

func NewInternalServerError(originalError error, message string) *AppError {
	logrus.Errorf("[%s] %s", reflect.TypeOf(originalError).String(), originalError)
	return NewAppError(http.StatusInternalServerError, message)
}

// HasCode reports whether err is an AppError carrying the given domain code.
func HasCode(err error, code string) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}
