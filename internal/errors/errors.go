package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches on the error code so wrapped copies compare equal to
// their sentinel.
func (e *DomainError) Is(target error) bool {
	var domainErr *DomainError
	if errors.As(target, &domainErr) {
		return e.Code == domainErr.Code
	}
	return false
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Predefined domain errors
var (
	// Account errors
	ErrAccountNotFound    = NewDomainError("ACCOUNT_NOT_FOUND", "account not found")
	ErrEmailExists        = NewDomainError("EMAIL_EXISTS", "email already registered")
	ErrAccountLocked      = NewDomainError("ACCOUNT_LOCKED", "account temporarily locked after repeated failed logins")
	ErrAlreadyVerified    = NewDomainError("ALREADY_VERIFIED", "email is already verified")
	ErrAccountDeactivated = NewDomainError("ACCOUNT_DEACTIVATED", "account is deactivated")

	// Authentication errors
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "invalid email or password")
	ErrUnauthorized       = NewDomainError("UNAUTHORIZED", "unauthorized")
	ErrForbidden          = NewDomainError("FORBIDDEN", "insufficient permissions")
	ErrInvalidToken       = NewDomainError("INVALID_TOKEN", "invalid or expired token")
	ErrIncorrectPassword  = NewDomainError("INCORRECT_PASSWORD", "current password is incorrect")

	// Two-factor errors
	ErrTwoFactorNotEnrolled = NewDomainError("TWO_FACTOR_NOT_ENROLLED", "two-factor enrollment has not been started")
	ErrInvalidTwoFactorCode = NewDomainError("INVALID_TWO_FACTOR_CODE", "invalid two-factor code")

	// Validation errors
	ErrInvalidInput     = NewDomainError("INVALID_INPUT", "invalid input")
	ErrPasswordMismatch = NewDomainError("PASSWORD_MISMATCH", "new password and confirmation do not match")

	// Dependency errors
	ErrEmailDelivery = NewDomainError("EMAIL_DELIVERY_FAILED", "failed to deliver email")

	// System errors
	ErrInternal = NewDomainError("INTERNAL_ERROR", "internal server error")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes.
// This should only be used in the handler/presentation layer.
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request
	case "INVALID_INPUT", "PASSWORD_MISMATCH", "TWO_FACTOR_NOT_ENROLLED":
		return http.StatusBadRequest

	// 401 Unauthorized
	case "UNAUTHORIZED", "INVALID_CREDENTIALS", "INVALID_TOKEN",
		"INCORRECT_PASSWORD", "INVALID_TWO_FACTOR_CODE":
		return http.StatusUnauthorized

	// 403 Forbidden
	case "FORBIDDEN", "ACCOUNT_DEACTIVATED":
		return http.StatusForbidden

	// 404 Not Found
	case "ACCOUNT_NOT_FOUND":
		return http.StatusNotFound

	// 409 Conflict
	case "EMAIL_EXISTS", "ALREADY_VERIFIED":
		return http.StatusConflict

	// 423 Locked
	case "ACCOUNT_LOCKED":
		return http.StatusLocked

	// 502 Bad Gateway
	case "EMAIL_DELIVERY_FAILED":
		return http.StatusBadGateway

	// 500 Internal Server Error (default)
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
