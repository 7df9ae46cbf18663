package errors

import (
	"net/http"

	"markeep/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types.
//
// ErrNotRegistered and ErrBadCredentials deliberately share the same HTTP
// code, business code and message so the transport response does not reveal
// whether an email is registered.
var (
	ErrNotRegistered = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Email or password is incorrect",
		"",
	)

	ErrBadCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Email or password is incorrect",
		"",
	)

	ErrDuplicateEmail = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_EMAIL",
		"This email is already registered",
		"",
	)

	ErrAccountNotFound = NewBaseError(
		http.StatusNotFound,
		"ACCOUNT_NOT_FOUND",
		"Account not found",
		"",
	)

	ErrAccountCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"ACCOUNT_CREATION_FAILED",
		"Failed to create account",
		"",
	)

	ErrAccountUpdateFailed = NewBaseError(
		http.StatusInternalServerError,
		"ACCOUNT_UPDATE_FAILED",
		"Failed to update account",
		"",
	)

	// OAuth-related errors
	ErrProviderExchangeFailed = NewBaseError(
		http.StatusUnauthorized,
		"OAUTH_FAILED",
		"OAuth authentication failed",
		"",
	)

	ErrProviderUnknown = NewBaseError(
		http.StatusBadRequest,
		"OAUTH_PROVIDER_UNKNOWN",
		"Unknown OAuth provider",
		"",
	)

	// Session-related errors
	ErrSessionNotFound = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_NOT_FOUND",
		"No renewable session for this account",
		"",
	)

	ErrSessionMismatch = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_MISMATCH",
		"Presented refresh token does not match the active session",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Failed to process password",
		"",
	)

	ErrTokenIssueFailed = NewBaseError(
		http.StatusInternalServerError,
		"TOKEN_ISSUE_FAILED",
		"Failed to issue tokens",
		"",
	)

	// Profile-related errors
	ErrProfileAssetMissing = NewBaseError(
		http.StatusNotFound,
		"PROFILE_ASSET_MISSING",
		"Profile image not found",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)
)

// DatabaseError wraps low-level storage failures with a stable business code.
type DatabaseError struct {
	*BaseError
	cause error
}

// NewDatabaseExecuteError creates a database execution error
func NewDatabaseExecuteError(cause error, details string) *DatabaseError {
	return &DatabaseError{
		BaseError: NewBaseError(
			http.StatusInternalServerError,
			"DATABASE_ERROR",
			"Storage operation failed",
			details,
		),
		cause: cause,
	}
}

// Unwrap exposes the underlying driver error for errors.Is/As.
func (e *DatabaseError) Unwrap() error {
	return e.cause
}
