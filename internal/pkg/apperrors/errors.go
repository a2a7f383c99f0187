package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrNotFound        = errors.New("resource not found")
	ErrAlreadyExists   = errors.New("resource already exists")
	ErrConflict        = errors.New("conflict")
	ErrStudentMismatch = errors.New("resource does not belong to the referenced student")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account is locked")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTwoFactorRequired  = errors.New("two-factor code required")
	ErrTwoFactorInvalid   = errors.New("invalid two-factor code")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Student errors
var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrProfileAlreadyExists = errors.New("student profile already exists")
)

// Credit errors
var (
	ErrCreditNotFound       = errors.New("credit not found")
	ErrCreditNotPending     = errors.New("credit is not pending")
	ErrCreditDuplicate      = errors.New("credit with the same activity already submitted")
	ErrCreditValidatedState = errors.New("validated credits cannot be deleted")
)

// Event errors
var (
	ErrEventNotFound         = errors.New("event not found")
	ErrEventStarted          = errors.New("event has already started")
	ErrAlreadyRegistered     = errors.New("already registered for this event")
	ErrParticipationNotFound = errors.New("participation not found")
	ErrInvalidTransition     = errors.New("invalid participation status transition")
)

// Password reset errors
var (
	ErrInvalidResetToken = errors.New("invalid or expired password reset token")
)

// NewNotFoundError creates a custom not-found error with a message
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrNotFound, Message: message}
}

// NewConflictError creates a custom conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a custom permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewValidationError creates a custom validation error with a message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
