package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound  = errors.New("resource not found")
	ErrConflict          = errors.New("conflict")
	ErrDependencyMissing = errors.New("referenced resource does not exist")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// User errors
var (
	ErrUserNotFound       = NewCustomError(ErrResourceNotFound, "user not found")
	ErrEmailAlreadyExists = NewCustomError(ErrConflict, "email already exists")
	ErrUserAlreadyLinked  = NewCustomError(ErrConflict, "user already has a profile of this kind")
)

// Resource family errors
var (
	ErrTeacherNotFound = NewCustomError(ErrResourceNotFound, "teacher not found")
	ErrCourseNotFound  = NewCustomError(ErrResourceNotFound, "course not found")
	ErrBatchNotFound   = NewCustomError(ErrResourceNotFound, "batch not found")
	ErrStudentNotFound = NewCustomError(ErrResourceNotFound, "student not found")
)

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a new custom error for rejected input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewDependencyMissingError reports that a referenced association does not resolve.
func NewDependencyMissingError(message string) error {
	return &CustomError{
		Err:     ErrDependencyMissing,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// Message returns the most specific user-facing message carried by err.
func Message(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return ""
}
