package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Concurrency errors
	ErrStaleVersion = errors.New("record was modified by another request")
	ErrTimeout      = errors.New("store operation timed out")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Course errors
var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseAlreadyExists = errors.New("course already exists")
	ErrCourseHasGrades     = errors.New("course has a grade ledger and cannot be deleted")
)

// Enrollment errors
var (
	ErrAlreadyEnrolled = errors.New("student already enrolled in course")
	ErrNotEnrolled     = errors.New("student not enrolled in course")
)

// Grade ledger errors
var (
	ErrLedgerNotFound      = errors.New("grade ledger not found")
	ErrLedgerAlreadyExists = errors.New("grade ledger already exists for course")
	ErrMarkOutOfRange      = errors.New("mark component out of range")
	ErrDuplicateMarkRow    = errors.New("duplicate student in mark rows")
)

// Identity errors
var (
	ErrProfessorNotFound    = errors.New("professor not found")
	ErrProfessorNotApproved = errors.New("professor not approved")
	ErrStudentNotFound      = errors.New("student not found")
	ErrUsernameTaken        = errors.New("username already taken")
)

// Note errors
var (
	ErrNoteNotFound      = errors.New("note not found")
	ErrNoteAlreadyExists = errors.New("note already exists")
)

// NewNotFoundError creates a custom not-found error with a message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a custom conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewValidationError creates a custom validation error with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
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

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
