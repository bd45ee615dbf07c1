package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Faculty Errors
var (
	ErrFacultyNotFound      = NewCustomError(ErrResourceNotFound, "Faculty not found")
	ErrFacultyAlreadyExists = NewCustomError(ErrResourceAlreadyExists, "Faculty with this name already exists.")
)

// Department Errors
var (
	ErrDepartmentNotFound      = NewCustomError(ErrResourceNotFound, "Department not found")
	ErrDepartmentAlreadyExists = NewCustomError(ErrResourceAlreadyExists, "Department with this name already exists.")
)

// Teacher Errors
var (
	ErrTeacherNotFound = NewCustomError(ErrResourceNotFound, "Teacher not found")
)

// Group Errors
var (
	ErrGroupNotFound      = NewCustomError(ErrResourceNotFound, "Group not found")
	ErrGroupAlreadyExists = NewCustomError(ErrResourceAlreadyExists, "Group with this code already exists.")
	ErrNoGroupsToPromote  = NewCustomError(ErrResourceNotFound, "No groups found to promote")
)

// Subject Errors
var (
	ErrSubjectNotFound      = NewCustomError(ErrResourceNotFound, "Subject not found")
	ErrSubjectAlreadyExists = NewCustomError(ErrResourceAlreadyExists, "Subject with this name already exists.")
	ErrInvalidSearchPattern = NewCustomError(ErrValidationFailed, "Invalid regular expression")
	ErrSearchQueryRequired  = NewCustomError(ErrValidationFailed, "Search query is required")
)

// Session Errors
var (
	ErrSessionNotFound = NewCustomError(ErrResourceNotFound, "Session not found")
)

// Storage constraint errors raised when a check-then-insert loses a race
var (
	ErrReferencedRowNotFound  = NewCustomError(ErrResourceNotFound, "Referenced record not found")
	ErrUniqueConstraintFailed = NewCustomError(ErrResourceAlreadyExists, "Record with this value already exists.")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrResourceAlreadyExists,
		Message: message,
	}
}

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// Message returns the most specific human-readable message carried by err.
// The first CustomError in the chain wins; otherwise err.Error() is used.
func Message(err error) string {
	var custom *CustomError
	if errors.As(err, &custom) {
		return custom.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
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

// WithDetails returns a copy of the error carrying context details.
// Package-level sentinels are shared, so they are never mutated in place.
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	return &CustomError{Err: e, Message: e.Message, Details: details}
}
