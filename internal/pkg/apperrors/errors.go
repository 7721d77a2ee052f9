package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Request errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Course errors
	ErrCourseNotFound = errors.New("course not found")
	ErrCatalogFull    = errors.New("course catalog is full")
)

// ValidationError carries the field-level messages produced by course
// input validation together with the sanitized values, so a failed
// submission can be echoed back into the form.
type ValidationError struct {
	Messages  []string
	Sanitized map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Messages) > 0 {
		return e.Messages[0]
	}
	return ErrValidationFailed.Error()
}

// Unwrap implements errors.Unwrap so errors.Is(err, ErrValidationFailed)
// matches any ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a ValidationError from validation output.
func NewValidationError(messages []string, sanitized map[string]string) *ValidationError {
	return &ValidationError{
		Messages:  messages,
		Sanitized: sanitized,
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
