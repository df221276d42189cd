package model

import "fmt"

// ValidationError reports missing or invalid caller input. Maps to HTTP 400
// at the request boundary.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an unknown identifier. Maps to HTTP 404.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// UpstreamError reports a non-success response from the remote catalog.
// Maps to HTTP 500; the remote status is carried for the error message.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("catalog returned status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("catalog returned status %d", e.Status)
}

// UpstreamTimeoutError reports that a catalog call exceeded its deadline.
// Maps to HTTP 504, distinct from UpstreamError.
type UpstreamTimeoutError struct {
	Err error
}

func (e *UpstreamTimeoutError) Error() string {
	return fmt.Sprintf("catalog request timed out: %v", e.Err)
}

func (e *UpstreamTimeoutError) Unwrap() error { return e.Err }
