package entity

import (
	"errors"
	"fmt"
)

// ErrValidationFailed marks any failure to validate configured sources or
// request parameters. Callers wrap it so the cause can still be matched
// with errors.Is.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError reports which field of a source or query failed
// validation and why.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
