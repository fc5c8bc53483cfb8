package entity

import (
	"errors"
	"fmt"
)

// ErrValidationFailed matches every *ValidationError under errors.Is.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError names the field that failed and why.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is reports whether target is ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
