package model

import (
	"errors"
	"fmt"
)

var ErrProjectNotFound = errors.New("project not found")
var ErrContactNotFound = errors.New("contact not found")
var ErrFileNotFound = errors.New("file not found")

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
