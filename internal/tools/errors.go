package tools

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateTool is returned by Register when the key is already taken
var ErrDuplicateTool = errors.New("tool already registered")

// FieldError describes one rejected input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when an input record fails its tool's rules.
// It is always produced before execution starts.
type ValidationError struct {
	Tool   Key
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return fmt.Sprintf("invalid input for %s: %s", e.Tool, strings.Join(parts, "; "))
}

// Field returns the message recorded for field, if any
func (e *ValidationError) Field(name string) (string, bool) {
	for _, fe := range e.Errors {
		if fe.Field == name {
			return fe.Message, true
		}
	}
	return "", false
}

// NotFoundError is returned for an unknown tool key
type NotFoundError struct {
	Key       string
	Available []Key
}

func (e *NotFoundError) Error() string {
	names := make([]string, len(e.Available))
	for i, k := range e.Available {
		names[i] = string(k)
	}
	return fmt.Sprintf("Tool '%s' not found. Available tools: %s", e.Key, strings.Join(names, ", "))
}

// ExecutionError wraps a failure inside Execute after validation passed.
// This is a defect, not an expected error path.
type ExecutionError struct {
	Tool  Key
	Cause error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s execution failed: %v", e.Tool, e.Cause)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}
