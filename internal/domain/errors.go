package domain

import (
	"errors"
	"fmt"
)

// ErrNoStartRecord is returned when a test is stopped without a matching start.
var ErrNoStartRecord = errors.New("no start record for test")

// BridgeError is the base error type with context.
type BridgeError struct {
	Phase      string // "config", "scan", "decode", "report"
	Test       string
	Message    string
	Suggestion string
	Cause      error
}

func (e *BridgeError) Error() string {
	s := fmt.Sprintf("[%s]", e.Phase)
	if e.Test != "" {
		s += fmt.Sprintf(" %s", e.Test)
	}
	s += fmt.Sprintf(": %s", e.Message)
	if e.Cause != nil {
		s += fmt.Sprintf(": %v", e.Cause)
	}
	if e.Suggestion != "" {
		s += fmt.Sprintf(" (hint: %s)", e.Suggestion)
	}
	return s
}

func (e *BridgeError) Unwrap() error {
	return e.Cause
}

// NewError creates a new BridgeError.
func NewError(phase, test, message string, cause error) *BridgeError {
	return &BridgeError{
		Phase:   phase,
		Test:    test,
		Message: message,
		Cause:   cause,
	}
}

// NewErrorWithSuggestion creates a BridgeError carrying a hint for the user.
func NewErrorWithSuggestion(phase, test, message, suggestion string, cause error) *BridgeError {
	e := NewError(phase, test, message, cause)
	e.Suggestion = suggestion
	return e
}
