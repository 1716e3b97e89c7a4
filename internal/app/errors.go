package app

import (
	"errors"
	"fmt"
	"strings"
)

// Application errors.
var (
	// ErrClosed indicates the application was shut down.
	ErrClosed = errors.New("application closed")

	// ErrNoMessenger indicates Options.Messenger was not set.
	ErrNoMessenger = errors.New("messenger is required")

	// ErrMarkup indicates a malformed document line.
	ErrMarkup = errors.New("invalid document markup")
)

// ComponentError represents an error from a specific component.
type ComponentError struct {
	Component string // Component name (e.g., "config", "plugins", "controller")
	Action    string // Action being performed
	Err       error  // Underlying error
}

// NewComponentError creates a new ComponentError.
func NewComponentError(component, action string, err error) *ComponentError {
	return &ComponentError{Component: component, Action: action, Err: err}
}

func (e *ComponentError) Error() string {
	if e == nil {
		return ""
	}
	if e.Action != "" {
		return fmt.Sprintf("%s: %s: %v", e.Component, e.Action, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Component, e.Err)
}

func (e *ComponentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ErrorList collects errors from independent steps such as shutdown.
type ErrorList struct {
	errs []error
}

// Add appends err if it is not nil.
func (e *ErrorList) Add(err error) {
	if err != nil {
		e.errs = append(e.errs, err)
	}
}

// Len returns the number of errors.
func (e *ErrorList) Len() int { return len(e.errs) }

func (e *ErrorList) Error() string {
	msgs := make([]string, len(e.errs))
	for i, err := range e.errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap returns the collected errors for errors.Is and errors.As.
func (e *ErrorList) Unwrap() []error { return e.errs }

// AsError returns nil for an empty list, else the list itself.
func (e *ErrorList) AsError() error {
	if len(e.errs) == 0 {
		return nil
	}
	return e
}
