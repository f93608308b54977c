package resolver

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for programmatic handling.
const (
	ErrCodeDuplicateID        = "DUPLICATE_ID"
	ErrCodeCircularDependency = "CIRCULAR_DEPENDENCY"
	ErrCodeUnknownComponent   = "UNKNOWN_COMPONENT"
)

// ResolveError represents a resolution failure with context.
// All resolver errors are permanent: none of the operations are I/O-bound,
// so there is no retry classification.
type ResolveError struct {
	// Code identifies the failure category.
	Code string `json:"code"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// Component is the component ID that caused the error, if applicable.
	Component string `json:"component,omitempty"`

	// Cycle is the ordered list of component IDs forming a dependency
	// cycle, populated for CIRCULAR_DEPENDENCY errors.
	Cycle []string `json:"cycle,omitempty"`

	// Err is the underlying error, if any.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	if len(e.Cycle) > 0 {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, FormatCycle(e.Cycle))
	}
	if e.Component != "" {
		return fmt.Sprintf("[%s] %s (component=%s)", e.Code, e.Message, e.Component)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *ResolveError) Unwrap() error {
	return e.Err
}

// Is implements error equality for errors.Is; two resolver errors match
// when their codes match.
func (e *ResolveError) Is(target error) bool {
	t, ok := target.(*ResolveError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithComponent adds component context to an error.
func (e *ResolveError) WithComponent(id string) *ResolveError {
	e.Component = id
	return e
}

// NewDuplicateIDError reports two components sharing an id during registry
// construction.
func NewDuplicateIDError(id, firstPath, secondPath string) *ResolveError {
	msg := fmt.Sprintf("duplicate component id %q", id)
	if firstPath != "" && secondPath != "" {
		msg = fmt.Sprintf("duplicate component id %q (declared in %s and %s)", id, firstPath, secondPath)
	}
	return &ResolveError{
		Code:      ErrCodeDuplicateID,
		Message:   msg,
		Component: id,
	}
}

// NewCircularDependencyError reports a dependency cycle reachable from a
// requested selection. The cycle slice is the ordered member list, with the
// entry node repeated at the end.
func NewCircularDependencyError(cycle []string) *ResolveError {
	return &ResolveError{
		Code:    ErrCodeCircularDependency,
		Message: "circular dependency detected",
		Cycle:   cycle,
	}
}

// NewUnknownComponentError reports a resolution request for an id not
// present in the registry.
func NewUnknownComponentError(id string) *ResolveError {
	return &ResolveError{
		Code:      ErrCodeUnknownComponent,
		Message:   "unknown component requested",
		Component: id,
	}
}

// IsDuplicateID returns true if the error is a duplicate-id error.
func IsDuplicateID(err error) bool {
	return hasCode(err, ErrCodeDuplicateID)
}

// IsCircularDependency returns true if the error is a circular-dependency error.
func IsCircularDependency(err error) bool {
	return hasCode(err, ErrCodeCircularDependency)
}

// IsUnknownComponent returns true if the error is an unknown-component error.
func IsUnknownComponent(err error) bool {
	return hasCode(err, ErrCodeUnknownComponent)
}

func hasCode(err error, code string) bool {
	var e *ResolveError
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// FormatCycle formats a cycle path for error messages and logs.
func FormatCycle(cycle []string) string {
	return strings.Join(cycle, " -> ")
}
