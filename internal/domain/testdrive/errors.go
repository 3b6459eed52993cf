package testdrive

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrInvalidTransition   = errors.New("invalid state transition")
	ErrActorNotPermitted   = errors.New("actor not permitted for this action")
	ErrRequestNotPersisted = errors.New("request has not been persisted")
)

// ValidationError reports per-field problems. errors.Is(err, ErrValidation) holds for it.
type ValidationError struct {
	Fields FieldErrors
}

func NewValidationError(fields FieldErrors) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields.Sorted() {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Code))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// InvalidTransitionError is returned when the action is not accepted from the current status.
type InvalidTransitionError struct {
	RequestID uuid.UUID
	From      Status
	Action    Action
	Reason    string
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("cannot %s request %s in status %s", e.Action, e.RequestID, e.From)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
