package fleet

import (
	"errors"
	"fmt"
	"strings"
)

// Kind sentinels. Every error returned by the Coordinator unwraps to
// exactly one of these, so callers can map them with errors.Is without
// inspecting the concrete type.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrIneligible        = errors.New("resource not eligible")
	ErrCapacityExceeded  = errors.New("capacity exceeded")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError reports a missing or malformed required field. The
// message is surfaced verbatim to the operator.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError reports an operation that referenced an id absent from
// its collection.
type NotFoundError struct {
	Kind string // "vehicle", "driver", "trip", "maintenance record", "fuel log"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// IneligibleResourceError reports a vehicle or driver that fails the
// eligibility checks for the requested transition, with the specific
// reason (wrong status vs expired license).
type IneligibleResourceError struct {
	Kind   string
	ID     string
	Reason string
}

func (e *IneligibleResourceError) Error() string {
	return fmt.Sprintf("%s %q is not eligible: %s", e.Kind, e.ID, e.Reason)
}

func (e *IneligibleResourceError) Unwrap() error { return ErrIneligible }

// CapacityExceededError reports cargo weight over the vehicle's maximum.
// Both quantities are carried so the operator sees them.
type CapacityExceededError struct {
	CargoWeight float64
	Capacity    float64
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("cargo weight (%g kg) exceeds vehicle max capacity (%g kg)",
		e.CargoWeight, e.Capacity)
}

func (e *CapacityExceededError) Unwrap() error { return ErrCapacityExceeded }

// InvalidTransitionError reports an attempted transition from a terminal
// or incompatible state.
type InvalidTransitionError struct {
	Kind string
	ID   string
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s %q cannot move from %q to %q", e.Kind, e.ID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// DanglingReferenceWarning flags an operation that leaves live records
// pointing at an id that no longer resolves (or at a vehicle whose
// status no longer matches theirs). It is advisory, not an error: the
// operation still proceeds, and display code must already resolve
// unknown ids as "unknown".
type DanglingReferenceWarning struct {
	Kind string   // entity kind the references point at
	ID   string   // the affected id
	Refs []string // ids of the records left pointing at it
}

func (w *DanglingReferenceWarning) Message() string {
	return fmt.Sprintf("%s %q is still referenced by active records: %s",
		w.Kind, w.ID, strings.Join(w.Refs, ", "))
}
