package payroll

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when an action is not allowed from the current status.
	ErrInvalidTransition = errors.New("invalid payroll status transition")

	// ErrReasonRequired is returned when a rejection carries no reason.
	ErrReasonRequired = errors.New("rejection reason is required")

	// ErrUnknownStatus is returned when a status string is not recognised.
	ErrUnknownStatus = errors.New("unknown payroll status")
)

// TransitionError carries the attempted transition.
type TransitionError struct {
	Key    Key
	From   Status
	Action Action
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s payroll %s in status %s", e.Action, e.Key, e.From)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// UnknownStatusError carries the rejected status value.
type UnknownStatusError struct {
	Value string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown payroll status %q", e.Value)
}

func (e *UnknownStatusError) Unwrap() error { return ErrUnknownStatus }

// IsClientError returns true if the error is due to an invalid request.
func IsClientError(err error) bool {
	return errors.Is(err, ErrReasonRequired) || errors.Is(err, ErrUnknownStatus)
}

// IsConflict returns true if the request conflicts with the current status.
func IsConflict(err error) bool {
	return errors.Is(err, ErrInvalidTransition)
}
