/*
errors.go - Error types for the wage engine

The computation functions (durations, holidays, rates, wage, allocation)
never return errors: malformed input degrades to zero. Errors exist only
for the parsers that sit at the edge of the engine, so callers that want
strict validation can run them upstream.
*/
package wage

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidClock is returned when a wall-clock string is not HH:MM.
	ErrInvalidClock = errors.New("invalid clock time")

	// ErrInvalidDate is returned when a date string is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidMonth is returned when a period string is not YYYY-MM.
	ErrInvalidMonth = errors.New("invalid month")

	// ErrWorkerNotFound is returned by reference lookups that must resolve a worker.
	ErrWorkerNotFound = errors.New("worker not found")

	// ErrHolidayNotFound is returned when deleting a holiday that does not exist.
	ErrHolidayNotFound = errors.New("holiday not found")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// SessionError describes a session that failed upstream validation.
type SessionError struct {
	Index int
	Field string
	Value string
	Err   error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session %d: %s %q: %v", e.Index, e.Field, e.Value, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidClock) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidMonth)
}

// IsNotFound returns true if the error indicates missing reference data.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrWorkerNotFound) ||
		errors.Is(err, ErrHolidayNotFound)
}
