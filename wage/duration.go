package wage

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// CLOCK TIME - Wall-clock-of-day value
// =============================================================================

// ClockTime is a wall-clock time expressed as minutes since midnight.
type ClockTime int

// ParseClock parses "H:MM" or "HH:MM" in the range 00:00-23:59.
func ParseClock(s string) (ClockTime, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return ClockTime(h*60 + m), nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// =============================================================================
// DURATION CALCULATOR
// =============================================================================

// DurationMinutes returns end-start in minutes, or 0 when the span is not
// positive. Spans across midnight are not supported and also yield 0.
func DurationMinutes(start, end ClockTime) int {
	if d := int(end - start); d > 0 {
		return d
	}
	return 0
}

// SessionMinutes parses raw clock strings and returns the worked minutes.
// Unparseable input is absorbed as zero duration.
func SessionMinutes(start, end string) int {
	s, err := ParseClock(start)
	if err != nil {
		return 0
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0
	}
	return DurationMinutes(s, e)
}

// Duration returns the worked hours between two raw clock strings.
func Duration(start, end string) Hours {
	return MinutesToHours(SessionMinutes(start, end))
}

// TotalMinutes sums the worked minutes of all sessions.
func TotalMinutes(sessions []WorkSession) int {
	total := 0
	for _, s := range sessions {
		total += SessionMinutes(s.Start, s.End)
	}
	return total
}

// ValidateSessions is the strict check callers may run upstream of the
// engine. It reports the first unparseable time or non-positive span.
func ValidateSessions(sessions []SessionInput) error {
	for i, s := range sessions {
		start, err := ParseClock(s.Start)
		if err != nil {
			return &SessionError{Index: i, Field: "start", Value: s.Start, Err: err}
		}
		end, err := ParseClock(s.End)
		if err != nil {
			return &SessionError{Index: i, Field: "end", Value: s.End, Err: err}
		}
		if DurationMinutes(start, end) == 0 {
			return &SessionError{Index: i, Field: "end", Value: s.End, Err: ErrInvalidClock}
		}
	}
	return nil
}
