/*
Package wage provides the attendance-to-wage computation engine.

PURPOSE:
  Turns a worker's raw clock sessions for one day into a wage and a
  per-project cost split. Everything here is a pure function over plain
  records: reference data (workers, positions, grades, schedules,
  holidays) is passed in, never read from ambient state.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: whole currency units (there is no sub-unit in this domain)
  - Hours: worked time, always derived from integer minutes
  - Rates: the normal / overtime / holiday hourly rate triple
  - WorkSession / AttendanceRecord: one day of attendance, enriched

PIPELINE:
  sessions ──▶ durations ──▶ total hours ─┐
  date ──▶ holiday calendar ──────────────┼──▶ wage ──▶ project allocation
  worker ──▶ rate resolver ───────────────┘

DESIGN PRINCIPLES:
  1. Determinism: same record + same reference data = same wage, always
  2. Precision: decimal.Decimal for rates and hours, integer minutes underneath
  3. Absorption: malformed input yields zero, never an error from the core

SEE ALSO:
  - holiday.go: Sunday / holiday-table determination
  - rates.go: Grade-vs-flat rate precedence
  - calculator.go: Tiered wage formula
  - allocation.go: Project cost split
  - engine.go: Full daily pipeline
*/
package wage

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY / HOURS
// =============================================================================

// Money is an amount in whole currency units.
type Money int64

// Hours is worked time in hours.
type Hours = decimal.Decimal

// MinutesToHours converts integer minutes to hours.
func MinutesToHours(minutes int) Hours {
	if minutes <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(minutes)).Div(minutesPerHour)
}

var minutesPerHour = decimal.NewFromInt(60)

// roundMoney rounds half away from zero to a whole currency unit.
func roundMoney(d decimal.Decimal) Money {
	return Money(d.Round(0).IntPart())
}

// =============================================================================
// RATES
// =============================================================================

// Rates is the hourly rate triple applied by the wage formula.
type Rates struct {
	Normal   decimal.Decimal
	Overtime decimal.Decimal
	Holiday  decimal.Decimal
}

// NewRates builds a rate triple from whole-unit hourly rates.
func NewRates(normal, overtime, holiday int64) Rates {
	return Rates{
		Normal:   decimal.NewFromInt(normal),
		Overtime: decimal.NewFromInt(overtime),
		Holiday:  decimal.NewFromInt(holiday),
	}
}

// IsZero reports whether every rate in the triple is zero.
func (r Rates) IsZero() bool {
	return r.Normal.IsZero() && r.Overtime.IsZero() && r.Holiday.IsZero()
}

// =============================================================================
// IDENTIFIERS
// =============================================================================

type WorkerID string
type ProjectID string
type PositionID string
type GradeID string
type ScheduleID string
type RecordID string

// =============================================================================
// ATTENDANCE
// =============================================================================

// WorkSession is one contiguous block of work at one project within a day.
// Start and End are the raw wall-clock strings as captured ("HH:MM").
type WorkSession struct {
	ProjectID ProjectID
	Start     string
	End       string

	// Computed
	Minutes       int
	AllocatedWage Money
}

// Hours returns the session's worked duration.
func (s WorkSession) Hours() Hours { return MinutesToHours(s.Minutes) }

// AttendanceRecord is one worker-day, enriched by the engine.
//
// INVARIANTS:
//   - TotalMinutes is the sum of the sessions' Minutes (the engine computes it)
//   - Wage is a pure function of (TotalHours, Rates, IsHoliday)
type AttendanceRecord struct {
	ID       RecordID
	WorkerID WorkerID
	Date     Date
	Sessions []WorkSession

	IsHoliday     bool
	HolidayReason string

	TotalMinutes int
	Rates        Rates
	Wage         Money

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalHours returns the day's worked hours.
func (r AttendanceRecord) TotalHours() Hours { return MinutesToHours(r.TotalMinutes) }

// AllocatedTotal sums the per-session allocated wage.
func (r AttendanceRecord) AllocatedTotal() Money {
	var total Money
	for _, s := range r.Sessions {
		total += s.AllocatedWage
	}
	return total
}
