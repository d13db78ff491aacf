package wage

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - A civil calendar day
// =============================================================================

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// Date is a calendar day, stored as UTC midnight.
type Date struct {
	t time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date { return NewDate(t.Year(), t.Month(), t.Day()) }

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// Comparison
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int              { return d.t.Year() }
func (d Date) Month() time.Month      { return d.t.Month() }
func (d Date) Day() int               { return d.t.Day() }
func (d Date) Weekday() time.Weekday  { return d.t.Weekday() }
func (d Date) IsSunday() bool         { return d.t.Weekday() == time.Sunday }
func (d Date) IsZero() bool           { return d.t.IsZero() }
func (d Date) Time() time.Time        { return d.t }
func (d Date) MonthOf() Month         { return Month{Year: d.Year(), Month: d.Month()} }
func (d Date) String() string         { return d.t.Format(dateLayout) }

// =============================================================================
// MONTH - The payroll period
// =============================================================================

// Month is a calendar month; payroll is aggregated per Month.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a "YYYY-MM" string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) Start() Date { return NewDate(m.Year, m.Month, 1) }

func (m Month) End() Date {
	return DateOf(time.Date(m.Year, m.Month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1))
}

// Contains returns true if the date falls within [Start, End].
func (m Month) Contains(d Date) bool {
	return d.Year() == m.Year && d.Month() == m.Month
}

// Days returns every day of the month.
func (m Month) Days() []Date {
	var days []Date
	end := m.End()
	for cur := m.Start(); !cur.After(end); cur = cur.AddDays(1) {
		days = append(days, cur)
	}
	return days
}

func (m Month) Next() Month { return m.Start().AddDays(32).MonthOf() }
func (m Month) Prev() Month { return m.Start().AddDays(-1).MonthOf() }

func (m Month) String() string { return m.Start().t.Format(monthLayout) }
