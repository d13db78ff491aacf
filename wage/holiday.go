package wage

// =============================================================================
// HOLIDAY CALENDAR - Non-working day determination
// =============================================================================

// SundayReason is the reason reported for the implicit weekly holiday.
const SundayReason = "Sunday"

// Holiday is an explicit non-working calendar entry.
type Holiday struct {
	ID   string
	Date Date
	Name string
}

// HolidayStatus is the outcome of a holiday check. Reason is empty when
// IsHoliday is false.
type HolidayStatus struct {
	IsHoliday bool
	Reason    string
}

// IsHoliday decides whether date is a non-working day.
//
// Sunday is checked first and short-circuits the table lookup, so a Sunday
// that is also listed in holidays still reports "Sunday". Otherwise the
// first exact calendar-day match in holidays wins. No ranges, no recurrence.
func IsHoliday(date Date, holidays []Holiday) HolidayStatus {
	if date.IsSunday() {
		return HolidayStatus{IsHoliday: true, Reason: SundayReason}
	}
	for _, h := range holidays {
		if h.Date.Equal(date) {
			return HolidayStatus{IsHoliday: true, Reason: h.Name}
		}
	}
	return HolidayStatus{}
}

// HolidayCalendar indexes a holiday set by day. Same semantics as IsHoliday;
// when a day is listed more than once the first entry is kept.
type HolidayCalendar struct {
	byDay map[Date]Holiday
	list  []Holiday
}

// NewHolidayCalendar builds a calendar over a snapshot of holidays.
func NewHolidayCalendar(holidays []Holiday) *HolidayCalendar {
	c := &HolidayCalendar{
		byDay: make(map[Date]Holiday, len(holidays)),
		list:  append([]Holiday(nil), holidays...),
	}
	for _, h := range holidays {
		if _, ok := c.byDay[h.Date]; !ok {
			c.byDay[h.Date] = h
		}
	}
	return c
}

// Check reports whether date is a holiday.
func (c *HolidayCalendar) Check(date Date) HolidayStatus {
	if date.IsSunday() {
		return HolidayStatus{IsHoliday: true, Reason: SundayReason}
	}
	if c == nil {
		return HolidayStatus{}
	}
	if h, ok := c.byDay[date]; ok {
		return HolidayStatus{IsHoliday: true, Reason: h.Name}
	}
	return HolidayStatus{}
}

// Holidays returns the explicit entries in the calendar.
func (c *HolidayCalendar) Holidays() []Holiday {
	if c == nil {
		return nil
	}
	return append([]Holiday(nil), c.list...)
}

// InMonth returns the explicit entries falling within m.
func (c *HolidayCalendar) InMonth(m Month) []Holiday {
	var out []Holiday
	for _, h := range c.Holidays() {
		if m.Contains(h.Date) {
			out = append(out, h)
		}
	}
	return out
}
