package wage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subkh4n/SIPILPRO-sub000/wage"
)

func TestIsHoliday_SundayAlwaysHoliday(t *testing.T) {
	// 2025-03-02 is a Sunday with no table entry
	sunday := wage.NewDate(2025, time.March, 2)
	require.Equal(t, time.Sunday, sunday.Weekday())

	status := wage.IsHoliday(sunday, nil)
	assert.True(t, status.IsHoliday)
	assert.Equal(t, "Sunday", status.Reason)
}

func TestIsHoliday_SundayShortCircuitsTable(t *testing.T) {
	// GIVEN: a Sunday that is also in the holiday table
	sunday := wage.NewDate(2025, time.March, 30)
	holidays := []wage.Holiday{{Date: sunday, Name: "Hari Raya Nyepi"}}

	// THEN: the Sunday rule wins
	status := wage.IsHoliday(sunday, holidays)
	assert.True(t, status.IsHoliday)
	assert.Equal(t, wage.SundayReason, status.Reason)

	cal := wage.NewHolidayCalendar(holidays)
	assert.Equal(t, status, cal.Check(sunday))
}

func TestIsHoliday_TableMatch(t *testing.T) {
	day := wage.NewDate(2025, time.August, 18)
	holidays := []wage.Holiday{
		{Date: wage.NewDate(2025, time.August, 17), Name: "Hari Kemerdekaan"},
		{Date: day, Name: "Cuti Bersama"},
		{Date: day, Name: "Duplicate Entry"},
	}

	status := wage.IsHoliday(day, holidays)
	assert.Equal(t, wage.HolidayStatus{IsHoliday: true, Reason: "Cuti Bersama"}, status)

	// Calendar keeps the first entry for a duplicated day
	cal := wage.NewHolidayCalendar(holidays)
	assert.Equal(t, status, cal.Check(day))
}

func TestIsHoliday_OrdinaryWeekday(t *testing.T) {
	day := wage.NewDate(2025, time.March, 4)
	holidays := []wage.Holiday{{Date: wage.NewDate(2025, time.March, 5), Name: "Other"}}

	assert.Equal(t, wage.HolidayStatus{}, wage.IsHoliday(day, holidays))
	assert.Equal(t, wage.HolidayStatus{}, wage.NewHolidayCalendar(holidays).Check(day))
}

func TestHolidayCalendar_NilIsSundayOnly(t *testing.T) {
	var cal *wage.HolidayCalendar
	assert.True(t, cal.Check(wage.NewDate(2025, time.March, 2)).IsHoliday)
	assert.False(t, cal.Check(wage.NewDate(2025, time.March, 3)).IsHoliday)
}

func TestHolidayCalendar_InMonth(t *testing.T) {
	cal := wage.NewHolidayCalendar([]wage.Holiday{
		{Date: wage.NewDate(2025, time.May, 1), Name: "Hari Buruh"},
		{Date: wage.NewDate(2025, time.May, 29), Name: "Kenaikan"},
		{Date: wage.NewDate(2025, time.June, 1), Name: "Pancasila"},
	})
	got := cal.InMonth(wage.Month{Year: 2025, Month: time.May})
	assert.Len(t, got, 2)
}
