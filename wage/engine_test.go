package wage_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/subkh4n/SIPILPRO-sub000/wage"
)

func siteReference(version string, holidays ...wage.Holiday) *wage.Reference {
	return wage.NewReference(version, wage.ReferenceData{
		Workers: []wage.Worker{
			{ID: "budi", Name: "Budi", FlatRates: wage.NewRates(25000, 35000, 40000)},
		},
		Holidays: holidays,
	})
}

var (
	tuesday = wage.NewDate(2025, time.March, 4)
	sunday  = wage.NewDate(2025, time.March, 9)
)

func TestComputeDay_WeekdayWithOvertime(t *testing.T) {
	// GIVEN: 08:00-17:00 on a weekday, no table entry
	ref := siteReference("v1")
	rec := wage.Engine{}.ComputeDay(wage.DayInput{
		WorkerID: "budi",
		Date:     tuesday,
		Sessions: []wage.SessionInput{{ProjectID: "gedung-a", Start: "08:00", End: "17:00"}},
	}, ref)

	// THEN: 9 hours, 8 normal + 1 overtime
	assert.False(t, rec.IsHoliday)
	assert.Empty(t, rec.HolidayReason)
	assert.Equal(t, 540, rec.TotalMinutes)
	assert.True(t, rec.TotalHours().Equal(hours("9")))
	assert.Equal(t, wage.Money(235000), rec.Wage)
	assert.Equal(t, wage.Money(235000), rec.Sessions[0].AllocatedWage)
}

func TestComputeDay_Sunday(t *testing.T) {
	ref := siteReference("v1")
	rec := wage.Engine{}.ComputeDay(wage.DayInput{
		WorkerID: "budi",
		Date:     sunday,
		Sessions: []wage.SessionInput{{ProjectID: "gedung-a", Start: "08:00", End: "17:00"}},
	}, ref)

	assert.True(t, rec.IsHoliday)
	assert.Equal(t, "Sunday", rec.HolidayReason)
	assert.Equal(t, wage.Money(360000), rec.Wage)
}

func TestComputeDay_TableHoliday(t *testing.T) {
	ref := siteReference("v1", wage.Holiday{Date: tuesday, Name: "Isra Miraj"})
	rec := wage.Engine{}.ComputeDay(wage.DayInput{
		WorkerID: "budi",
		Date:     tuesday,
		Sessions: []wage.SessionInput{{ProjectID: "gedung-a", Start: "08:00", End: "12:00"}},
	}, ref)

	assert.True(t, rec.IsHoliday)
	assert.Equal(t, "Isra Miraj", rec.HolidayReason)
	assert.Equal(t, wage.Money(160000), rec.Wage)
}

func TestComputeDay_GradeRateHalfUnitRoundsUp(t *testing.T) {
	// GIVEN: a daily grade of 150000 (18750/h) and a 4h35m morning
	ref := wage.NewReference("v1", wage.ReferenceData{
		Workers:   []wage.Worker{{ID: "dewi", Name: "Dewi", PositionID: "pos-tukang", GradeID: "gol-1"}},
		Positions: []wage.Position{{ID: "pos-tukang", Name: "Tukang"}},
		Grades: []wage.SalaryGrade{{
			ID:    "gol-1",
			Rates: map[wage.PositionID]wage.PositionRate{"pos-tukang": {Daily: decimal.NewFromInt(150000)}},
		}},
	})

	// WHEN: Computing the day
	rec := wage.Engine{}.ComputeDay(wage.DayInput{
		WorkerID: "dewi",
		Date:     tuesday,
		Sessions: []wage.SessionInput{{ProjectID: "gedung-a", Start: "08:00", End: "12:35"}},
	}, ref)

	// THEN: 275 x 18750 / 60 = 85937.5 rounds up
	assert.Equal(t, 275, rec.TotalMinutes)
	assert.Equal(t, wage.Money(85938), rec.Wage)
	assert.Equal(t, rec.Wage, rec.AllocatedTotal())
}

func TestComputeDay_TwoProjectsSplitEvenly(t *testing.T) {
	ref := siteReference("v1")
	for _, engine := range []wage.Engine{{}, {Reconcile: true}} {
		rec := engine.ComputeDay(wage.DayInput{
			WorkerID: "budi",
			Date:     tuesday,
			Sessions: []wage.SessionInput{
				{ProjectID: "A", Start: "08:00", End: "12:00"},
				{ProjectID: "B", Start: "13:00", End: "17:00"},
			},
		}, ref)

		assert.True(t, rec.TotalHours().Equal(hours("8")))
		assert.Equal(t, wage.Money(8*25000), rec.Wage)
		assert.Equal(t, rec.Wage/2, rec.Sessions[0].AllocatedWage)
		assert.Equal(t, rec.Wage/2, rec.Sessions[1].AllocatedWage)
	}
}

func TestComputeDay_UnknownWorkerIsZeroWage(t *testing.T) {
	rec := wage.Engine{}.ComputeDay(wage.DayInput{
		WorkerID: "ghost",
		Date:     tuesday,
		Sessions: []wage.SessionInput{{ProjectID: "A", Start: "08:00", End: "17:00"}},
	}, siteReference("v1"))

	assert.Equal(t, 540, rec.TotalMinutes)
	assert.Equal(t, wage.Money(0), rec.Wage)
	assert.True(t, rec.Rates.IsZero())
}

func TestComputeDay_MalformedSessionsAbsorbed(t *testing.T) {
	rec := wage.Engine{Reconcile: true}.ComputeDay(wage.DayInput{
		WorkerID: "budi",
		Date:     tuesday,
		Sessions: []wage.SessionInput{
			{ProjectID: "A", Start: "17:00", End: "08:00"},
			{ProjectID: "B", Start: "xx", End: "10:00"},
		},
	}, siteReference("v1"))

	assert.Zero(t, rec.TotalMinutes)
	assert.Zero(t, rec.Wage)
	assert.Zero(t, rec.AllocatedTotal())
}

func TestComputeDay_Idempotent(t *testing.T) {
	ref := siteReference("v1")
	input := wage.DayInput{
		WorkerID: "budi",
		Date:     tuesday,
		Sessions: []wage.SessionInput{
			{ProjectID: "A", Start: "07:00", End: "09:20"},
			{ProjectID: "B", Start: "09:20", End: "11:40"},
			{ProjectID: "C", Start: "12:40", End: "17:45"},
		},
	}
	for _, engine := range []wage.Engine{{}, {Reconcile: true}} {
		first := engine.ComputeDay(input, ref)
		second := engine.ComputeDay(first.Input(), ref)
		assert.Equal(t, first, second)

		diff := first.AllocatedTotal() - first.Wage
		if diff < 0 {
			diff = -diff
		}
		assert.LessOrEqual(t, int64(diff), int64(len(input.Sessions)))
	}
}

func TestDayCache_ReadThrough(t *testing.T) {
	cache := wage.NewDayCache()
	engine := wage.Engine{Reconcile: true}
	input := wage.DayInput{
		WorkerID: "budi",
		Date:     tuesday,
		Sessions: []wage.SessionInput{{ProjectID: "A", Start: "08:00", End: "17:00"}},
	}

	v1 := siteReference("v1")
	first := cache.Compute(engine, input, v1)
	second := cache.Compute(engine, input, v1)
	assert.Equal(t, first, second)
	hits, misses := cache.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	// New reference version (holiday added) misses and recomputes
	v2 := siteReference("v2", wage.Holiday{Date: tuesday, Name: "Libur"})
	third := cache.Compute(engine, input, v2)
	assert.True(t, third.IsHoliday)
	assert.Equal(t, wage.Money(360000), third.Wage)

	// Changed sessions miss as well
	input.Sessions[0].End = "16:00"
	fourth := cache.Compute(engine, input, v2)
	assert.Equal(t, 480, fourth.TotalMinutes)

	cache.Invalidate("budi")
	cache.Compute(engine, input, v2)
	hits, misses = cache.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 4, misses)
}
