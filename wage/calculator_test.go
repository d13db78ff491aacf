package wage_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/subkh4n/SIPILPRO-sub000/wage"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func hours(s string) wage.Hours { return decimal.RequireFromString(s) }

func siteRates() wage.Rates { return wage.NewRates(25000, 35000, 40000) }

// =============================================================================
// WAGE CALCULATOR
// =============================================================================

func TestCalculateWage_Branches(t *testing.T) {
	rates := siteRates()

	tests := []struct {
		name      string
		minutes   int
		isHoliday bool
		want      wage.Money
	}{
		{"zero hours", 0, false, 0},
		{"negative minutes", -30, false, 0},
		{"half day", 4 * 60, false, 100000},
		{"exactly eight hours is all normal", 8 * 60, false, 200000},
		{"ten hours splits two overtime", 10 * 60, false, 8*25000 + 2*35000},
		{"nine hours weekday", 9 * 60, false, 235000},
		{"holiday pays every hour at holiday rate", 9 * 60, true, 360000},
		{"short holiday", 3 * 60, true, 120000},
		{"fractional hours round to whole units", 7*60 + 30, false, 187500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wage.CalculateWage(tt.minutes, rates, tt.isHoliday)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateWage_RoundsToNearestUnit(t *testing.T) {
	// 20 minutes at 10001/h = 3333.666.. -> 3334
	rates := wage.NewRates(10001, 0, 0)
	assert.Equal(t, wage.Money(3334), wage.CalculateWage(20, rates, false))

	// 30 minutes at 3/h = 1.5 -> 2 (half away from zero)
	assert.Equal(t, wage.Money(2), wage.CalculateWage(30, wage.NewRates(3, 0, 0), false))
}

func TestCalculateWage_ExactHalfUnitRoundsUp(t *testing.T) {
	// daily 150000 -> 18750/h; 275 minutes = 85937.5 exactly
	rates := wage.Rates{
		Normal:   decimal.NewFromInt(18750),
		Overtime: decimal.NewFromInt(28125),
		Holiday:  decimal.NewFromInt(37500),
	}
	assert.Equal(t, wage.Money(85938), wage.CalculateWage(275, rates, false))

	// 8h normal + 35 minutes overtime at 28125/h: 150000 + 16406.25 -> 166406
	assert.Equal(t, wage.Money(166406), wage.CalculateWage(8*60+35, rates, false))

	// overtime of 275 minutes: 150000 + 128906.25 -> 278906
	assert.Equal(t, wage.Money(278906), wage.CalculateWage(8*60+275, rates, false))

	// 1 minute at 30/h = 0.5 exactly -> 1
	assert.Equal(t, wage.Money(1), wage.CalculateWage(1, wage.NewRates(30, 0, 30), true))
}

func TestCalculateWage_HolidayHasNoSplit(t *testing.T) {
	rates := siteRates()
	for _, m := range []int{60, 8 * 60, 12 * 60, 16*60 + 15} {
		got := wage.CalculateWage(m, rates, true)
		want := wage.Money(decimal.NewFromInt(int64(m)).Mul(rates.Holiday).Div(decimal.NewFromInt(60)).Round(0).IntPart())
		assert.Equal(t, want, got, "minutes=%d", m)
	}
}

func TestCalculateWage_ZeroRatesYieldZero(t *testing.T) {
	assert.Equal(t, wage.Money(0), wage.CalculateWage(600, wage.Rates{}, false))
	assert.Equal(t, wage.Money(0), wage.CalculateWage(600, wage.Rates{}, true))
}

func TestSplitMinutes(t *testing.T) {
	b := wage.SplitMinutes(10*60+30, false)
	assert.Equal(t, wage.MinuteBuckets{Normal: 480, Overtime: 150}, b)
	assert.True(t, b.Hours().Overtime.Equal(hours("2.5")))

	b = wage.SplitMinutes(6*60, false)
	assert.Equal(t, wage.MinuteBuckets{Normal: 360}, b)

	b = wage.SplitMinutes(10*60, true)
	assert.Equal(t, wage.MinuteBuckets{Holiday: 600}, b)
	assert.Equal(t, 600, b.Total())

	assert.Equal(t, wage.MinuteBuckets{}, wage.SplitMinutes(-5, false))
}

func TestMinuteBuckets_ConvertOnce(t *testing.T) {
	// three days of 20 minutes overtime are exactly one hour
	var sum wage.MinuteBuckets
	for i := 0; i < 3; i++ {
		sum = sum.Add(wage.SplitMinutes(8*60+20, false))
	}
	h := sum.Hours()
	assert.Equal(t, "1", h.Overtime.String())
	assert.Equal(t, "24", h.Normal.String())
	assert.True(t, h.Holiday.IsZero())
}
