package wage

import "github.com/shopspring/decimal"

// =============================================================================
// WAGE CALCULATOR - Tiered daily wage
// =============================================================================

// StandardDayHours is the daily threshold beyond which hours are overtime (lembur).
const StandardDayHours = 8

// StandardDayMinutes is StandardDayHours in minutes.
const StandardDayMinutes = StandardDayHours * 60

// CalculateWage applies the tiered formula to a day's worked minutes.
// First matching branch wins:
//
//	holiday:      round(hours * Holiday)               no split on holidays
//	hours <= 8:   round(hours * Normal)
//	otherwise:    round(8 * Normal + (hours-8) * Overtime)
//
// Products are taken over whole minutes and divided by 60 once, before
// rounding, so a wage that is exactly half a unit rounds away from zero.
func CalculateWage(totalMinutes int, rates Rates, isHoliday bool) Money {
	if totalMinutes <= 0 {
		return 0
	}
	if isHoliday {
		return roundMoney(minuteAmount(totalMinutes, rates.Holiday).Div(minutesPerHour))
	}
	if totalMinutes <= StandardDayMinutes {
		return roundMoney(minuteAmount(totalMinutes, rates.Normal).Div(minutesPerHour))
	}
	sum := minuteAmount(StandardDayMinutes, rates.Normal).
		Add(minuteAmount(totalMinutes-StandardDayMinutes, rates.Overtime))
	return roundMoney(sum.Div(minutesPerHour))
}

func minuteAmount(minutes int, hourly decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Mul(hourly)
}

// MinuteBuckets is a day's (or a month's) worked minutes split by pay bucket.
type MinuteBuckets struct {
	Normal   int
	Overtime int
	Holiday  int
}

// SplitMinutes splits a day's minutes with the same threshold CalculateWage uses.
func SplitMinutes(totalMinutes int, isHoliday bool) MinuteBuckets {
	if totalMinutes <= 0 {
		return MinuteBuckets{}
	}
	if isHoliday {
		return MinuteBuckets{Holiday: totalMinutes}
	}
	return MinuteBuckets{
		Normal:   min(totalMinutes, StandardDayMinutes),
		Overtime: max(totalMinutes-StandardDayMinutes, 0),
	}
}

// Add sums two buckets.
func (b MinuteBuckets) Add(o MinuteBuckets) MinuteBuckets {
	return MinuteBuckets{
		Normal:   b.Normal + o.Normal,
		Overtime: b.Overtime + o.Overtime,
		Holiday:  b.Holiday + o.Holiday,
	}
}

// Total returns the sum of all buckets.
func (b MinuteBuckets) Total() int { return b.Normal + b.Overtime + b.Holiday }

// Hours converts each bucket to hours.
func (b MinuteBuckets) Hours() HourBuckets {
	return HourBuckets{
		Normal:   MinutesToHours(b.Normal),
		Overtime: MinutesToHours(b.Overtime),
		Holiday:  MinutesToHours(b.Holiday),
	}
}

// HourBuckets is MinuteBuckets expressed in hours.
type HourBuckets struct {
	Normal   Hours
	Overtime Hours
	Holiday  Hours
}
