package wage

import "github.com/shopspring/decimal"

// =============================================================================
// REFERENCE RECORDS - Master data read by the rate resolver
// =============================================================================

// Worker is a site worker with an optional position/grade and a flat rate triple.
type Worker struct {
	ID         WorkerID
	Name       string
	SkillTier  string
	PositionID PositionID
	GradeID    GradeID
	FlatRates  Rates
}

// Position is a job position. Zero multipliers defer to the schedule.
type Position struct {
	ID                 PositionID
	Name               string
	ScheduleID         ScheduleID
	OvertimeMultiplier decimal.Decimal
	HolidayMultiplier  decimal.Decimal
}

// PositionRate is a grade's pay for one position.
type PositionRate struct {
	Daily  decimal.Decimal
	Hourly decimal.Decimal
}

// SalaryGrade (golongan gaji) defines per-position rates.
type SalaryGrade struct {
	ID    GradeID
	Name  string
	Rates map[PositionID]PositionRate
}

// WorkSchedule carries working-time parameters. HoursPerDay is reference
// data only: the wage formula keeps the fixed StandardDayHours threshold.
type WorkSchedule struct {
	ID                 ScheduleID
	Name               string
	WorkDaysPerWeek    int
	HoursPerDay        decimal.Decimal
	OvertimeMultiplier decimal.Decimal
	HolidayMultiplier  decimal.Decimal
}

// RateContext is the grade/position/schedule context resolved for a worker.
// Any field may be nil.
type RateContext struct {
	Position *Position
	Grade    *SalaryGrade
	Schedule *WorkSchedule
}

// =============================================================================
// RATE RESOLVER
// =============================================================================

var (
	DefaultOvertimeMultiplier = decimal.RequireFromString("1.5")
	DefaultHolidayMultiplier  = decimal.RequireFromString("2.0")

	hoursPerPaidDay = decimal.NewFromInt(StandardDayHours)
)

// ResolveRates returns the hourly rates that apply to worker.
//
// PRECEDENCE:
//  1. Grade + position both present and the grade prices that position:
//     Normal is the grade's daily rate / 8 (or its hourly rate when no daily
//     rate is set); Overtime and Holiday are Normal times the position's
//     multipliers, else the schedule's, else 1.5 and 2.0.
//  2. The worker's flat rate triple.
//  3. Zero rates, which produce a zero wage downstream.
func ResolveRates(worker Worker, ctx RateContext) Rates {
	if normal, ok := gradeRate(ctx); ok {
		return Rates{
			Normal:   normal,
			Overtime: normal.Mul(overtimeMultiplier(ctx)),
			Holiday:  normal.Mul(holidayMultiplier(ctx)),
		}
	}
	return worker.FlatRates
}

func gradeRate(ctx RateContext) (decimal.Decimal, bool) {
	if ctx.Grade == nil || ctx.Position == nil {
		return decimal.Zero, false
	}
	pr, ok := ctx.Grade.Rates[ctx.Position.ID]
	if !ok {
		return decimal.Zero, false
	}
	switch {
	case pr.Daily.IsPositive():
		return pr.Daily.Div(hoursPerPaidDay), true
	case pr.Hourly.IsPositive():
		return pr.Hourly, true
	}
	return decimal.Zero, false
}

func overtimeMultiplier(ctx RateContext) decimal.Decimal {
	if ctx.Position != nil && ctx.Position.OvertimeMultiplier.IsPositive() {
		return ctx.Position.OvertimeMultiplier
	}
	if ctx.Schedule != nil && ctx.Schedule.OvertimeMultiplier.IsPositive() {
		return ctx.Schedule.OvertimeMultiplier
	}
	return DefaultOvertimeMultiplier
}

func holidayMultiplier(ctx RateContext) decimal.Decimal {
	if ctx.Position != nil && ctx.Position.HolidayMultiplier.IsPositive() {
		return ctx.Position.HolidayMultiplier
	}
	if ctx.Schedule != nil && ctx.Schedule.HolidayMultiplier.IsPositive() {
		return ctx.Schedule.HolidayMultiplier
	}
	return DefaultHolidayMultiplier
}
