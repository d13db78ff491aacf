package wage

// =============================================================================
// ENGINE - The daily attendance-to-wage pipeline
// =============================================================================

// SessionInput is one raw session as captured (QR scan or manual entry).
type SessionInput struct {
	ProjectID ProjectID
	Start     string
	End       string
}

// DayInput is a worker's raw attendance for one day.
type DayInput struct {
	WorkerID WorkerID
	Date     Date
	Sessions []SessionInput
}

// Engine runs the pipeline. The zero value allocates with independent
// rounding; set Reconcile for shares that tie out to the daily wage.
type Engine struct {
	Reconcile bool
}

// ComputeDay enriches one day of attendance against a reference snapshot.
//
// Steps: durations -> total minutes; holiday calendar(date); rate resolver
// (worker); wage calculator; project allocator. ComputeDay is pure: the
// returned record depends only on input and ref, and it carries no ID or
// timestamps (the attendance service assigns those).
func (e Engine) ComputeDay(input DayInput, ref *Reference) AttendanceRecord {
	sessions := make([]WorkSession, len(input.Sessions))
	for i, s := range input.Sessions {
		sessions[i] = WorkSession{ProjectID: s.ProjectID, Start: s.Start, End: s.End}
	}

	total := TotalMinutes(sessions)
	holiday := ref.Calendar().Check(input.Date)
	rates := ref.RatesFor(input.WorkerID)
	wage := CalculateWage(total, rates, holiday.IsHoliday)

	if e.Reconcile {
		sessions = Reconcile(sessions, wage)
	} else {
		sessions = Allocate(sessions, wage)
	}

	return AttendanceRecord{
		WorkerID:      input.WorkerID,
		Date:          input.Date,
		Sessions:      sessions,
		IsHoliday:     holiday.IsHoliday,
		HolidayReason: holiday.Reason,
		TotalMinutes:  total,
		Rates:         rates,
		Wage:          wage,
	}
}

// Input converts a stored record back to the raw input it was computed from.
func (r AttendanceRecord) Input() DayInput {
	in := DayInput{WorkerID: r.WorkerID, Date: r.Date, Sessions: make([]SessionInput, len(r.Sessions))}
	for i, s := range r.Sessions {
		in.Sessions[i] = SessionInput{ProjectID: s.ProjectID, Start: s.Start, End: s.End}
	}
	return in
}
