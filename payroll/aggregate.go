package payroll

import "github.com/subkh4n/SIPILPRO-sub000/wage"

// Aggregate builds the payroll record of one worker for one month.
//
// Records of other workers or other months are ignored, and a date seen
// twice counts once (the later record in the slice wins) so that a
// corrected day is not paid double. No records yields a zero record.
// The status is pending; callers overlay the persisted status.
func Aggregate(workerID wage.WorkerID, period wage.Month, records []wage.AttendanceRecord) Record {
	byDay := make(map[wage.Date]wage.AttendanceRecord)
	var order []wage.Date
	for _, r := range records {
		if r.WorkerID != workerID || !period.Contains(r.Date) {
			continue
		}
		if _, seen := byDay[r.Date]; !seen {
			order = append(order, r.Date)
		}
		byDay[r.Date] = r
	}

	out := Record{WorkerID: workerID, Period: period, Status: StatusPending}
	var minutes wage.MinuteBuckets
	for _, d := range order {
		r := byDay[d]
		minutes = minutes.Add(wage.SplitMinutes(r.TotalMinutes, r.IsHoliday))
		out.TotalWage += r.Wage
		out.Days++
		if r.IsHoliday {
			out.HolidayDays++
		}
	}
	// hours derive from the summed minutes
	buckets := minutes.Hours()
	out.NormalHours = buckets.Normal
	out.OvertimeHours = buckets.Overtime
	out.HolidayHours = buckets.Holiday
	return out
}

// WithStatus overlays a persisted status entry on a computed record.
func (r Record) WithStatus(entry *StatusEntry) Record {
	if entry == nil {
		r.Status = StatusPending
		return r
	}
	r.Status = entry.Status
	r.Reason = entry.Reason
	r.ActorID = entry.ActorID
	at := entry.UpdatedAt
	r.UpdatedAt = &at
	return r
}
