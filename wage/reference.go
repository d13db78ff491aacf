package wage

import "sort"

// =============================================================================
// REFERENCE - Immutable master-data snapshot
// =============================================================================

// Reference is a point-in-time snapshot of the master data the engine reads.
// Build it with NewReference and do not mutate it afterwards; a changed
// snapshot gets a new Version, which is what the day cache keys on.
type Reference struct {
	Version string

	workers   map[WorkerID]Worker
	positions map[PositionID]Position
	grades    map[GradeID]SalaryGrade
	schedules map[ScheduleID]WorkSchedule
	calendar  *HolidayCalendar
}

// ReferenceData is the plain input to NewReference.
type ReferenceData struct {
	Workers   []Worker
	Positions []Position
	Grades    []SalaryGrade
	Schedules []WorkSchedule
	Holidays  []Holiday
}

// NewReference indexes a master-data snapshot.
func NewReference(version string, data ReferenceData) *Reference {
	ref := &Reference{
		Version:   version,
		workers:   make(map[WorkerID]Worker, len(data.Workers)),
		positions: make(map[PositionID]Position, len(data.Positions)),
		grades:    make(map[GradeID]SalaryGrade, len(data.Grades)),
		schedules: make(map[ScheduleID]WorkSchedule, len(data.Schedules)),
		calendar:  NewHolidayCalendar(data.Holidays),
	}
	for _, w := range data.Workers {
		ref.workers[w.ID] = w
	}
	for _, p := range data.Positions {
		ref.positions[p.ID] = p
	}
	for _, g := range data.Grades {
		ref.grades[g.ID] = g
	}
	for _, s := range data.Schedules {
		ref.schedules[s.ID] = s
	}
	return ref
}

// Worker looks up a worker by id.
func (r *Reference) Worker(id WorkerID) (Worker, bool) {
	if r == nil {
		return Worker{}, false
	}
	w, ok := r.workers[id]
	return w, ok
}

// Calendar returns the holiday calendar of the snapshot.
func (r *Reference) Calendar() *HolidayCalendar {
	if r == nil {
		return nil
	}
	return r.calendar
}

// RateContext resolves the worker's position, grade and the position's schedule.
func (r *Reference) RateContext(w Worker) RateContext {
	var ctx RateContext
	if r == nil {
		return ctx
	}
	if p, ok := r.positions[w.PositionID]; ok && w.PositionID != "" {
		ctx.Position = &p
		if s, ok := r.schedules[p.ScheduleID]; ok && p.ScheduleID != "" {
			ctx.Schedule = &s
		}
	}
	if g, ok := r.grades[w.GradeID]; ok && w.GradeID != "" {
		ctx.Grade = &g
	}
	return ctx
}

// RatesFor resolves the rates of a worker by id; unknown workers get zero rates.
func (r *Reference) RatesFor(id WorkerID) Rates {
	w, ok := r.Worker(id)
	if !ok {
		return Rates{}
	}
	return ResolveRates(w, r.RateContext(w))
}

// Workers returns all workers in the snapshot, ordered by id.
func (r *Reference) Workers() []Worker {
	if r == nil {
		return nil
	}
	out := make([]Worker, 0, len(r.workers))
	for _, w := range r.workers {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Data returns the snapshot's tables, each ordered by id. Holidays keep
// their calendar order.
func (r *Reference) Data() ReferenceData {
	if r == nil {
		return ReferenceData{}
	}
	data := ReferenceData{
		Workers:  r.Workers(),
		Holidays: r.calendar.Holidays(),
	}
	for _, p := range r.positions {
		data.Positions = append(data.Positions, p)
	}
	for _, g := range r.grades {
		data.Grades = append(data.Grades, g)
	}
	for _, s := range r.schedules {
		data.Schedules = append(data.Schedules, s)
	}
	sort.Slice(data.Positions, func(i, j int) bool { return data.Positions[i].ID < data.Positions[j].ID })
	sort.Slice(data.Grades, func(i, j int) bool { return data.Grades[i].ID < data.Grades[j].ID })
	sort.Slice(data.Schedules, func(i, j int) bool { return data.Schedules[i].ID < data.Schedules[j].ID })
	return data
}
