/*
Package factory provides JSON to Go master-data conversion.

PURPOSE:
  Converts a JSON master-data snapshot (workers, positions, salary grades,
  work schedules, holidays) into wage.ReferenceData. Site admins maintain
  the tables in a spreadsheet or admin UI and push the whole snapshot; the
  factory validates it and produces the structs the wage engine reads.

JSON SCHEMA:
  {
    "workers": [
      {"id": "w-01", "name": "Budi", "skill_tier": "tukang",
       "position_id": "pos-tukang", "grade_id": "gol-2",
       "rates": {"normal": 25000, "overtime": 35000, "holiday": 40000}}
    ],
    "positions": [
      {"id": "pos-tukang", "name": "Tukang", "schedule_id": "sch-6h",
       "overtime_multiplier": 1.5, "holiday_multiplier": 2}
    ],
    "salary_grades": [
      {"id": "gol-2", "name": "Golongan II",
       "rates": {"pos-tukang": {"daily": 200000}}}
    ],
    "work_schedules": [
      {"id": "sch-6h", "name": "6 hari", "work_days_per_week": 6,
       "hours_per_day": 8, "overtime_multiplier": 1.5, "holiday_multiplier": 2}
    ],
    "holidays": [
      {"id": "h-nyepi", "date": "2025-03-29", "name": "Nyepi"}
    ]
  }

  Numbers may be JSON numbers or strings ("25000.50").

VALIDATION:
  - Every record needs a non-empty, unique id
  - Holiday dates must be YYYY-MM-DD
  - Rates and multipliers must not be negative
  - A worker's position/grade and a position's schedule must exist

USAGE:
  snap, err := factory.ParseSnapshot(body)
  store.SaveReference(ctx, snap.Data())

SEE ALSO:
  - wage/reference.go: Reference snapshot consumed by the engine
  - api/scenarios.go: Demo site data expressed in this format
*/
package factory

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/subkh4n/SIPILPRO-sub000/wage"
)

// ErrInvalidSnapshot is wrapped by every validation failure.
var ErrInvalidSnapshot = errors.New("invalid master-data snapshot")

// FieldError points at the offending record.
type FieldError struct {
	Table string
	ID    string
	Field string
	Msg   string
}

func (e *FieldError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s: %s %s", e.Table, e.Field, e.Msg)
	}
	return fmt.Sprintf("%s[%s]: %s %s", e.Table, e.ID, e.Field, e.Msg)
}

func (e *FieldError) Unwrap() error { return ErrInvalidSnapshot }

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// SnapshotJSON is the JSON representation of the master data.
type SnapshotJSON struct {
	Workers   []WorkerJSON   `json:"workers"`
	Positions []PositionJSON `json:"positions"`
	Grades    []GradeJSON    `json:"salary_grades"`
	Schedules []ScheduleJSON `json:"work_schedules"`
	Holidays  []HolidayJSON  `json:"holidays"`
}

type WorkerJSON struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	SkillTier  string     `json:"skill_tier,omitempty"`
	PositionID string     `json:"position_id,omitempty"`
	GradeID    string     `json:"grade_id,omitempty"`
	Rates      *RatesJSON `json:"rates,omitempty"`
}

// RatesJSON is a flat hourly rate triple.
type RatesJSON struct {
	Normal   decimal.Decimal `json:"normal"`
	Overtime decimal.Decimal `json:"overtime"`
	Holiday  decimal.Decimal `json:"holiday"`
}

type PositionJSON struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	ScheduleID         string          `json:"schedule_id,omitempty"`
	OvertimeMultiplier decimal.Decimal `json:"overtime_multiplier"`
	HolidayMultiplier  decimal.Decimal `json:"holiday_multiplier"`
}

type GradeJSON struct {
	ID    string                      `json:"id"`
	Name  string                      `json:"name"`
	Rates map[string]PositionRateJSON `json:"rates"`
}

// PositionRateJSON is a grade's pay for one position; daily wins over hourly.
type PositionRateJSON struct {
	Daily  decimal.Decimal `json:"daily"`
	Hourly decimal.Decimal `json:"hourly"`
}

type ScheduleJSON struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	WorkDaysPerWeek    int             `json:"work_days_per_week"`
	HoursPerDay        decimal.Decimal `json:"hours_per_day"`
	OvertimeMultiplier decimal.Decimal `json:"overtime_multiplier"`
	HolidayMultiplier  decimal.Decimal `json:"holiday_multiplier"`
}

type HolidayJSON struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot is a validated master-data set.
type Snapshot struct {
	data wage.ReferenceData
}

// Data returns the reference tables.
func (s *Snapshot) Data() wage.ReferenceData { return s.data }

// Reference builds an engine snapshot tagged with version.
func (s *Snapshot) Reference(version string) *wage.Reference {
	return wage.NewReference(version, s.data)
}

// ParseSnapshot parses and validates a JSON snapshot.
func ParseSnapshot(body []byte) (*Snapshot, error) {
	var sj SnapshotJSON
	if err := json.Unmarshal(body, &sj); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot JSON: %w", err)
	}
	return FromJSON(sj)
}

// FromJSON validates sj and converts it to reference data.
func FromJSON(sj SnapshotJSON) (*Snapshot, error) {
	var data wage.ReferenceData

	schedules := make(map[string]bool, len(sj.Schedules))
	for _, sc := range sj.Schedules {
		if err := checkID("work_schedules", sc.ID, schedules); err != nil {
			return nil, err
		}
		if sc.WorkDaysPerWeek < 0 || sc.WorkDaysPerWeek > 7 {
			return nil, &FieldError{Table: "work_schedules", ID: sc.ID, Field: "work_days_per_week", Msg: "must be between 0 and 7"}
		}
		if err := nonNegative("work_schedules", sc.ID, map[string]decimal.Decimal{
			"hours_per_day":       sc.HoursPerDay,
			"overtime_multiplier": sc.OvertimeMultiplier,
			"holiday_multiplier":  sc.HolidayMultiplier,
		}); err != nil {
			return nil, err
		}
		data.Schedules = append(data.Schedules, wage.WorkSchedule{
			ID:                 wage.ScheduleID(sc.ID),
			Name:               sc.Name,
			WorkDaysPerWeek:    sc.WorkDaysPerWeek,
			HoursPerDay:        sc.HoursPerDay,
			OvertimeMultiplier: sc.OvertimeMultiplier,
			HolidayMultiplier:  sc.HolidayMultiplier,
		})
	}

	positions := make(map[string]bool, len(sj.Positions))
	for _, p := range sj.Positions {
		if err := checkID("positions", p.ID, positions); err != nil {
			return nil, err
		}
		if p.ScheduleID != "" && !schedules[p.ScheduleID] {
			return nil, &FieldError{Table: "positions", ID: p.ID, Field: "schedule_id", Msg: fmt.Sprintf("references unknown schedule %q", p.ScheduleID)}
		}
		if err := nonNegative("positions", p.ID, map[string]decimal.Decimal{
			"overtime_multiplier": p.OvertimeMultiplier,
			"holiday_multiplier":  p.HolidayMultiplier,
		}); err != nil {
			return nil, err
		}
		data.Positions = append(data.Positions, wage.Position{
			ID:                 wage.PositionID(p.ID),
			Name:               p.Name,
			ScheduleID:         wage.ScheduleID(p.ScheduleID),
			OvertimeMultiplier: p.OvertimeMultiplier,
			HolidayMultiplier:  p.HolidayMultiplier,
		})
	}

	grades := make(map[string]bool, len(sj.Grades))
	for _, g := range sj.Grades {
		if err := checkID("salary_grades", g.ID, grades); err != nil {
			return nil, err
		}
		grade := wage.SalaryGrade{ID: wage.GradeID(g.ID), Name: g.Name, Rates: make(map[wage.PositionID]wage.PositionRate, len(g.Rates))}
		for posID, r := range g.Rates {
			if !positions[posID] {
				return nil, &FieldError{Table: "salary_grades", ID: g.ID, Field: "rates", Msg: fmt.Sprintf("references unknown position %q", posID)}
			}
			if err := nonNegative("salary_grades", g.ID, map[string]decimal.Decimal{
				posID + ".daily":  r.Daily,
				posID + ".hourly": r.Hourly,
			}); err != nil {
				return nil, err
			}
			grade.Rates[wage.PositionID(posID)] = wage.PositionRate{Daily: r.Daily, Hourly: r.Hourly}
		}
		data.Grades = append(data.Grades, grade)
	}

	workers := make(map[string]bool, len(sj.Workers))
	for _, w := range sj.Workers {
		if err := checkID("workers", w.ID, workers); err != nil {
			return nil, err
		}
		if w.PositionID != "" && !positions[w.PositionID] {
			return nil, &FieldError{Table: "workers", ID: w.ID, Field: "position_id", Msg: fmt.Sprintf("references unknown position %q", w.PositionID)}
		}
		if w.GradeID != "" && !grades[w.GradeID] {
			return nil, &FieldError{Table: "workers", ID: w.ID, Field: "grade_id", Msg: fmt.Sprintf("references unknown grade %q", w.GradeID)}
		}
		worker := wage.Worker{
			ID:         wage.WorkerID(w.ID),
			Name:       w.Name,
			SkillTier:  w.SkillTier,
			PositionID: wage.PositionID(w.PositionID),
			GradeID:    wage.GradeID(w.GradeID),
		}
		if w.Rates != nil {
			if err := nonNegative("workers", w.ID, map[string]decimal.Decimal{
				"rates.normal":   w.Rates.Normal,
				"rates.overtime": w.Rates.Overtime,
				"rates.holiday":  w.Rates.Holiday,
			}); err != nil {
				return nil, err
			}
			worker.FlatRates = wage.Rates{Normal: w.Rates.Normal, Overtime: w.Rates.Overtime, Holiday: w.Rates.Holiday}
		}
		data.Workers = append(data.Workers, worker)
	}

	holidays := make(map[string]bool, len(sj.Holidays))
	for _, h := range sj.Holidays {
		if err := checkID("holidays", h.ID, holidays); err != nil {
			return nil, err
		}
		date, err := wage.ParseDate(h.Date)
		if err != nil {
			return nil, &FieldError{Table: "holidays", ID: h.ID, Field: "date", Msg: fmt.Sprintf("%q is not YYYY-MM-DD", h.Date)}
		}
		data.Holidays = append(data.Holidays, wage.Holiday{ID: h.ID, Date: date, Name: h.Name})
	}

	return &Snapshot{data: data}, nil
}

// ToJSON converts reference data back to its JSON representation.
func ToJSON(data wage.ReferenceData) SnapshotJSON {
	sj := SnapshotJSON{
		Workers:   make([]WorkerJSON, 0, len(data.Workers)),
		Positions: make([]PositionJSON, 0, len(data.Positions)),
		Grades:    make([]GradeJSON, 0, len(data.Grades)),
		Schedules: make([]ScheduleJSON, 0, len(data.Schedules)),
		Holidays:  make([]HolidayJSON, 0, len(data.Holidays)),
	}
	for _, w := range data.Workers {
		wj := WorkerJSON{
			ID:         string(w.ID),
			Name:       w.Name,
			SkillTier:  w.SkillTier,
			PositionID: string(w.PositionID),
			GradeID:    string(w.GradeID),
		}
		if !w.FlatRates.IsZero() {
			wj.Rates = &RatesJSON{Normal: w.FlatRates.Normal, Overtime: w.FlatRates.Overtime, Holiday: w.FlatRates.Holiday}
		}
		sj.Workers = append(sj.Workers, wj)
	}
	for _, p := range data.Positions {
		sj.Positions = append(sj.Positions, PositionJSON{
			ID:                 string(p.ID),
			Name:               p.Name,
			ScheduleID:         string(p.ScheduleID),
			OvertimeMultiplier: p.OvertimeMultiplier,
			HolidayMultiplier:  p.HolidayMultiplier,
		})
	}
	for _, g := range data.Grades {
		gj := GradeJSON{ID: string(g.ID), Name: g.Name, Rates: make(map[string]PositionRateJSON, len(g.Rates))}
		for pos, r := range g.Rates {
			gj.Rates[string(pos)] = PositionRateJSON{Daily: r.Daily, Hourly: r.Hourly}
		}
		sj.Grades = append(sj.Grades, gj)
	}
	for _, sc := range data.Schedules {
		sj.Schedules = append(sj.Schedules, ScheduleJSON{
			ID:                 string(sc.ID),
			Name:               sc.Name,
			WorkDaysPerWeek:    sc.WorkDaysPerWeek,
			HoursPerDay:        sc.HoursPerDay,
			OvertimeMultiplier: sc.OvertimeMultiplier,
			HolidayMultiplier:  sc.HolidayMultiplier,
		})
	}
	for _, h := range data.Holidays {
		sj.Holidays = append(sj.Holidays, HolidayJSON{ID: h.ID, Date: h.Date.String(), Name: h.Name})
	}
	return sj
}

// =============================================================================
// VALIDATION HELPERS
// =============================================================================

func checkID(table, id string, seen map[string]bool) error {
	if id == "" {
		return &FieldError{Table: table, Field: "id", Msg: "is required"}
	}
	if seen[id] {
		return &FieldError{Table: table, ID: id, Field: "id", Msg: "is duplicated"}
	}
	seen[id] = true
	return nil
}

func nonNegative(table, id string, fields map[string]decimal.Decimal) error {
	for name, v := range fields {
		if v.IsNegative() {
			return &FieldError{Table: table, ID: id, Field: name, Msg: "must not be negative"}
		}
	}
	return nil
}
