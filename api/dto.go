/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Request types carry go-playground/validator tags. Clock times must be
  HH:MM and dates YYYY-MM-DD before they reach the wage engine, which
  itself would silently treat a malformed session as zero hours.

MONEY AND HOURS:
  Wages are whole currency units (integers). Hours and rates are decimals
  rendered as strings ("8.5", "25000") so no precision is lost in transit.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/snapshot.go: Master-data JSON format
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/subkh4n/SIPILPRO-sub000/attendance"
	"github.com/subkh4n/SIPILPRO-sub000/payroll"
	"github.com/subkh4n/SIPILPRO-sub000/wage"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// SessionRequest is one raw work session.
type SessionRequest struct {
	ProjectID string `json:"project_id" validate:"required"`
	Start     string `json:"start" validate:"required,datetime=15:04"`
	End       string `json:"end" validate:"required,datetime=15:04"`
}

// AttendanceRequest records (or previews) a worker-day.
type AttendanceRequest struct {
	WorkerID string           `json:"worker_id" validate:"required"`
	Date     string           `json:"date" validate:"required,datetime=2006-01-02"`
	Sessions []SessionRequest `json:"sessions" validate:"required,min=1,dive"`
}

func (req AttendanceRequest) toInput() (wage.DayInput, error) {
	date, err := wage.ParseDate(req.Date)
	if err != nil {
		return wage.DayInput{}, err
	}
	in := wage.DayInput{WorkerID: wage.WorkerID(req.WorkerID), Date: date}
	for _, s := range req.Sessions {
		in.Sessions = append(in.Sessions, wage.SessionInput{
			ProjectID: wage.ProjectID(s.ProjectID),
			Start:     s.Start,
			End:       s.End,
		})
	}
	return in, nil
}

// CreateHolidayRequest adds a holiday to the calendar.
type CreateHolidayRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Name string `json:"name" validate:"required"`
}

// PayrollActionRequest approves, rejects or pays a payroll.
type PayrollActionRequest struct {
	ActorID string `json:"actor_id" validate:"required"`
	Reason  string `json:"reason"`
}

// LoadScenarioRequest picks a demo scenario.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id" validate:"required"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// RatesDTO is an hourly rate triple.
type RatesDTO struct {
	Normal   decimal.Decimal `json:"normal"`
	Overtime decimal.Decimal `json:"overtime"`
	Holiday  decimal.Decimal `json:"holiday"`
}

func toRatesDTO(r wage.Rates) RatesDTO {
	return RatesDTO{Normal: r.Normal, Overtime: r.Overtime, Holiday: r.Holiday}
}

// WorkerDTO is a worker with the rates that currently apply to them.
type WorkerDTO struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	SkillTier  string   `json:"skill_tier,omitempty"`
	PositionID string   `json:"position_id,omitempty"`
	GradeID    string   `json:"grade_id,omitempty"`
	Rates      RatesDTO `json:"rates"`
}

func toWorkerDTO(w wage.Worker, ref *wage.Reference) WorkerDTO {
	return WorkerDTO{
		ID:         string(w.ID),
		Name:       w.Name,
		SkillTier:  w.SkillTier,
		PositionID: string(w.PositionID),
		GradeID:    string(w.GradeID),
		Rates:      toRatesDTO(ref.RatesFor(w.ID)),
	}
}

// HolidayDTO is an explicit calendar holiday.
type HolidayDTO struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}

func toHolidayDTO(h wage.Holiday) HolidayDTO {
	return HolidayDTO{ID: h.ID, Date: h.Date.String(), Name: h.Name}
}

// SessionDTO is a session with its duration and wage share.
type SessionDTO struct {
	ProjectID     string          `json:"project_id"`
	Start         string          `json:"start"`
	End           string          `json:"end"`
	Hours         decimal.Decimal `json:"hours"`
	AllocatedWage int64           `json:"allocated_wage"`
}

// AttendanceDTO is an enriched worker-day.
type AttendanceDTO struct {
	ID            string          `json:"id,omitempty"`
	WorkerID      string          `json:"worker_id"`
	Date          string          `json:"date"`
	IsHoliday     bool            `json:"is_holiday"`
	HolidayReason string          `json:"holiday_reason,omitempty"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	Rates         RatesDTO        `json:"rates"`
	Wage          int64           `json:"wage"`
	Sessions      []SessionDTO    `json:"sessions"`
	CreatedAt     string          `json:"created_at,omitempty"`
	UpdatedAt     string          `json:"updated_at,omitempty"`
}

func toAttendanceDTO(rec wage.AttendanceRecord) AttendanceDTO {
	dto := AttendanceDTO{
		ID:            string(rec.ID),
		WorkerID:      string(rec.WorkerID),
		Date:          rec.Date.String(),
		IsHoliday:     rec.IsHoliday,
		HolidayReason: rec.HolidayReason,
		TotalHours:    rec.TotalHours(),
		Rates:         toRatesDTO(rec.Rates),
		Wage:          int64(rec.Wage),
		Sessions:      make([]SessionDTO, len(rec.Sessions)),
		CreatedAt:     formatTime(rec.CreatedAt),
		UpdatedAt:     formatTime(rec.UpdatedAt),
	}
	for i, s := range rec.Sessions {
		dto.Sessions[i] = SessionDTO{
			ProjectID:     string(s.ProjectID),
			Start:         s.Start,
			End:           s.End,
			Hours:         s.Hours(),
			AllocatedWage: int64(s.AllocatedWage),
		}
	}
	return dto
}

// RecomputeDTO summarises a recompute run.
type RecomputeDTO struct {
	Month   string `json:"month"`
	Records int    `json:"records"`
	Changed int    `json:"changed"`
}

// ProjectCostDTO is the labour cost booked to a project.
type ProjectCostDTO struct {
	ProjectID string          `json:"project_id"`
	Hours     decimal.Decimal `json:"hours"`
	Wage      int64           `json:"wage"`
	Sessions  int             `json:"sessions"`
	Workers   int             `json:"workers"`
}

func toProjectCostDTO(c attendance.ProjectCost) ProjectCostDTO {
	return ProjectCostDTO{
		ProjectID: string(c.ProjectID),
		Hours:     c.Hours(),
		Wage:      int64(c.Wage),
		Sessions:  c.Sessions,
		Workers:   c.Workers,
	}
}

// PayrollDTO is one worker's monthly payroll.
type PayrollDTO struct {
	WorkerID      string          `json:"worker_id"`
	WorkerName    string          `json:"worker_name,omitempty"`
	Period        string          `json:"period"`
	Days          int             `json:"days"`
	HolidayDays   int             `json:"holiday_days"`
	NormalHours   decimal.Decimal `json:"normal_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	HolidayHours  decimal.Decimal `json:"holiday_hours"`
	TotalWage     int64           `json:"total_wage"`
	Status        string          `json:"status"`
	Reason        string          `json:"reason,omitempty"`
	ActorID       string          `json:"actor_id,omitempty"`
	UpdatedAt     string          `json:"updated_at,omitempty"`
}

func toPayrollDTO(rec payroll.Record, name string) PayrollDTO {
	dto := PayrollDTO{
		WorkerID:      string(rec.WorkerID),
		WorkerName:    name,
		Period:        rec.Period.String(),
		Days:          rec.Days,
		HolidayDays:   rec.HolidayDays,
		NormalHours:   rec.NormalHours,
		OvertimeHours: rec.OvertimeHours,
		HolidayHours:  rec.HolidayHours,
		TotalWage:     int64(rec.TotalWage),
		Status:        string(rec.Status),
		Reason:        rec.Reason,
		ActorID:       rec.ActorID,
	}
	if rec.UpdatedAt != nil {
		dto.UpdatedAt = formatTime(*rec.UpdatedAt)
	}
	return dto
}

// ScenarioDTO describes a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
