/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	site data for testing and demos. Every scenario imports the same
	master-data snapshot (three workers, two national holidays in March
	2025) and then records a different set of worker-days through the
	attendance service, so wages are computed exactly as in production.

AVAILABLE SCENARIOS:

	single-project-week: One worker, one project, a week with overtime and a Sunday
	multi-project-split: One long day split over three projects
	national-holiday:    Grade-based rates across Nyepi and Idul Fitri
	payroll-month:       A month of attendance with approved and rejected payroll

HOW SCENARIOS WORK:
 1. Reset database (clear attendance and payroll status)
 2. Import the demo master-data snapshot via factory
 3. Record worker-days
 4. Optionally drive the payroll workflow

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "payroll-month"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: ResetDatabase handler
  - factory/snapshot.go: Master-data JSON format
*/
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/subkh4n/SIPILPRO-sub000/factory"
	"github.com/subkh4n/SIPILPRO-sub000/payroll"
	"github.com/subkh4n/SIPILPRO-sub000/wage"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "single-project-week",
		Name:        "Single Project Week",
		Description: "Flat-rate helper on one project for a week: overtime on Saturday, Sunday paid at holiday rate",
		Category:    "attendance",
	},
	{
		ID:          "multi-project-split",
		Name:        "Multi-Project Split",
		Description: "A 10h20m day across three projects with the wage allocated by minutes",
		Category:    "allocation",
	},
	{
		ID:          "national-holiday",
		Name:        "National Holiday",
		Description: "Grade-based rates around Nyepi and Idul Fitri",
		Category:    "calendar",
	},
	{
		ID:          "payroll-month",
		Name:        "Payroll Month",
		Description: "March attendance for the whole crew, payroll opened, one approved and one rejected",
		Category:    "payroll",
	},
}

// demoMonth is the month every scenario records into.
var demoMonth = wage.Month{Year: 2025, Month: time.March}

// demoSnapshot is the master data shared by all scenarios.
//
//	w-sari: flat 20000 / 30000 / 40000
//	w-budi: tukang, gol-2 daily 200000 -> 25000 / 43750 / 50000
//	w-agus: mandor, gol-3 daily 280000 -> 35000 / 70000 / 87500
const demoSnapshot = `{
  "work_schedules": [
    {"id": "sch-6d", "name": "Six-day week", "work_days_per_week": 6, "hours_per_day": 8, "overtime_multiplier": 1.75}
  ],
  "positions": [
    {"id": "pos-tukang", "name": "Tukang", "schedule_id": "sch-6d"},
    {"id": "pos-mandor", "name": "Mandor", "schedule_id": "sch-6d", "overtime_multiplier": 2, "holiday_multiplier": 2.5}
  ],
  "salary_grades": [
    {"id": "gol-2", "name": "Golongan II", "rates": {"pos-tukang": {"daily": 200000}}},
    {"id": "gol-3", "name": "Golongan III", "rates": {"pos-tukang": {"daily": 240000}, "pos-mandor": {"daily": 280000}}}
  ],
  "workers": [
    {"id": "w-sari", "name": "Sari", "skill_tier": "laden", "rates": {"normal": 20000, "overtime": 30000, "holiday": 40000}},
    {"id": "w-budi", "name": "Budi", "skill_tier": "tukang", "position_id": "pos-tukang", "grade_id": "gol-2"},
    {"id": "w-agus", "name": "Agus", "skill_tier": "mandor", "position_id": "pos-mandor", "grade_id": "gol-3"}
  ],
  "holidays": [
    {"id": "h-nyepi", "date": "2025-03-29", "name": "Hari Raya Nyepi"},
    {"id": "h-idul-fitri", "date": "2025-03-31", "name": "Idul Fitri"}
  ]
}`

// ListScenarios returns available scenarios.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
// GET /api/scenarios/current
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	current := h.currentScenario
	h.mu.RUnlock()

	if current == "" {
		writeJSON(w, r, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, r, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, r, http.StatusOK, ScenarioDTO{ID: current, Name: current, Description: "Currently loaded scenario"})
}

// LoadScenario loads a predefined scenario.
// POST /api/scenarios/load
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if !h.decode(w, r, &req) {
		return
	}

	var loader func(context.Context) error
	switch req.ScenarioID {
	case "single-project-week":
		loader = h.loadSingleProjectWeekScenario
	case "multi-project-split":
		loader = h.loadMultiProjectSplitScenario
	case "national-holiday":
		loader = h.loadNationalHolidayScenario
	case "payroll-month":
		loader = h.loadPayrollMonthScenario
	default:
		writeError(w, r, http.StatusBadRequest, "Unknown scenario", fmt.Errorf("no scenario %q", req.ScenarioID))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := r.Context()
	h.currentScenario = ""
	if err := h.prepareScenario(ctx); err != nil {
		h.writeDomainError(w, r, "Failed to reset database", err)
		return
	}
	if err := loader(ctx); err != nil {
		h.writeDomainError(w, r, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}
	h.currentScenario = req.ScenarioID

	h.Log.Info("scenario loaded", slog.String("scenario", req.ScenarioID))
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// prepareScenario clears attendance and payroll status and imports the demo
// master data.
func (h *Handler) prepareScenario(ctx context.Context) error {
	if err := h.Store.Reset(ctx); err != nil {
		return err
	}
	snap, err := factory.ParseSnapshot([]byte(demoSnapshot))
	if err != nil {
		return err
	}
	if err := h.Store.SaveReference(ctx, snap.Data()); err != nil {
		return err
	}
	h.Attendance.InvalidateAll()
	return nil
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadSingleProjectWeekScenario(ctx context.Context) error {
	// Mon 3 - Sun 9 March: 8h weekdays, 10h Saturday, 5h Sunday
	monday := demoMonth.Start().AddDays(2)
	for i := 0; i < 5; i++ {
		if err := h.record(ctx, day("w-sari", monday.AddDays(i), session("tower-a", "07:00", "15:00"))); err != nil {
			return err
		}
	}
	if err := h.record(ctx, day("w-sari", monday.AddDays(5), session("tower-a", "07:00", "17:00"))); err != nil {
		return err
	}
	return h.record(ctx, day("w-sari", monday.AddDays(6), session("tower-a", "07:00", "12:00")))
}

func (h *Handler) loadMultiProjectSplitScenario(ctx context.Context) error {
	tuesday := demoMonth.Start().AddDays(3)
	return h.record(ctx, day("w-budi", tuesday,
		session("tower-a", "07:00", "10:20"),
		session("gudang", "10:20", "14:00"),
		session("jalan-desa", "14:00", "17:20"),
	))
}

func (h *Handler) loadNationalHolidayScenario(ctx context.Context) error {
	friday := wage.NewDate(2025, time.March, 28)
	days := []wage.DayInput{
		day("w-budi", friday, session("tower-a", "07:00", "15:00")),
		day("w-budi", friday.AddDays(1), session("tower-a", "07:00", "13:00")),
		day("w-agus", friday, session("tower-a", "07:00", "16:00")),
		day("w-agus", friday.AddDays(1), session("tower-a", "07:00", "11:00"), session("gudang", "12:00", "14:00")),
		day("w-agus", friday.AddDays(3), session("gudang", "08:00", "12:00")),
	}
	for _, d := range days {
		if err := h.record(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadPayrollMonthScenario(ctx context.Context) error {
	// Every Monday to Saturday of March except the two holidays
	for _, date := range demoMonth.Days() {
		if date.IsSunday() || date.Day() == 29 || date.Day() == 31 {
			continue
		}
		days := []wage.DayInput{
			day("w-sari", date, session("tower-a", "07:00", "15:00")),
			day("w-budi", date, session("tower-a", "07:00", "12:00"), session("gudang", "13:00", "17:00")),
			day("w-agus", date, session("tower-a", "07:00", "16:00")),
		}
		for _, d := range days {
			if err := h.record(ctx, d); err != nil {
				return err
			}
		}
	}

	if _, err := h.Payroll.Open(ctx, demoMonth); err != nil {
		return err
	}
	if _, err := h.Payroll.Approve(ctx, payroll.Key{WorkerID: "w-sari", Period: demoMonth}, "pm-rina"); err != nil {
		return err
	}
	_, err := h.Payroll.Reject(ctx, payroll.Key{WorkerID: "w-agus", Period: demoMonth}, "pm-rina", "timesheet for 14 March not signed")
	return err
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) record(ctx context.Context, input wage.DayInput) error {
	if _, err := h.Attendance.Record(ctx, input); err != nil {
		return fmt.Errorf("failed to record %s on %s: %w", input.WorkerID, input.Date, err)
	}
	return nil
}

func day(workerID wage.WorkerID, date wage.Date, sessions ...wage.SessionInput) wage.DayInput {
	return wage.DayInput{WorkerID: workerID, Date: date, Sessions: sessions}
}

func session(project wage.ProjectID, start, end string) wage.SessionInput {
	return wage.SessionInput{ProjectID: project, Start: start, End: end}
}
