/*
handlers.go - HTTP API handlers for the site attendance and payroll system

PURPOSE:
  Exposes the wage engine, attendance recording and payroll workflow via
  REST API. Handles HTTP request/response, JSON serialization, validation,
  and delegates to the attendance and payroll services.

ENDPOINTS:
  Master data:
    GET    /api/masterdata                      Current snapshot (factory JSON)
    POST   /api/masterdata/import               Replace the snapshot
    GET    /api/workers                         List workers with resolved rates
    GET    /api/workers/{id}                    Worker details

  Holidays:
    GET    /api/holidays?month=                 Explicit holidays
    POST   /api/holidays                        Add a holiday
    DELETE /api/holidays/{id}                   Remove a holiday

  Attendance:
    POST   /api/attendance                      Record a worker-day
    POST   /api/attendance/preview              Compute without saving
    GET    /api/attendance?worker_id&month      List recorded days
    POST   /api/attendance/recompute?month=     Recompute every worker
    GET    /api/workers/{id}/attendance/{date}  One worker-day
    POST   /api/workers/{id}/recompute?month=   Recompute one worker

  Reports:
    GET    /api/projects/costs?month=           Wage allocated per project

  Payroll:
    GET    /api/payroll/{month}?status=         Monthly payroll for all workers
    POST   /api/payroll/{month}/open            Materialise pending rows
    GET    /api/payroll/{month}/export.xlsx     Spreadsheet export
    GET    /api/payroll/{month}/{workerID}      One worker's payroll
    POST   /api/payroll/{month}/{workerID}/approve|reject|pay
    GET    /api/payroll/{month}/{workerID}/payslip.pdf

ERROR HANDLING:
  Errors are returned as JSON {error, details} with HTTP status:
  - 400: Validation errors, invalid input
  - 404: Worker, holiday or attendance record not found
  - 409: Payroll status transition not allowed
  - 500: Internal errors

SECURITY NOTE:
  No authentication or authorization. Actor ids on payroll actions are
  taken from the request body as-is.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/subkh4n/SIPILPRO-sub000/attendance"
	"github.com/subkh4n/SIPILPRO-sub000/factory"
	"github.com/subkh4n/SIPILPRO-sub000/payroll"
	"github.com/subkh4n/SIPILPRO-sub000/wage"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Store is everything the API reads and writes. Both store/sqlite and
// store/memory satisfy it.
type Store interface {
	attendance.Store
	payroll.StatusStore

	AddHoliday(ctx context.Context, h wage.Holiday) error
	DeleteHoliday(ctx context.Context, id string) error
	Reset(ctx context.Context) error
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store      Store
	Attendance *attendance.Service
	Payroll    *payroll.Service
	Log        *slog.Logger

	validate *validator.Validate

	// Track currently loaded scenario
	mu              sync.RWMutex
	currentScenario string
}

// NewHandler creates a handler over store. A nil cache disables day caching.
func NewHandler(store Store, engine wage.Engine, cache *wage.DayCache, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		Store:      store,
		Attendance: attendance.NewService(store, engine, cache),
		Payroll:    payroll.NewService(store),
		Log:        log,
		validate:   validator.New(),
	}
}

// =============================================================================
// MASTER DATA HANDLERS
// =============================================================================

// GetMasterData returns the current snapshot in import format.
// GET /api/masterdata
func (h *Handler) GetMasterData(w http.ResponseWriter, r *http.Request) {
	ref, err := h.Store.LoadReference(r.Context())
	if err != nil {
		h.writeDomainError(w, r, "Failed to load master data", err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"version": ref.Version,
		"data":    factory.ToJSON(ref.Data()),
	})
}

// ImportMasterData replaces the snapshot. Stored attendance keeps its old
// wages until recomputed.
// POST /api/masterdata/import
func (h *Handler) ImportMasterData(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	snap, err := factory.ParseSnapshot(body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid master data", err)
		return
	}

	ctx := r.Context()
	if err := h.Store.SaveReference(ctx, snap.Data()); err != nil {
		h.writeDomainError(w, r, "Failed to save master data", err)
		return
	}
	h.Attendance.InvalidateAll()

	ref, err := h.Store.LoadReference(ctx)
	if err != nil {
		h.writeDomainError(w, r, "Failed to load master data", err)
		return
	}
	h.Log.Info("master data imported",
		slog.String("version", ref.Version),
		slog.Int("workers", len(snap.Data().Workers)),
		slog.Int("holidays", len(snap.Data().Holidays)))

	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":  "imported",
		"version": ref.Version,
		"workers": len(snap.Data().Workers),
	})
}

// ListWorkers returns all workers with their resolved rates.
// GET /api/workers
func (h *Handler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	ref, err := h.Store.LoadReference(r.Context())
	if err != nil {
		h.writeDomainError(w, r, "Failed to load workers", err)
		return
	}
	workers := ref.Workers()
	dtos := make([]WorkerDTO, len(workers))
	for i, wk := range workers {
		dtos[i] = toWorkerDTO(wk, ref)
	}
	writeJSON(w, r, http.StatusOK, dtos)
}

// GetWorker returns one worker.
// GET /api/workers/{id}
func (h *Handler) GetWorker(w http.ResponseWriter, r *http.Request) {
	ref, err := h.Store.LoadReference(r.Context())
	if err != nil {
		h.writeDomainError(w, r, "Failed to load workers", err)
		return
	}
	wk, err := lookupWorker(ref, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, "Worker not found", err)
		return
	}
	writeJSON(w, r, http.StatusOK, toWorkerDTO(wk, ref))
}

func lookupWorker(ref *wage.Reference, id string) (wage.Worker, error) {
	wk, ok := ref.Worker(wage.WorkerID(id))
	if !ok {
		return wage.Worker{}, fmt.Errorf("%w: %s", wage.ErrWorkerNotFound, id)
	}
	return wk, nil
}

// =============================================================================
// HOLIDAY ENDPOINTS
// =============================================================================

// ListHolidays returns explicit holidays, optionally for one month.
// Sundays are implicit and not listed.
// GET /api/holidays
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	ref, err := h.Store.LoadReference(r.Context())
	if err != nil {
		h.writeDomainError(w, r, "Failed to get holidays", err)
		return
	}

	holidays := ref.Calendar().Holidays()
	if m := r.URL.Query().Get("month"); m != "" {
		month, err := wage.ParseMonth(m)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
			return
		}
		holidays = ref.Calendar().InMonth(month)
	}

	dtos := make([]HolidayDTO, 0, len(holidays))
	for _, hol := range holidays {
		dtos = append(dtos, toHolidayDTO(hol))
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"holidays": dtos})
}

// CreateHoliday adds a holiday.
// POST /api/holidays
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if !h.decode(w, r, &req) {
		return
	}
	date, err := wage.ParseDate(req.Date)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	holiday := wage.Holiday{ID: uuid.NewString(), Date: date, Name: req.Name}
	if err := h.Store.AddHoliday(r.Context(), holiday); err != nil {
		h.writeDomainError(w, r, "Failed to create holiday", err)
		return
	}
	h.Attendance.InvalidateAll()

	writeJSON(w, r, http.StatusCreated, toHolidayDTO(holiday))
}

// DeleteHoliday deletes a holiday.
// DELETE /api/holidays/{id}
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteHoliday(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, r, "Failed to delete holiday", err)
		return
	}
	h.Attendance.InvalidateAll()

	writeJSON(w, r, http.StatusOK, map[string]any{"status": "deleted"})
}

// =============================================================================
// ATTENDANCE HANDLERS
// =============================================================================

// RecordAttendance computes and stores a worker-day.
// POST /api/attendance
func (h *Handler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	input, ok := h.dayInput(w, r)
	if !ok {
		return
	}
	rec, err := h.Attendance.Record(r.Context(), input)
	if err != nil {
		h.writeDomainError(w, r, "Failed to record attendance", err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toAttendanceDTO(rec))
}

// PreviewAttendance computes a worker-day without storing it.
// POST /api/attendance/preview
func (h *Handler) PreviewAttendance(w http.ResponseWriter, r *http.Request) {
	input, ok := h.dayInput(w, r)
	if !ok {
		return
	}
	rec, err := h.Attendance.Preview(r.Context(), input)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute attendance", err)
		return
	}
	writeJSON(w, r, http.StatusOK, toAttendanceDTO(rec))
}

// dayInput decodes and validates an attendance request and checks the
// worker exists.
func (h *Handler) dayInput(w http.ResponseWriter, r *http.Request) (wage.DayInput, bool) {
	var req AttendanceRequest
	if !h.decode(w, r, &req) {
		return wage.DayInput{}, false
	}
	input, err := req.toInput()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return wage.DayInput{}, false
	}
	if err := wage.ValidateSessions(input.Sessions); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid session (end must be after start)", err)
		return wage.DayInput{}, false
	}

	ref, err := h.Store.LoadReference(r.Context())
	if err != nil {
		h.writeDomainError(w, r, "Failed to load master data", err)
		return wage.DayInput{}, false
	}
	if _, err := lookupWorker(ref, req.WorkerID); err != nil {
		h.writeDomainError(w, r, "Worker not found", err)
		return wage.DayInput{}, false
	}
	return input, true
}

// ListAttendance returns recorded days.
// GET /api/attendance?worker_id=&project_id=&month=
func (h *Handler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	month, ok := monthParam(w, r, q.Get("month"))
	if !ok {
		return
	}

	filter := wage.ForMonth(wage.WorkerID(q.Get("worker_id")), month)
	filter.ProjectID = wage.ProjectID(q.Get("project_id"))

	records, err := h.Attendance.List(r.Context(), filter)
	if err != nil {
		h.writeDomainError(w, r, "Failed to list attendance", err)
		return
	}
	dtos := make([]AttendanceDTO, len(records))
	for i, rec := range records {
		dtos[i] = toAttendanceDTO(rec)
	}
	writeJSON(w, r, http.StatusOK, dtos)
}

// GetWorkerDay returns one stored worker-day.
// GET /api/workers/{id}/attendance/{date}
func (h *Handler) GetWorkerDay(w http.ResponseWriter, r *http.Request) {
	date, err := wage.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	rec, err := h.Attendance.Get(r.Context(), wage.WorkerID(chi.URLParam(r, "id")), date)
	if err != nil {
		h.writeDomainError(w, r, "Attendance not found", err)
		return
	}
	writeJSON(w, r, http.StatusOK, toAttendanceDTO(rec))
}

// RecomputeWorker recomputes one worker's month against current master data.
// POST /api/workers/{id}/recompute?month=
func (h *Handler) RecomputeWorker(w http.ResponseWriter, r *http.Request) {
	h.recompute(w, r, wage.WorkerID(chi.URLParam(r, "id")))
}

// RecomputeAll recomputes every worker's month.
// POST /api/attendance/recompute?month=
func (h *Handler) RecomputeAll(w http.ResponseWriter, r *http.Request) {
	h.recompute(w, r, "")
}

func (h *Handler) recompute(w http.ResponseWriter, r *http.Request, workerID wage.WorkerID) {
	month, ok := monthParam(w, r, r.URL.Query().Get("month"))
	if !ok {
		return
	}
	if workerID != "" {
		h.Attendance.InvalidateWorker(workerID)
	}
	res, err := h.Attendance.Recompute(r.Context(), workerID, month)
	if err != nil {
		h.writeDomainError(w, r, "Failed to recompute attendance", err)
		return
	}
	h.Log.Info("attendance recomputed",
		slog.String("worker_id", string(workerID)),
		slog.String("month", month.String()),
		slog.Int("records", res.Records),
		slog.Int("changed", res.Changed))

	writeJSON(w, r, http.StatusOK, RecomputeDTO{Month: month.String(), Records: res.Records, Changed: res.Changed})
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// ProjectCosts returns the wage allocated to each project in a month.
// GET /api/projects/costs?month=
func (h *Handler) ProjectCosts(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r, r.URL.Query().Get("month"))
	if !ok {
		return
	}
	records, err := h.Attendance.List(r.Context(), wage.ForMonth("", month))
	if err != nil {
		h.writeDomainError(w, r, "Failed to load attendance", err)
		return
	}
	costs := attendance.ProjectCosts(records)
	dtos := make([]ProjectCostDTO, len(costs))
	for i, c := range costs {
		dtos[i] = toProjectCostDTO(c)
	}
	writeJSON(w, r, http.StatusOK, dtos)
}

// =============================================================================
// PAYROLL HANDLERS
// =============================================================================

// ListPayroll returns every worker's payroll for a month.
// GET /api/payroll/{month}?status=&worker_id=
func (h *Handler) ListPayroll(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r, chi.URLParam(r, "month"))
	if !ok {
		return
	}

	filter := payroll.Filter{WorkerID: wage.WorkerID(r.URL.Query().Get("worker_id"))}
	if s := r.URL.Query().Get("status"); s != "" {
		status, err := payroll.ParseStatus(s)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "Invalid status filter", err)
			return
		}
		filter.Status = status
	}

	records, err := h.Payroll.Period(r.Context(), month, filter)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute payroll", err)
		return
	}
	names, err := h.workerNames(r.Context())
	if err != nil {
		h.writeDomainError(w, r, "Failed to load workers", err)
		return
	}

	dtos := make([]PayrollDTO, len(records))
	for i, rec := range records {
		dtos[i] = toPayrollDTO(rec, names[rec.WorkerID])
	}
	writeJSON(w, r, http.StatusOK, dtos)
}

// GetPayroll returns one worker's payroll.
// GET /api/payroll/{month}/{workerID}
func (h *Handler) GetPayroll(w http.ResponseWriter, r *http.Request) {
	key, name, ok := h.payrollKey(w, r)
	if !ok {
		return
	}
	rec, err := h.Payroll.Get(r.Context(), key)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute payroll", err)
		return
	}
	writeJSON(w, r, http.StatusOK, toPayrollDTO(rec, name))
}

// OpenPayroll creates pending rows for every worker with attendance.
// POST /api/payroll/{month}/open
func (h *Handler) OpenPayroll(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r, chi.URLParam(r, "month"))
	if !ok {
		return
	}
	opened, err := h.Payroll.Open(r.Context(), month)
	if err != nil {
		h.writeDomainError(w, r, "Failed to open payroll", err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"period": month.String(), "opened": opened})
}

// ApprovePayroll moves a pending payroll to approved.
// POST /api/payroll/{month}/{workerID}/approve
func (h *Handler) ApprovePayroll(w http.ResponseWriter, r *http.Request) {
	h.payrollAction(w, r, payroll.ActionApprove)
}

// RejectPayroll moves a pending payroll to rejected; a reason is required.
// POST /api/payroll/{month}/{workerID}/reject
func (h *Handler) RejectPayroll(w http.ResponseWriter, r *http.Request) {
	h.payrollAction(w, r, payroll.ActionReject)
}

// PayPayroll marks an approved payroll as paid.
// POST /api/payroll/{month}/{workerID}/pay
func (h *Handler) PayPayroll(w http.ResponseWriter, r *http.Request) {
	h.payrollAction(w, r, payroll.ActionMarkPaid)
}

func (h *Handler) payrollAction(w http.ResponseWriter, r *http.Request, action payroll.Action) {
	key, name, ok := h.payrollKey(w, r)
	if !ok {
		return
	}
	var req PayrollActionRequest
	if !h.decode(w, r, &req) {
		return
	}

	ctx := r.Context()
	var (
		rec payroll.Record
		err error
	)
	switch action {
	case payroll.ActionApprove:
		rec, err = h.Payroll.Approve(ctx, key, req.ActorID)
	case payroll.ActionReject:
		rec, err = h.Payroll.Reject(ctx, key, req.ActorID, req.Reason)
	case payroll.ActionMarkPaid:
		rec, err = h.Payroll.MarkPaid(ctx, key, req.ActorID)
	}
	if err != nil {
		h.writeDomainError(w, r, fmt.Sprintf("Failed to %s payroll", action), err)
		return
	}

	h.Log.Info("payroll status changed",
		slog.String("key", key.String()),
		slog.String("action", string(action)),
		slog.String("status", string(rec.Status)),
		slog.String("actor_id", req.ActorID))

	writeJSON(w, r, http.StatusOK, toPayrollDTO(rec, name))
}

// ExportPayroll streams the month's payroll as an XLSX workbook.
// GET /api/payroll/{month}/export.xlsx
func (h *Handler) ExportPayroll(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r, chi.URLParam(r, "month"))
	if !ok {
		return
	}
	records, err := h.Payroll.Period(r.Context(), month, payroll.Filter{})
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute payroll", err)
		return
	}
	names, err := h.workerNames(r.Context())
	if err != nil {
		h.writeDomainError(w, r, "Failed to load workers", err)
		return
	}
	data, err := payroll.ExportXLSX(month, records, names)
	if err != nil {
		h.writeDomainError(w, r, "Failed to build workbook", err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payroll-%s.xlsx"`, month))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Payslip renders one worker's payslip as PDF.
// GET /api/payroll/{month}/{workerID}/payslip.pdf
func (h *Handler) Payslip(w http.ResponseWriter, r *http.Request) {
	key, name, ok := h.payrollKey(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	rec, err := h.Payroll.Get(ctx, key)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute payroll", err)
		return
	}
	days, err := h.Attendance.List(ctx, wage.ForMonth(key.WorkerID, key.Period))
	if err != nil {
		h.writeDomainError(w, r, "Failed to load attendance", err)
		return
	}

	var buf bytes.Buffer
	if err := payroll.WritePayslip(&buf, payroll.Payslip{Record: rec, WorkerName: name, Days: days}); err != nil {
		h.writeDomainError(w, r, "Failed to render payslip", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="payslip-%s-%s.pdf"`, key.WorkerID, key.Period))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// payrollKey reads {month} and {workerID} and checks the worker exists.
func (h *Handler) payrollKey(w http.ResponseWriter, r *http.Request) (payroll.Key, string, bool) {
	month, ok := monthParam(w, r, chi.URLParam(r, "month"))
	if !ok {
		return payroll.Key{}, "", false
	}
	ref, err := h.Store.LoadReference(r.Context())
	if err != nil {
		h.writeDomainError(w, r, "Failed to load workers", err)
		return payroll.Key{}, "", false
	}
	wk, err := lookupWorker(ref, chi.URLParam(r, "workerID"))
	if err != nil {
		h.writeDomainError(w, r, "Worker not found", err)
		return payroll.Key{}, "", false
	}
	return payroll.Key{WorkerID: wk.ID, Period: month}, wk.Name, true
}

func (h *Handler) workerNames(ctx context.Context) (map[wage.WorkerID]string, error) {
	ref, err := h.Store.LoadReference(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[wage.WorkerID]string)
	for _, wk := range ref.Workers() {
		names[wk.ID] = wk.Name
	}
	return names, nil
}

// ResetDatabase clears attendance and payroll status.
// POST /api/scenarios/reset
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		h.writeDomainError(w, r, "Failed to reset database", err)
		return
	}
	h.Attendance.InvalidateAll()

	h.mu.Lock()
	h.currentScenario = ""
	h.mu.Unlock()

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, r, status, resp)
}

// writeDomainError maps service errors to HTTP statuses.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case wage.IsClientError(err), payroll.IsClientError(err), errors.Is(err, factory.ErrInvalidSnapshot):
		status = http.StatusBadRequest
	case wage.IsNotFound(err), errors.Is(err, attendance.ErrNotFound):
		status = http.StatusNotFound
	case payroll.IsConflict(err):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		h.Log.Error(message, slog.String("path", r.URL.Path), slog.String("error", err.Error()))
	}
	writeError(w, r, status, message, err)
}

// decode reads a JSON body into dst and validates it.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			writeError(w, r, http.StatusBadRequest, "Validation failed", errors.New(describeValidation(verrs)))
			return false
		}
		writeError(w, r, http.StatusBadRequest, "Validation failed", err)
		return false
	}
	return true
}

func describeValidation(errs validator.ValidationErrors) string {
	parts := make([]string, len(errs))
	for i, fe := range errs {
		if fe.Param() != "" {
			parts[i] = fmt.Sprintf("%s: %s=%s", fe.Namespace(), fe.Tag(), fe.Param())
		} else {
			parts[i] = fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag())
		}
	}
	return strings.Join(parts, "; ")
}

// monthParam parses a YYYY-MM value; empty means the current month.
func monthParam(w http.ResponseWriter, r *http.Request, value string) (wage.Month, bool) {
	if value == "" {
		return wage.DateOf(time.Now()).MonthOf(), true
	}
	month, err := wage.ParseMonth(value)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
		return wage.Month{}, false
	}
	return month, true
}
