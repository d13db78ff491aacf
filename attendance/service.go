/*
Package attendance records worker-days and keeps their wages current.

PURPOSE:
  The capture side (QR scan or manual entry) hands over raw sessions for a
  worker and a date. The service runs them through the wage engine against
  the current master-data snapshot and persists the enriched record, one
  per (worker, date). Recording the same day again replaces it.

RECOMPUTATION:
  A stored record carries the wage computed from the reference data of its
  time. Recompute re-runs the engine on the stored raw sessions with the
  current snapshot; doing so twice changes nothing the second time.

SEE ALSO:
  - wage/engine.go: The pipeline itself
  - costs.go: Project cost report built from allocated wages
*/
package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/subkh4n/SIPILPRO-sub000/wage"
)

// ErrNotFound is returned when a worker-day has no attendance record.
var ErrNotFound = errors.New("attendance record not found")

// Store is what the service needs from persistence.
type Store interface {
	wage.AttendanceStore
	wage.ReferenceStore
}

// Service computes and persists attendance records.
type Service struct {
	Store  Store
	Engine wage.Engine
	Cache  *wage.DayCache

	Now func() time.Time
}

func NewService(store Store, engine wage.Engine, cache *wage.DayCache) *Service {
	return &Service{Store: store, Engine: engine, Cache: cache, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Preview computes a day without persisting it.
func (s *Service) Preview(ctx context.Context, input wage.DayInput) (wage.AttendanceRecord, error) {
	ref, err := s.Store.LoadReference(ctx)
	if err != nil {
		return wage.AttendanceRecord{}, fmt.Errorf("failed to load reference data: %w", err)
	}
	return s.Cache.Compute(s.Engine, input, ref), nil
}

// Record computes a day and stores it, replacing any earlier record of the
// same worker-day (keeping its ID and CreatedAt).
func (s *Service) Record(ctx context.Context, input wage.DayInput) (wage.AttendanceRecord, error) {
	rec, err := s.Preview(ctx, input)
	if err != nil {
		return wage.AttendanceRecord{}, err
	}

	existing, err := s.Store.GetAttendance(ctx, input.WorkerID, input.Date)
	if err != nil {
		return wage.AttendanceRecord{}, fmt.Errorf("failed to load existing record: %w", err)
	}

	now := s.now()
	rec.ID = wage.RecordID(uuid.NewString())
	rec.CreatedAt = now
	if existing != nil {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	}
	rec.UpdatedAt = now

	if err := s.Store.SaveAttendance(ctx, rec); err != nil {
		return wage.AttendanceRecord{}, fmt.Errorf("failed to save attendance: %w", err)
	}
	return rec, nil
}

// Get returns a stored worker-day.
func (s *Service) Get(ctx context.Context, workerID wage.WorkerID, date wage.Date) (wage.AttendanceRecord, error) {
	rec, err := s.Store.GetAttendance(ctx, workerID, date)
	if err != nil {
		return wage.AttendanceRecord{}, err
	}
	if rec == nil {
		return wage.AttendanceRecord{}, fmt.Errorf("%w: %s on %s", ErrNotFound, workerID, date)
	}
	return *rec, nil
}

// List returns stored records matching filter.
func (s *Service) List(ctx context.Context, filter wage.AttendanceFilter) ([]wage.AttendanceRecord, error) {
	return s.Store.ListAttendance(ctx, filter)
}

// RecomputeResult summarises a recompute run.
type RecomputeResult struct {
	Records int
	Changed int
}

// Recompute re-runs the engine over a worker's stored month (every worker
// when workerID is empty) against the current reference snapshot. Only
// records whose computed values changed are written back.
func (s *Service) Recompute(ctx context.Context, workerID wage.WorkerID, month wage.Month) (RecomputeResult, error) {
	var res RecomputeResult
	ref, err := s.Store.LoadReference(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to load reference data: %w", err)
	}
	records, err := s.Store.ListAttendance(ctx, wage.ForMonth(workerID, month))
	if err != nil {
		return res, fmt.Errorf("failed to load attendance: %w", err)
	}

	now := s.now()
	for _, old := range records {
		res.Records++
		fresh := s.Cache.Compute(s.Engine, old.Input(), ref)
		if sameComputation(old, fresh) {
			continue
		}
		fresh.ID = old.ID
		fresh.CreatedAt = old.CreatedAt
		fresh.UpdatedAt = now
		if err := s.Store.SaveAttendance(ctx, fresh); err != nil {
			return res, fmt.Errorf("failed to save recomputed %s on %s: %w", old.WorkerID, old.Date, err)
		}
		res.Changed++
	}
	return res, nil
}

// InvalidateWorker drops cached days of a worker after its rate context changed.
func (s *Service) InvalidateWorker(workerID wage.WorkerID) {
	if s.Cache != nil {
		s.Cache.Invalidate(workerID)
	}
}

// InvalidateAll drops every cached day, e.g. after the holiday table changed.
func (s *Service) InvalidateAll() {
	if s.Cache != nil {
		s.Cache.InvalidateAll()
	}
}

func sameComputation(a, b wage.AttendanceRecord) bool {
	if a.Wage != b.Wage || a.TotalMinutes != b.TotalMinutes || a.IsHoliday != b.IsHoliday ||
		a.HolidayReason != b.HolidayReason || len(a.Sessions) != len(b.Sessions) {
		return false
	}
	if !a.Rates.Normal.Equal(b.Rates.Normal) || !a.Rates.Overtime.Equal(b.Rates.Overtime) ||
		!a.Rates.Holiday.Equal(b.Rates.Holiday) {
		return false
	}
	for i := range a.Sessions {
		if a.Sessions[i].AllocatedWage != b.Sessions[i].AllocatedWage || a.Sessions[i].Minutes != b.Sessions[i].Minutes {
			return false
		}
	}
	return true
}
