/*
store.go - Persistence interfaces consumed around the engine

PURPOSE:
  The engine itself never touches storage. These interfaces describe what
  the attendance and payroll services need from a store, so the same
  services run on store/memory in tests and store/sqlite in production.

KEY INTERFACES:
  AttendanceStore: enriched attendance records, one per (worker, date)
  ReferenceStore:  versioned master-data snapshots

IMPLEMENTATIONS:
  - store/memory: in-memory, for tests and dev
  - store/sqlite: SQLite
*/
package wage

import "context"

// AttendanceFilter selects attendance records. Zero fields match everything;
// From and To are inclusive.
type AttendanceFilter struct {
	WorkerID  WorkerID
	ProjectID ProjectID
	From      Date
	To        Date
}

// ForMonth returns a filter over one worker's month. An empty workerID
// selects every worker.
func ForMonth(workerID WorkerID, m Month) AttendanceFilter {
	return AttendanceFilter{WorkerID: workerID, From: m.Start(), To: m.End()}
}

// Matches reports whether r passes the filter.
func (f AttendanceFilter) Matches(r AttendanceRecord) bool {
	if f.WorkerID != "" && r.WorkerID != f.WorkerID {
		return false
	}
	if !f.From.IsZero() && r.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && r.Date.After(f.To) {
		return false
	}
	if f.ProjectID != "" {
		for _, s := range r.Sessions {
			if s.ProjectID == f.ProjectID {
				return true
			}
		}
		return false
	}
	return true
}

// AttendanceStore persists enriched attendance records.
type AttendanceStore interface {
	// SaveAttendance inserts or replaces the record for (WorkerID, Date).
	SaveAttendance(ctx context.Context, rec AttendanceRecord) error

	// GetAttendance returns nil, nil when no record exists.
	GetAttendance(ctx context.Context, workerID WorkerID, date Date) (*AttendanceRecord, error)

	// ListAttendance returns matching records ordered by date, then worker.
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceRecord, error)
}

// ReferenceStore persists the master-data snapshot. Every write produces a
// new Reference.Version.
type ReferenceStore interface {
	LoadReference(ctx context.Context) (*Reference, error)
	SaveReference(ctx context.Context, data ReferenceData) error
}
