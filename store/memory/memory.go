// Package memory provides an in-memory implementation of every store
// interface (wage.AttendanceStore, wage.ReferenceStore, payroll.StatusStore).
package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/subkh4n/SIPILPRO-sub000/payroll"
	"github.com/subkh4n/SIPILPRO-sub000/wage"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu         sync.RWMutex
	attendance map[dayKey]wage.AttendanceRecord
	statuses   map[payroll.Key]payroll.StatusEntry
	data       wage.ReferenceData
	version    int
	ref        *wage.Reference
}

type dayKey struct {
	WorkerID wage.WorkerID
	Date     wage.Date
}

func New() *Memory {
	m := &Memory{
		attendance: make(map[dayKey]wage.AttendanceRecord),
		statuses:   make(map[payroll.Key]payroll.StatusEntry),
	}
	m.ref = wage.NewReference("0", m.data)
	return m
}

// =============================================================================
// ATTENDANCE
// =============================================================================

// SaveAttendance inserts or replaces the record for (worker, date).
func (m *Memory) SaveAttendance(_ context.Context, rec wage.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.Sessions = append([]wage.WorkSession(nil), rec.Sessions...)
	m.attendance[dayKey{WorkerID: rec.WorkerID, Date: rec.Date}] = rec
	return nil
}

func (m *Memory) GetAttendance(_ context.Context, workerID wage.WorkerID, date wage.Date) (*wage.AttendanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.attendance[dayKey{WorkerID: workerID, Date: date}]
	if !ok {
		return nil, nil
	}
	rec.Sessions = append([]wage.WorkSession(nil), rec.Sessions...)
	return &rec, nil
}

func (m *Memory) ListAttendance(_ context.Context, filter wage.AttendanceFilter) ([]wage.AttendanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []wage.AttendanceRecord
	for _, rec := range m.attendance {
		if filter.Matches(rec) {
			rec.Sessions = append([]wage.WorkSession(nil), rec.Sessions...)
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].WorkerID < result[j].WorkerID
	})
	return result, nil
}

// =============================================================================
// REFERENCE DATA
// =============================================================================

func (m *Memory) LoadReference(_ context.Context) (*wage.Reference, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ref, nil
}

// SaveReference replaces the master-data snapshot and bumps the version.
func (m *Memory) SaveReference(_ context.Context, data wage.ReferenceData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.bumpLocked()
	return nil
}

// AddHoliday adds one holiday to the snapshot, replacing an entry with the
// same id.
func (m *Memory) AddHoliday(_ context.Context, h wage.Holiday) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	holidays := make([]wage.Holiday, 0, len(m.data.Holidays)+1)
	for _, existing := range m.data.Holidays {
		if existing.ID != h.ID {
			holidays = append(holidays, existing)
		}
	}
	m.data.Holidays = append(holidays, h)
	m.bumpLocked()
	return nil
}

// DeleteHoliday removes a holiday by id.
func (m *Memory) DeleteHoliday(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := make([]wage.Holiday, 0, len(m.data.Holidays))
	for _, h := range m.data.Holidays {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	if len(kept) == len(m.data.Holidays) {
		return fmt.Errorf("%w: %s", wage.ErrHolidayNotFound, id)
	}
	m.data.Holidays = kept
	m.bumpLocked()
	return nil
}

// Reset drops attendance and payroll status. Reference data is kept.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attendance = make(map[dayKey]wage.AttendanceRecord)
	m.statuses = make(map[payroll.Key]payroll.StatusEntry)
	return nil
}

func (m *Memory) bumpLocked() {
	m.version++
	m.ref = wage.NewReference(strconv.Itoa(m.version), m.data)
}

// =============================================================================
// PAYROLL STATUS
// =============================================================================

func (m *Memory) GetStatus(_ context.Context, key payroll.Key) (*payroll.StatusEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.statuses[key]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (m *Memory) ListStatuses(_ context.Context, period wage.Month) ([]payroll.StatusEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []payroll.StatusEntry
	for k, e := range m.statuses {
		if k.Period == period {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.WorkerID < out[j].Key.WorkerID })
	return out, nil
}

// UpdateStatus applies fn under the write lock; on error nothing is stored.
func (m *Memory) UpdateStatus(_ context.Context, key payroll.Key, fn func(payroll.StatusEntry) (payroll.StatusEntry, error)) (payroll.StatusEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.statuses[key]
	if !ok {
		current = payroll.StatusEntry{Key: key, Status: payroll.StatusPending}
	}
	next, err := fn(current)
	if err != nil {
		return current, err
	}
	next.Key = key
	m.statuses[key] = next
	return next, nil
}
