package payroll

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/subkh4n/SIPILPRO-sub000/wage"
)

// =============================================================================
// STORE
// =============================================================================

// StatusStore persists approval status per payroll key.
type StatusStore interface {
	// GetStatus returns nil, nil when the key has no status yet.
	GetStatus(ctx context.Context, key Key) (*StatusEntry, error)

	// ListStatuses returns every status entry of a month.
	ListStatuses(ctx context.Context, period wage.Month) ([]StatusEntry, error)

	// UpdateStatus atomically reads the entry for key (a fresh pending entry
	// when none exists), applies fn and stores the result. An error from fn
	// aborts the write.
	UpdateStatus(ctx context.Context, key Key, fn func(StatusEntry) (StatusEntry, error)) (StatusEntry, error)
}

// Store is everything the payroll service reads and writes.
type Store interface {
	wage.AttendanceStore
	wage.ReferenceStore
	StatusStore
}

// =============================================================================
// SERVICE
// =============================================================================

// Filter narrows a period listing.
type Filter struct {
	Status   Status
	WorkerID wage.WorkerID
}

// Service computes payroll on demand and drives the status workflow.
type Service struct {
	Store Store

	// Concurrency bounds the per-worker fan-out in Period. Zero means 4.
	Concurrency int

	Now func() time.Time
}

func NewService(store Store) *Service {
	return &Service{Store: store, Concurrency: 4, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Get computes one worker's payroll for a month, with its current status.
func (s *Service) Get(ctx context.Context, key Key) (Record, error) {
	records, err := s.Store.ListAttendance(ctx, wage.ForMonth(key.WorkerID, key.Period))
	if err != nil {
		return Record{}, fmt.Errorf("failed to load attendance for %s: %w", key, err)
	}
	entry, err := s.Store.GetStatus(ctx, key)
	if err != nil {
		return Record{}, fmt.Errorf("failed to load status for %s: %w", key, err)
	}
	return Aggregate(key.WorkerID, key.Period, records).WithStatus(entry), nil
}

// Period computes payroll for every known worker in a month, plus any worker
// with attendance in that month, ordered by worker id. Workers without
// attendance get a zero record.
func (s *Service) Period(ctx context.Context, period wage.Month, filter Filter) ([]Record, error) {
	ref, err := s.Store.LoadReference(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}
	statuses, err := s.Store.ListStatuses(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to load statuses for %s: %w", period, err)
	}
	byWorker := make(map[wage.WorkerID]*StatusEntry, len(statuses))
	for i := range statuses {
		byWorker[statuses[i].Key.WorkerID] = &statuses[i]
	}

	// workers dropped from master data keep their payroll while the month
	// still holds their attendance
	attendance, err := s.Store.ListAttendance(ctx, wage.ForMonth(filter.WorkerID, period))
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance for %s: %w", period, err)
	}
	seen := make(map[wage.WorkerID]bool)
	var ids []wage.WorkerID
	add := func(id wage.WorkerID) {
		if seen[id] || (filter.WorkerID != "" && filter.WorkerID != id) {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	}
	for _, w := range ref.Workers() {
		add(w.ID)
	}
	for _, r := range attendance {
		add(r.WorkerID)
	}

	results := make([]Record, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	limit := s.Concurrency
	if limit <= 0 {
		limit = 4
	}
	g.SetLimit(limit)
	for i, id := range ids {
		g.Go(func() error {
			records, err := s.Store.ListAttendance(gctx, wage.ForMonth(id, period))
			if err != nil {
				return fmt.Errorf("failed to load attendance for %s: %w", id, err)
			}
			results[i] = Aggregate(id, period, records).WithStatus(byWorker[id])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := results[:0]
	for _, r := range results {
		if filter.Status == "" || r.Status == filter.Status {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WorkerID < out[j].WorkerID })
	return out, nil
}

// Approve moves a pending payroll to approved.
func (s *Service) Approve(ctx context.Context, key Key, actorID string) (Record, error) {
	return s.apply(ctx, key, ActionApprove, actorID, "")
}

// Reject moves a pending payroll to rejected. A reason is required.
func (s *Service) Reject(ctx context.Context, key Key, actorID, reason string) (Record, error) {
	return s.apply(ctx, key, ActionReject, actorID, reason)
}

// MarkPaid moves an approved payroll to paid.
func (s *Service) MarkPaid(ctx context.Context, key Key, actorID string) (Record, error) {
	return s.apply(ctx, key, ActionMarkPaid, actorID, "")
}

func (s *Service) apply(ctx context.Context, key Key, action Action, actorID, reason string) (Record, error) {
	now := s.now()
	_, err := s.Store.UpdateStatus(ctx, key, func(entry StatusEntry) (StatusEntry, error) {
		next, err := Apply(entry, action, actorID, reason)
		if err != nil {
			return entry, err
		}
		if next.ID == "" {
			next.ID = uuid.NewString()
		}
		next.UpdatedAt = now
		return next, nil
	})
	if err != nil {
		return Record{}, err
	}
	return s.Get(ctx, key)
}

// Open materialises a pending status entry for every worker with attendance
// in the month that has none yet, and returns how many were created.
// Running it twice creates nothing the second time.
func (s *Service) Open(ctx context.Context, period wage.Month) (int, error) {
	records, err := s.Store.ListAttendance(ctx, wage.ForMonth("", period))
	if err != nil {
		return 0, fmt.Errorf("failed to load attendance for %s: %w", period, err)
	}

	seen := make(map[wage.WorkerID]bool)
	opened := 0
	now := s.now()
	for _, r := range records {
		if seen[r.WorkerID] {
			continue
		}
		seen[r.WorkerID] = true

		created := false
		_, err := s.Store.UpdateStatus(ctx, Key{WorkerID: r.WorkerID, Period: period}, func(entry StatusEntry) (StatusEntry, error) {
			if entry.ID != "" {
				return entry, nil
			}
			created = true
			entry.ID = uuid.NewString()
			entry.Status = StatusPending
			entry.UpdatedAt = now
			return entry, nil
		})
		if err != nil {
			return opened, fmt.Errorf("failed to open payroll for %s: %w", r.WorkerID, err)
		}
		if created {
			opened++
		}
	}
	return opened, nil
}
