/*
Package payroll rolls daily attendance into monthly per-worker payroll.

PURPOSE:
  A payroll Record is a derived view: it is recomputed from the worker's
  attendance records for the month every time it is read. The only state
  that lives on its own is the approval status, keyed by (worker, month).

STATUS LIFECYCLE:
  ┌─────────┐  approve   ┌──────────┐  mark paid  ┌──────┐
  │ pending │ ─────────▶ │ approved │ ──────────▶ │ paid │
  └─────────┘            └──────────┘             └──────┘
       │ reject
       ▼
  ┌──────────┐
  │ rejected │
  └──────────┘

AGGREGATION:
  normal   = Σ non-holiday days min(hours, 8)
  overtime = Σ non-holiday days max(hours - 8, 0)
  holiday  = Σ holiday days hours
  wage     = Σ per-day wages (never recomputed from the buckets)

SEE ALSO:
  - aggregate.go: Aggregate
  - status.go: Transition rules
  - service.go: Store-backed service
  - export.go, payslip.go: XLSX and PDF outputs
*/
package payroll

import (
	"time"

	"github.com/subkh4n/SIPILPRO-sub000/wage"
)

// =============================================================================
// STATUS
// =============================================================================

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusPaid     Status = "paid"
)

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusApproved, StatusRejected, StatusPaid:
		return st, nil
	}
	return "", &UnknownStatusError{Value: s}
}

// Action is an approval-workflow command.
type Action string

const (
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionMarkPaid Action = "mark_paid"
)

// =============================================================================
// RECORD
// =============================================================================

// Key identifies a payroll record. It has no identity beyond this pair.
type Key struct {
	WorkerID wage.WorkerID
	Period   wage.Month
}

func (k Key) String() string { return string(k.WorkerID) + "@" + k.Period.String() }

// Record is one worker's payroll for one month.
type Record struct {
	WorkerID wage.WorkerID
	Period   wage.Month

	Days        int
	HolidayDays int

	NormalHours   wage.Hours
	OvertimeHours wage.Hours
	HolidayHours  wage.Hours
	TotalWage     wage.Money

	Status    Status
	Reason    string
	ActorID   string
	UpdatedAt *time.Time
}

func (r Record) Key() Key { return Key{WorkerID: r.WorkerID, Period: r.Period} }

// StatusEntry is the persisted approval state of a payroll key.
type StatusEntry struct {
	ID        string
	Key       Key
	Status    Status
	Reason    string
	ActorID   string
	UpdatedAt time.Time
}
