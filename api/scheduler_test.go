package api

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subkh4n/SIPILPRO-sub000/payroll"
	"github.com/subkh4n/SIPILPRO-sub000/store/memory"
	"github.com/subkh4n/SIPILPRO-sub000/wage"
)

func TestPayrollScheduler_OpensPreviousMonth(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	for _, r := range []wage.AttendanceRecord{
		{ID: "r1", WorkerID: "w-sari", Date: wage.NewDate(2025, time.March, 4), TotalMinutes: 480, Wage: 160000},
		{ID: "r2", WorkerID: "w-sari", Date: wage.NewDate(2025, time.March, 5), TotalMinutes: 480, Wage: 160000},
		{ID: "r3", WorkerID: "w-budi", Date: wage.NewDate(2025, time.April, 1), TotalMinutes: 480, Wage: 200000},
	} {
		require.NoError(t, store.SaveAttendance(ctx, r))
	}

	now := time.Date(2025, time.April, 2, 1, 0, 0, 0, time.UTC)
	sched := NewPayrollScheduler(payroll.NewService(store), slog.New(slog.NewTextHandler(io.Discard, nil)))
	sched.Now = func() time.Time { return now }

	assert.True(t, sched.NextRunTime().IsZero())

	// GIVEN: March attendance for Sari only; April's day is not touched
	opened, err := sched.RunNow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, opened)

	entry, err := store.GetStatus(ctx, payroll.Key{WorkerID: "w-sari", Period: wage.Month{Year: 2025, Month: time.March}})
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, payroll.StatusPending, entry.Status)

	april, err := store.ListStatuses(ctx, wage.Month{Year: 2025, Month: time.April})
	require.NoError(t, err)
	assert.Empty(t, april)

	// running again opens nothing new
	opened, err = sched.RunNow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, opened)

	assert.Equal(t, now.Add(24*time.Hour), sched.NextRunTime())
}

func TestPayrollScheduler_StartStop(t *testing.T) {
	store := memory.New()
	sched := NewPayrollScheduler(payroll.NewService(store), slog.New(slog.NewTextHandler(io.Discard, nil)))
	sched.Interval = time.Hour

	sched.Start()
	// the first check runs right away
	assert.Eventually(t, func() bool { return !sched.NextRunTime().IsZero() }, time.Second, 10*time.Millisecond)
	sched.Stop()
	sched.Stop()

	disabled := NewPayrollScheduler(payroll.NewService(store), slog.New(slog.NewTextHandler(io.Discard, nil)))
	disabled.Enabled = false
	disabled.Start()
	disabled.Stop()
	assert.True(t, disabled.NextRunTime().IsZero())
}
