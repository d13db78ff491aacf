package payroll_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/subkh4n/SIPILPRO-sub000/payroll"
	"github.com/subkh4n/SIPILPRO-sub000/store/memory"
	"github.com/subkh4n/SIPILPRO-sub000/wage"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

var march = wage.Month{Year: 2025, Month: time.March}

func day(d int) wage.Date { return wage.NewDate(2025, time.March, d) }

func hoursOf(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func record(worker wage.WorkerID, date wage.Date, minutes int, holiday bool, w wage.Money) wage.AttendanceRecord {
	return wage.AttendanceRecord{WorkerID: worker, Date: date, TotalMinutes: minutes, IsHoliday: holiday, Wage: w}
}

func newStore(t *testing.T) *memory.Memory {
	t.Helper()
	m := memory.New()
	require.NoError(t, m.SaveReference(context.Background(), wage.ReferenceData{
		Workers: []wage.Worker{
			{ID: "budi", Name: "Budi", FlatRates: wage.NewRates(25000, 35000, 40000)},
			{ID: "sari", Name: "Sari", FlatRates: wage.NewRates(20000, 30000, 40000)},
		},
	}))
	return m
}

// =============================================================================
// AGGREGATE
// =============================================================================

func TestAggregate_Buckets(t *testing.T) {
	records := []wage.AttendanceRecord{
		record("budi", day(3), 9*60, false, 235000),  // 8 + 1 overtime
		record("budi", day(4), 6*60, false, 150000),  // 6 normal
		record("budi", day(9), 5*60, true, 200000),   // Sunday, 5 holiday
		record("budi", day(10), 10*60, false, 270000), // 8 + 2 overtime
		record("sari", day(3), 8*60, false, 160000),  // other worker
		{WorkerID: "budi", Date: wage.NewDate(2025, time.April, 1), TotalMinutes: 480, Wage: 200000},
	}

	got := payroll.Aggregate("budi", march, records)

	assert.Equal(t, 4, got.Days)
	assert.Equal(t, 1, got.HolidayDays)
	assert.True(t, got.NormalHours.Equal(hoursOf("22")), got.NormalHours.String())
	assert.True(t, got.OvertimeHours.Equal(hoursOf("3")), got.OvertimeHours.String())
	assert.True(t, got.HolidayHours.Equal(hoursOf("5")), got.HolidayHours.String())
	assert.Equal(t, wage.Money(235000+150000+200000+270000), got.TotalWage)
	assert.Equal(t, payroll.StatusPending, got.Status)
}

func TestAggregate_TotalWageIsSumOfDailyWages(t *testing.T) {
	// GIVEN: rates changed mid-month, so bucket*rate would not reproduce the total
	records := []wage.AttendanceRecord{
		record("budi", day(3), 8*60, false, 8*25000),
		record("budi", day(4), 8*60, false, 8*30000),
	}
	got := payroll.Aggregate("budi", march, records)
	assert.Equal(t, wage.Money(440000), got.TotalWage)
}

func TestAggregate_NoRecordsIsZero(t *testing.T) {
	got := payroll.Aggregate("budi", march, nil)
	assert.Equal(t, 0, got.Days)
	assert.True(t, got.NormalHours.IsZero())
	assert.True(t, got.OvertimeHours.IsZero())
	assert.True(t, got.HolidayHours.IsZero())
	assert.Zero(t, got.TotalWage)
	assert.Equal(t, payroll.StatusPending, got.Status)
}

func TestAggregate_DuplicateDayCountsOnce(t *testing.T) {
	records := []wage.AttendanceRecord{
		record("budi", day(3), 4*60, false, 100000),
		record("budi", day(3), 8*60, false, 200000),
	}
	got := payroll.Aggregate("budi", march, records)
	assert.Equal(t, 1, got.Days)
	assert.Equal(t, wage.Money(200000), got.TotalWage)
}

func TestAggregate_OvertimeMinutesAddUpExactly(t *testing.T) {
	// GIVEN: three 08:00-16:20 days, 20 minutes of overtime each
	records := []wage.AttendanceRecord{
		record("budi", day(3), 8*60+20, false, 211667),
		record("budi", day(4), 8*60+20, false, 211667),
		record("budi", day(5), 8*60+20, false, 211667),
	}

	// WHEN: Aggregating the month
	got := payroll.Aggregate("budi", march, records)

	// THEN: one whole hour of overtime, no residue
	assert.Equal(t, "1", got.OvertimeHours.String())
	assert.Equal(t, "24", got.NormalHours.String())
	assert.True(t, got.HolidayHours.IsZero())
}

// =============================================================================
// STATUS MACHINE
// =============================================================================

func TestNext_Transitions(t *testing.T) {
	key := payroll.Key{WorkerID: "budi", Period: march}
	tests := []struct {
		from    payroll.Status
		action  payroll.Action
		want    payroll.Status
		wantErr bool
	}{
		{payroll.StatusPending, payroll.ActionApprove, payroll.StatusApproved, false},
		{payroll.StatusPending, payroll.ActionReject, payroll.StatusRejected, false},
		{payroll.StatusApproved, payroll.ActionMarkPaid, payroll.StatusPaid, false},
		{"", payroll.ActionApprove, payroll.StatusApproved, false},
		{payroll.StatusPending, payroll.ActionMarkPaid, "", true},
		{payroll.StatusApproved, payroll.ActionReject, "", true},
		{payroll.StatusRejected, payroll.ActionApprove, "", true},
		{payroll.StatusPaid, payroll.ActionApprove, "", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.action), func(t *testing.T) {
			got, err := payroll.Next(key, tt.from, tt.action)
			if tt.wantErr {
				var te *payroll.TransitionError
				require.ErrorAs(t, err, &te)
				assert.ErrorIs(t, err, payroll.ErrInvalidTransition)
				assert.True(t, payroll.IsConflict(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.True(t, payroll.StatusPaid.IsFinal())
	assert.True(t, payroll.StatusRejected.IsFinal())
	assert.False(t, payroll.StatusPending.IsFinal())
}

func TestApply_RejectNeedsReason(t *testing.T) {
	entry := payroll.StatusEntry{Status: payroll.StatusPending}
	_, err := payroll.Apply(entry, payroll.ActionReject, "mandor-1", "   ")
	assert.ErrorIs(t, err, payroll.ErrReasonRequired)

	next, err := payroll.Apply(entry, payroll.ActionReject, "mandor-1", "jam lembur belum diverifikasi")
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusRejected, next.Status)
	assert.Equal(t, "mandor-1", next.ActorID)
}

func TestParseStatus(t *testing.T) {
	st, err := payroll.ParseStatus("paid")
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusPaid, st)

	_, err = payroll.ParseStatus("archived")
	assert.ErrorIs(t, err, payroll.ErrUnknownStatus)
}

// =============================================================================
// SERVICE
// =============================================================================

func TestService_PeriodAndWorkflow(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.SaveAttendance(ctx, record("budi", day(3), 9*60, false, 235000)))
	require.NoError(t, store.SaveAttendance(ctx, record("budi", day(9), 9*60, true, 360000)))

	fixed := time.Date(2025, time.April, 2, 9, 0, 0, 0, time.UTC)
	svc := payroll.NewService(store)
	svc.Now = func() time.Time { return fixed }

	// WHEN: listing the period
	records, err := svc.Period(ctx, march, payroll.Filter{})
	require.NoError(t, err)

	// THEN: both workers, sari with a zero record
	require.Len(t, records, 2)
	assert.Equal(t, wage.WorkerID("budi"), records[0].WorkerID)
	assert.Equal(t, wage.Money(595000), records[0].TotalWage)
	assert.Equal(t, wage.WorkerID("sari"), records[1].WorkerID)
	assert.Zero(t, records[1].TotalWage)

	key := payroll.Key{WorkerID: "budi", Period: march}

	// paying before approval is a conflict
	_, err = svc.MarkPaid(ctx, key, "finance")
	assert.True(t, payroll.IsConflict(err))

	approved, err := svc.Approve(ctx, key, "pm-1")
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusApproved, approved.Status)
	require.NotNil(t, approved.UpdatedAt)
	assert.Equal(t, fixed, *approved.UpdatedAt)

	paid, err := svc.MarkPaid(ctx, key, "finance")
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusPaid, paid.Status)
	assert.Equal(t, "finance", paid.ActorID)

	// filter by status
	onlyPaid, err := svc.Period(ctx, march, payroll.Filter{Status: payroll.StatusPaid})
	require.NoError(t, err)
	require.Len(t, onlyPaid, 1)
	assert.Equal(t, wage.WorkerID("budi"), onlyPaid[0].WorkerID)

	pending, err := svc.Period(ctx, march, payroll.Filter{Status: payroll.StatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, wage.WorkerID("sari"), pending[0].WorkerID)
}

func TestService_PeriodKeepsWorkersRemovedFromMasterData(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	// GIVEN: attendance for a worker no longer in the reference snapshot
	require.NoError(t, store.SaveAttendance(ctx, record("eko", day(3), 8*60, false, 180000)))
	require.NoError(t, store.SaveAttendance(ctx, record("eko", day(4), 8*60, false, 180000)))
	svc := payroll.NewService(store)

	// WHEN: listing the period
	records, err := svc.Period(ctx, march, payroll.Filter{})
	require.NoError(t, err)

	// THEN: eko is listed with the recorded wages
	require.Len(t, records, 3)
	ids := []wage.WorkerID{records[0].WorkerID, records[1].WorkerID, records[2].WorkerID}
	assert.Equal(t, []wage.WorkerID{"budi", "eko", "sari"}, ids)
	assert.Equal(t, 2, records[1].Days)
	assert.Equal(t, wage.Money(360000), records[1].TotalWage)

	only, err := svc.Period(ctx, march, payroll.Filter{WorkerID: "eko"})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, wage.WorkerID("eko"), only[0].WorkerID)

	others, err := svc.Period(ctx, march, payroll.Filter{WorkerID: "sari"})
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, wage.WorkerID("sari"), others[0].WorkerID)
}

func TestService_RejectRequiresReasonAndIsFinal(t *testing.T) {
	ctx := context.Background()
	svc := payroll.NewService(newStore(t))
	key := payroll.Key{WorkerID: "sari", Period: march}

	_, err := svc.Reject(ctx, key, "pm-1", "")
	assert.ErrorIs(t, err, payroll.ErrReasonRequired)

	rec, err := svc.Reject(ctx, key, "pm-1", "absen tidak lengkap")
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusRejected, rec.Status)
	assert.Equal(t, "absen tidak lengkap", rec.Reason)

	_, err = svc.Approve(ctx, key, "pm-1")
	assert.ErrorIs(t, err, payroll.ErrInvalidTransition)
}

func TestService_OpenIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.SaveAttendance(ctx, record("budi", day(3), 480, false, 200000)))
	require.NoError(t, store.SaveAttendance(ctx, record("budi", day(4), 480, false, 200000)))
	svc := payroll.NewService(store)

	n, err := svc.Open(ctx, march)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = svc.Approve(ctx, payroll.Key{WorkerID: "budi", Period: march}, "pm-1")
	require.NoError(t, err)

	n, err = svc.Open(ctx, march)
	require.NoError(t, err)
	assert.Zero(t, n)

	// opening again did not reset the approval
	rec, err := svc.Get(ctx, payroll.Key{WorkerID: "budi", Period: march})
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusApproved, rec.Status)
}

// =============================================================================
// EXPORTS
// =============================================================================

func TestExportXLSX(t *testing.T) {
	records := []payroll.Record{
		payroll.Aggregate("budi", march, []wage.AttendanceRecord{record("budi", day(3), 540, false, 235000)}),
	}
	data, err := payroll.ExportXLSX(march, records, map[wage.WorkerID]string{"budi": "Budi"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Payroll 2025-03", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Budi", name)

	total, err := f.GetCellValue("Payroll 2025-03", "I3")
	require.NoError(t, err)
	assert.Equal(t, "235000", total)
}

func TestWritePayslip(t *testing.T) {
	days := []wage.AttendanceRecord{record("budi", day(3), 540, false, 235000)}
	var buf bytes.Buffer
	err := payroll.WritePayslip(&buf, payroll.Payslip{
		Record:     payroll.Aggregate("budi", march, days),
		WorkerName: "Budi",
		Days:       days,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
