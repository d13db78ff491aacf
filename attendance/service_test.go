package attendance_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subkh4n/SIPILPRO-sub000/attendance"
	"github.com/subkh4n/SIPILPRO-sub000/store/memory"
	"github.com/subkh4n/SIPILPRO-sub000/wage"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

var (
	march   = wage.Month{Year: 2025, Month: time.March}
	tuesday = wage.NewDate(2025, time.March, 4)
)

func siteData() wage.ReferenceData {
	return wage.ReferenceData{
		Workers: []wage.Worker{
			{ID: "budi", Name: "Budi", FlatRates: wage.NewRates(25000, 35000, 40000)},
			{ID: "sari", Name: "Sari", FlatRates: wage.NewRates(20000, 30000, 40000)},
		},
	}
}

func newService(t *testing.T) (*attendance.Service, *memory.Memory) {
	t.Helper()
	store := memory.New()
	require.NoError(t, store.SaveReference(context.Background(), siteData()))
	return attendance.NewService(store, wage.Engine{Reconcile: true}, wage.NewDayCache()), store
}

func splitDay(worker wage.WorkerID, date wage.Date) wage.DayInput {
	return wage.DayInput{
		WorkerID: worker,
		Date:     date,
		Sessions: []wage.SessionInput{
			{ProjectID: "tower-a", Start: "07:00", End: "12:00"},
			{ProjectID: "gudang", Start: "13:00", End: "17:00"},
		},
	}
}

// =============================================================================
// RECORD / GET
// =============================================================================

func TestService_RecordComputesAndStores(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	// WHEN: Budi works 5h + 4h on a Tuesday
	rec, err := svc.Record(ctx, splitDay("budi", tuesday))
	require.NoError(t, err)

	// THEN: 8 normal + 1 overtime hour, shares tie out
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, 540, rec.TotalMinutes)
	assert.Equal(t, wage.Money(235000), rec.Wage)
	assert.Equal(t, rec.Wage, rec.AllocatedTotal())

	got, err := svc.Get(ctx, "budi", tuesday)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Wage, got.Wage)
}

func TestService_RecordReplacesSameDay(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	first, err := svc.Record(ctx, splitDay("budi", tuesday))
	require.NoError(t, err)

	// WHEN: the day is corrected to a single 4h session
	second, err := svc.Record(ctx, wage.DayInput{
		WorkerID: "budi",
		Date:     tuesday,
		Sessions: []wage.SessionInput{{ProjectID: "tower-a", Start: "08:00", End: "12:00"}},
	})
	require.NoError(t, err)

	// THEN: same record identity, new values, still one record
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, wage.Money(100000), second.Wage)

	all, err := svc.List(ctx, wage.ForMonth("budi", march))
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestService_GetMissing(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Get(context.Background(), "budi", tuesday)
	assert.ErrorIs(t, err, attendance.ErrNotFound)
}

func TestService_PreviewDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	rec, err := svc.Preview(ctx, splitDay("sari", tuesday))
	require.NoError(t, err)
	assert.Equal(t, wage.Money(8*20000+30000), rec.Wage)

	_, err = svc.Get(ctx, "sari", tuesday)
	assert.ErrorIs(t, err, attendance.ErrNotFound)
}

// =============================================================================
// RECOMPUTE
// =============================================================================

func TestService_RecomputeAfterRateChange(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	_, err := svc.Record(ctx, splitDay("budi", tuesday))
	require.NoError(t, err)
	_, err = svc.Record(ctx, splitDay("sari", tuesday))
	require.NoError(t, err)

	// GIVEN: Budi gets a raise
	data := siteData()
	data.Workers[0].FlatRates = wage.NewRates(30000, 40000, 50000)
	require.NoError(t, store.SaveReference(ctx, data))
	svc.InvalidateWorker("budi")

	// WHEN
	res, err := svc.Recompute(ctx, "budi", march)
	require.NoError(t, err)

	// THEN: only Budi's day changed
	assert.Equal(t, attendance.RecomputeResult{Records: 1, Changed: 1}, res)
	got, err := svc.Get(ctx, "budi", tuesday)
	require.NoError(t, err)
	assert.Equal(t, wage.Money(8*30000+40000), got.Wage)

	sari, err := svc.Get(ctx, "sari", tuesday)
	require.NoError(t, err)
	assert.Equal(t, wage.Money(8*20000+30000), sari.Wage)

	// a second run is a no-op
	res, err = svc.Recompute(ctx, "", march)
	require.NoError(t, err)
	assert.Equal(t, attendance.RecomputeResult{Records: 2, Changed: 0}, res)
}

func TestService_RecomputeAfterHolidayAdded(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	_, err := svc.Record(ctx, splitDay("budi", tuesday))
	require.NoError(t, err)

	require.NoError(t, store.AddHoliday(ctx, wage.Holiday{ID: "h1", Date: tuesday, Name: "Nyepi"}))
	svc.InvalidateAll()

	res, err := svc.Recompute(ctx, "budi", march)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Changed)

	got, err := svc.Get(ctx, "budi", tuesday)
	require.NoError(t, err)
	assert.True(t, got.IsHoliday)
	assert.Equal(t, "Nyepi", got.HolidayReason)
	assert.Equal(t, wage.Money(9*40000), got.Wage)
}

// =============================================================================
// PROJECT COSTS
// =============================================================================

func TestProjectCosts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.Record(ctx, splitDay("budi", tuesday))
	require.NoError(t, err)
	_, err = svc.Record(ctx, wage.DayInput{
		WorkerID: "sari",
		Date:     tuesday,
		Sessions: []wage.SessionInput{{ProjectID: "tower-a", Start: "08:00", End: "10:00"}},
	})
	require.NoError(t, err)

	records, err := svc.List(ctx, wage.ForMonth("", march))
	require.NoError(t, err)

	costs := attendance.ProjectCosts(records)
	require.Len(t, costs, 2)

	assert.Equal(t, wage.ProjectID("gudang"), costs[0].ProjectID)
	assert.Equal(t, 240, costs[0].Minutes)
	assert.Equal(t, 1, costs[0].Workers)

	assert.Equal(t, wage.ProjectID("tower-a"), costs[1].ProjectID)
	assert.Equal(t, 300+120, costs[1].Minutes)
	assert.Equal(t, 2, costs[1].Sessions)
	assert.Equal(t, 2, costs[1].Workers)

	var total wage.Money
	for _, c := range costs {
		total += c.Wage
	}
	assert.Equal(t, wage.Money(235000+40000), total)
}
