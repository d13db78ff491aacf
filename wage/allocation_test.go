package wage_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/subkh4n/SIPILPRO-sub000/wage"
)

func sessions(spans ...string) []wage.WorkSession {
	out := make([]wage.WorkSession, 0, len(spans)/2)
	for i := 0; i+1 < len(spans); i += 2 {
		out = append(out, wage.WorkSession{
			ProjectID: wage.ProjectID(fmt.Sprintf("prj-%d", i/2+1)),
			Start:     spans[i],
			End:       spans[i+1],
		})
	}
	return out
}

func allocatedSum(ss []wage.WorkSession) wage.Money {
	var total wage.Money
	for _, s := range ss {
		total += s.AllocatedWage
	}
	return total
}

func TestAllocate_EqualHalves(t *testing.T) {
	in := sessions("08:00", "12:00", "13:00", "17:00")
	out := wage.Allocate(in, 200000)

	assert.Equal(t, wage.Money(100000), out[0].AllocatedWage)
	assert.Equal(t, wage.Money(100000), out[1].AllocatedWage)
	assert.Equal(t, 240, out[0].Minutes)

	// input untouched
	assert.Zero(t, in[0].AllocatedWage)
	assert.Zero(t, in[0].Minutes)
}

func TestAllocate_ZeroHoursGuard(t *testing.T) {
	in := sessions("12:00", "08:00", "bad", "10:00")
	for _, out := range [][]wage.WorkSession{wage.Allocate(in, 50000), wage.Reconcile(in, 50000)} {
		for _, s := range out {
			assert.Zero(t, s.AllocatedWage)
			assert.Zero(t, s.Minutes)
		}
	}
}

func TestAllocate_ResidueWithinSessionCount(t *testing.T) {
	// Three equal sessions of a wage not divisible by three.
	in := sessions("07:00", "09:00", "09:00", "11:00", "11:00", "13:00")
	for _, total := range []wage.Money{100000, 100001, 100002, 7, 1} {
		out := wage.Allocate(in, total)
		diff := allocatedSum(out) - total
		if diff < 0 {
			diff = -diff
		}
		assert.LessOrEqual(t, int64(diff), int64(len(in)), "total=%d", total)
	}
}

func TestAllocate_IndependentRoundingCanOvershoot(t *testing.T) {
	// Two equal halves of 3 -> 1.5 each -> 2 + 2
	out := wage.Allocate(sessions("08:00", "09:00", "09:00", "10:00"), 3)
	assert.Equal(t, wage.Money(4), allocatedSum(out))

	rec := wage.Reconcile(sessions("08:00", "09:00", "09:00", "10:00"), 3)
	assert.Equal(t, wage.Money(3), allocatedSum(rec))
	assert.Equal(t, wage.Money(2), rec[0].AllocatedWage, "earlier session wins the tie")
	assert.Equal(t, wage.Money(1), rec[1].AllocatedWage)
}

func TestReconcile_TiesOutExactly(t *testing.T) {
	cases := []struct {
		spans []string
		total wage.Money
	}{
		{[]string{"07:00", "09:20", "09:20", "11:40", "11:40", "14:00"}, 235000},
		{[]string{"07:13", "08:01", "08:01", "15:59"}, 287777},
		{[]string{"06:00", "06:01", "06:01", "17:00", "17:00", "17:07"}, 99999},
		{[]string{"08:00", "17:00"}, 360000},
	}
	for _, tc := range cases {
		out := wage.Reconcile(sessions(tc.spans...), tc.total)
		assert.Equal(t, tc.total, allocatedSum(out))

		// each share stays within one unit of the independently rounded share
		plain := wage.Allocate(sessions(tc.spans...), tc.total)
		for i := range out {
			d := out[i].AllocatedWage - plain[i].AllocatedWage
			assert.True(t, d >= -1 && d <= 1, "session %d off by %d", i, d)
		}
	}
}

func TestReconcile_Deterministic(t *testing.T) {
	in := sessions("07:00", "09:20", "09:20", "11:40", "11:40", "14:00")
	first := wage.Reconcile(in, 100000)
	second := wage.Reconcile(in, 100000)
	assert.Equal(t, first, second)
}
