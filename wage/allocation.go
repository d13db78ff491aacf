package wage

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PROJECT ALLOCATOR - Split a day's wage across the sessions worked
// =============================================================================

// Allocate sets each session's AllocatedWage to
// round(session minutes / total minutes * totalWage). Shares are rounded
// independently, so their sum may differ from totalWage by up to
// len(sessions) units; use Reconcile when the split must tie out.
//
// A day with zero total minutes allocates zero everywhere. The input slice
// is not modified.
func Allocate(sessions []WorkSession, totalWage Money) []WorkSession {
	out, total := withMinutes(sessions)
	if total == 0 {
		return out
	}
	wage := decimal.NewFromInt(int64(totalWage))
	denom := decimal.NewFromInt(int64(total))
	for i := range out {
		share := decimal.NewFromInt(int64(out[i].Minutes)).Mul(wage).Div(denom)
		out[i].AllocatedWage = roundMoney(share)
	}
	return out
}

// Reconcile allocates with a largest-remainder correction: every session
// gets the floor of its exact share, and the units left over go to the
// sessions with the largest remainders, earlier sessions winning ties.
// The shares sum to totalWage exactly.
func Reconcile(sessions []WorkSession, totalWage Money) []WorkSession {
	out, total := withMinutes(sessions)
	if total == 0 {
		return out
	}
	if totalWage < 0 {
		return Allocate(sessions, totalWage)
	}

	type remainder struct {
		index int
		rem   int64
	}
	rems := make([]remainder, len(out))
	var assigned Money
	for i := range out {
		num := int64(out[i].Minutes) * int64(totalWage)
		out[i].AllocatedWage = Money(num / int64(total))
		assigned += out[i].AllocatedWage
		rems[i] = remainder{index: i, rem: num % int64(total)}
	}

	sort.SliceStable(rems, func(a, b int) bool { return rems[a].rem > rems[b].rem })
	for k := 0; assigned < totalWage && k < len(rems); k++ {
		out[rems[k].index].AllocatedWage++
		assigned++
	}
	return out
}

// withMinutes copies sessions, computing each session's Minutes.
func withMinutes(sessions []WorkSession) ([]WorkSession, int) {
	out := make([]WorkSession, len(sessions))
	total := 0
	for i, s := range sessions {
		s.Minutes = SessionMinutes(s.Start, s.End)
		s.AllocatedWage = 0
		out[i] = s
		total += s.Minutes
	}
	return out, total
}
