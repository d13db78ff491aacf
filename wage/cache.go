package wage

import "sync"

// =============================================================================
// DAY CACHE - Read-through cache of computed days
// =============================================================================

type dayKey struct {
	WorkerID WorkerID
	Date     Date
}

type dayEntry struct {
	version string
	engine  Engine
	input   DayInput
	record  AttendanceRecord
}

// DayCache memoizes ComputeDay per (worker, date). An entry is served only
// when both the reference version and the raw sessions match, so a changed
// rate context or holiday table (new version) misses without explicit
// invalidation; Invalidate and InvalidateAll drop entries eagerly.
type DayCache struct {
	mu      sync.RWMutex
	entries map[dayKey]dayEntry
	hits    int
	misses  int
}

func NewDayCache() *DayCache {
	return &DayCache{entries: make(map[dayKey]dayEntry)}
}

// Compute returns the cached record for input or computes and stores it.
func (c *DayCache) Compute(e Engine, input DayInput, ref *Reference) AttendanceRecord {
	if c == nil {
		return e.ComputeDay(input, ref)
	}
	k := dayKey{WorkerID: input.WorkerID, Date: input.Date}
	version := ""
	if ref != nil {
		version = ref.Version
	}

	c.mu.RLock()
	entry, ok := c.entries[k]
	c.mu.RUnlock()
	if ok && entry.version == version && entry.engine == e && sameSessions(entry.input.Sessions, input.Sessions) {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return cloneRecord(entry.record)
	}

	rec := e.ComputeDay(input, ref)

	c.mu.Lock()
	c.misses++
	c.entries[k] = dayEntry{version: version, engine: e, input: cloneInput(input), record: cloneRecord(rec)}
	c.mu.Unlock()
	return rec
}

// Invalidate drops every cached day of a worker.
func (c *DayCache) Invalidate(workerID WorkerID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.WorkerID == workerID {
			delete(c.entries, k)
		}
	}
}

// InvalidateAll empties the cache.
func (c *DayCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[dayKey]dayEntry)
}

// Stats returns hit and miss counts.
func (c *DayCache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

func sameSessions(a, b []SessionInput) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cloneInput(in DayInput) DayInput {
	in.Sessions = append([]SessionInput(nil), in.Sessions...)
	return in
}

func cloneRecord(r AttendanceRecord) AttendanceRecord {
	r.Sessions = append([]WorkSession(nil), r.Sessions...)
	return r
}
