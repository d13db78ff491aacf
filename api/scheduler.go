/*
scheduler.go - Automated payroll opening

PURPOSE:
  Periodically opens the payroll of the month that just ended: every
  worker with attendance in that month gets a pending status entry so it
  shows up in the approval queue without anyone calling /open by hand.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Always targets the previous calendar month
  - Opening is idempotent, so repeated runs create nothing new

CONFIGURATION:
  - Interval: How often to check (default: 24 hours)
  - Enabled: Whether scheduler is active (default: false)

USAGE:
  scheduler := NewPayrollScheduler(handler.Payroll, logger)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: OpenPayroll endpoint (manual opening)
  - payroll/service.go: Open
*/
package api

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/subkh4n/SIPILPRO-sub000/payroll"
	"github.com/subkh4n/SIPILPRO-sub000/wage"
)

// PayrollScheduler opens last month's payroll on a timer.
type PayrollScheduler struct {
	Payroll  *payroll.Service
	Interval time.Duration
	Enabled  bool
	Log      *slog.Logger
	Now      func() time.Time

	ticker  *time.Ticker
	stop    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	lastRun time.Time
}

// NewPayrollScheduler creates a new scheduler.
func NewPayrollScheduler(svc *payroll.Service, log *slog.Logger) *PayrollScheduler {
	if log == nil {
		log = slog.Default()
	}
	return &PayrollScheduler{
		Payroll:  svc,
		Interval: 24 * time.Hour,
		Enabled:  true,
		Log:      log.With(slog.String("component", "scheduler")),
		Now:      time.Now,
	}
}

// Start begins the scheduler.
func (ps *PayrollScheduler) Start() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if !ps.Enabled {
		ps.Log.Info("scheduler disabled, not starting")
		return
	}
	if ps.ticker != nil {
		return
	}

	ps.ticker = time.NewTicker(ps.Interval)
	ps.stop = make(chan struct{})
	ps.wg.Add(1)

	go ps.run(ps.ticker, ps.stop)

	ps.Log.Info("scheduler started", slog.Duration("interval", ps.Interval))
}

// Stop stops the scheduler and waits for a running check to finish.
func (ps *PayrollScheduler) Stop() {
	ps.mu.Lock()
	ticker, stop := ps.ticker, ps.stop
	ps.ticker, ps.stop = nil, nil
	ps.mu.Unlock()

	if ticker == nil {
		return
	}
	ticker.Stop()
	close(stop)
	// RunNow takes mu, so wait unlocked
	ps.wg.Wait()
	ps.Log.Info("scheduler stopped")
}

func (ps *PayrollScheduler) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer ps.wg.Done()

	// Run immediately on start
	ps.RunNow(context.Background())

	for {
		select {
		case <-ticker.C:
			ps.RunNow(context.Background())
		case <-stop:
			return
		}
	}
}

// RunNow opens the previous month's payroll and returns how many entries
// were created.
func (ps *PayrollScheduler) RunNow(ctx context.Context) (int, error) {
	now := ps.Now()
	period := wage.DateOf(now).MonthOf().Prev()

	opened, err := ps.Payroll.Open(ctx, period)
	if err != nil {
		ps.Log.Error("failed to open payroll",
			slog.String("period", period.String()),
			slog.String("error", err.Error()))
		return opened, err
	}

	ps.mu.Lock()
	ps.lastRun = now
	ps.mu.Unlock()

	if opened > 0 {
		ps.Log.Info("payroll opened",
			slog.String("period", period.String()),
			slog.Int("opened", opened))
	}
	return opened, nil
}

// NextRunTime returns when the next check is due, or zero if the scheduler
// has not run yet.
func (ps *PayrollScheduler) NextRunTime() time.Time {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.lastRun.IsZero() {
		return time.Time{}
	}
	return ps.lastRun.Add(ps.Interval)
}
