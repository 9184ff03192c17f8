/*
scheduler.go - Periodic income limit and data check

PURPOSE:
  Periodically re-runs the consistency check and the summary from the fiscal start
  and logs a warning when the log has issues or income comes near the
  limit. The last result is served at GET /api/monitor so a client can
  show a banner without recomputing.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Runs once immediately on Start
  - Stop waits for the goroutine to exit

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Enabled: Whether the monitor is active (default: true)

USAGE:
  monitor := NewLimitMonitor(handler)
  monitor.Start()
  // ... later
  monitor.Stop()

SEE ALSO:
  - handlers.go: Check and Summary endpoints (on-demand versions)
  - payroll/summary.go: Limit status rules
*/
package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/warp/shift-payroll/payroll"
)

// MonitorStatus is the result of the last check.
type MonitorStatus struct {
	CheckedAt   time.Time `json:"checked_at"`
	Issues      int       `json:"issues"`
	TotalPay    int64     `json:"total_pay"`
	Remaining   int64     `json:"remaining"`
	LimitStatus string    `json:"limit_status"`
	Error       string    `json:"error,omitempty"`
}

// LimitMonitor periodically checks the shift log.
type LimitMonitor struct {
	Handler       *Handler
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
	last   *MonitorStatus
}

// NewLimitMonitor creates a new monitor.
func NewLimitMonitor(handler *Handler) *LimitMonitor {
	return &LimitMonitor{
		Handler:       handler,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
	}
}

// Start begins the monitor.
func (m *LimitMonitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	log := m.Handler.Log
	if !m.Enabled {
		log.Info("limit monitor disabled, not starting")
		return
	}
	if m.ticker != nil {
		return
	}

	m.ticker = time.NewTicker(m.CheckInterval)
	m.stop = make(chan struct{})
	m.wg.Add(1)
	go m.run(m.ticker, m.stop)

	log.Info("limit monitor started", zap.Duration("interval", m.CheckInterval))
}

// Stop stops the monitor.
func (m *LimitMonitor) Stop() {
	m.mu.Lock()
	if m.ticker == nil {
		m.mu.Unlock()
		return
	}
	m.ticker.Stop()
	close(m.stop)
	m.ticker = nil
	m.mu.Unlock()

	m.wg.Wait()
	m.Handler.Log.Info("limit monitor stopped")
}

func (m *LimitMonitor) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer m.wg.Done()

	// Run immediately on start
	m.RunNow(context.Background())

	for {
		select {
		case <-ticker.C:
			m.RunNow(context.Background())
		case <-stop:
			return
		}
	}
}

// RunNow performs one check and records its result.
func (m *LimitMonitor) RunNow(ctx context.Context) MonitorStatus {
	h := m.Handler
	status := MonitorStatus{CheckedAt: time.Now().UTC()}

	issues, err := h.Book.Check(ctx)
	if err == nil {
		status.Issues = len(issues)
		var sum payroll.Summary
		sum, err = h.Book.Summary(ctx, payroll.SummaryOptions{
			Period:      payroll.Period{Start: h.Settings.FiscalStart},
			IncomeLimit: h.Settings.IncomeLimit,
		})
		status.TotalPay = sum.TotalPay
		status.Remaining = sum.Remaining
		status.LimitStatus = string(sum.LimitStatus)
	}

	if err != nil {
		status.Error = err.Error()
		h.Log.Error("limit monitor check failed", zap.Error(err))
	} else if status.LimitStatus != string(payroll.LimitOK) {
		h.Log.Warn("income limit",
			zap.String("status", status.LimitStatus),
			zap.Int64("remaining", status.Remaining),
		)
	}

	m.mu.Lock()
	m.last = &status
	m.mu.Unlock()
	return status
}

// Last returns the most recent result, or nil before the first check.
func (m *LimitMonitor) Last() *MonitorStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.last == nil {
		return nil
	}
	s := *m.last
	return &s
}

// Status serves the last result, checking first if there is none yet.
func (m *LimitMonitor) Status(w http.ResponseWriter, r *http.Request) {
	last := m.Last()
	if last == nil {
		s := m.RunNow(r.Context())
		last = &s
	}
	writeJSON(w, http.StatusOK, last)
}
