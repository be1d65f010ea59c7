package health

import (
	"context"
	"sync"
	"time"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/log"
)

// ReportFunc receives the folded status of a component after each check
type ReportFunc func(component string, healthy bool, message string)

// Monitor runs named checkers on an interval
type Monitor struct {
	config   Config
	report   ReportFunc
	checkers map[string]Checker

	mu       sync.RWMutex
	statuses map[string]*Status

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewMonitor creates a monitor. report may be nil.
func NewMonitor(config Config, report ReportFunc) *Monitor {
	if report == nil {
		report = func(string, bool, string) {}
	}
	return &Monitor{
		config:   config,
		report:   report,
		checkers: make(map[string]Checker),
		statuses: make(map[string]*Status),
		stopCh:   make(chan struct{}),
	}
}

// Add registers a checker under a component name. Call before Start.
func (m *Monitor) Add(component string, c Checker) {
	m.checkers[component] = c
	m.statuses[component] = NewStatus()
}

// RunOnce checks every component once
func (m *Monitor) RunOnce(ctx context.Context) {
	logger := log.WithComponent("health")
	for name, checker := range m.checkers {
		checkCtx, cancel := context.WithTimeout(ctx, m.config.Timeout)
		res := checker.Check(checkCtx)
		cancel()

		m.mu.Lock()
		st := m.statuses[name]
		wasHealthy := st.Healthy
		st.Update(res, m.config)
		healthy := st.Healthy
		m.mu.Unlock()

		if wasHealthy != healthy {
			logger.Warn().
				Str("check", name).
				Bool("healthy", healthy).
				Str("message", res.Message).
				Msg("Health changed")
		}
		m.report(name, healthy, res.Message)
	}
}

// Start checks immediately and then on every interval until Stop
func (m *Monitor) Start(ctx context.Context) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.config.Interval)
		defer ticker.Stop()

		m.RunOnce(ctx)
		for {
			select {
			case <-ticker.C:
				m.RunOnce(ctx)
			case <-m.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ends the loop and waits for an in-flight round
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
	m.wg.Wait()
}

// Status returns a copy of the component's status
func (m *Monitor) Status(component string) (Status, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.statuses[component]
	if !ok {
		return Status{}, false
	}
	return *st, true
}
