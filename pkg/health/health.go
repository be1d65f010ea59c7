package health

import (
	"context"
	"time"
)

// CheckType names what a checker probes
type CheckType string

const (
	CheckTypeStorage CheckType = "storage"
	CheckTypeQuota   CheckType = "quota"
	CheckTypeSeed    CheckType = "seed"
)

// Result is the outcome of one probe
type Result struct {
	Healthy   bool
	Message   string
	CheckedAt time.Time
	Duration  time.Duration
}

// Checker probes one dependency of the data layer
type Checker interface {
	Check(ctx context.Context) Result
	Type() CheckType
}

// Config tunes the monitor loop
type Config struct {
	Interval time.Duration
	Timeout  time.Duration // per check
	Retries  int           // failures in a row before a component turns unhealthy
}

// DefaultConfig returns the probe settings used by the monitor command
func DefaultConfig() Config {
	return Config{Interval: 30 * time.Second, Timeout: 5 * time.Second, Retries: 3}
}

// Status is the folded health of a component
type Status struct {
	Healthy  bool
	Failures int // current run of failed checks
	Last     Result
}

// NewStatus creates a Status that starts healthy
func NewStatus() *Status {
	return &Status{Healthy: true}
}

// Update folds r into s. One success restores health; Retries failures
// in a row (at least one) remove it.
func (s *Status) Update(r Result, cfg Config) {
	s.Last = r
	if r.Healthy {
		s.Failures = 0
		s.Healthy = true
		return
	}
	s.Failures++
	if s.Failures >= max(cfg.Retries, 1) {
		s.Healthy = false
	}
}

func result(start time.Time, healthy bool, msg string) Result {
	return Result{Healthy: healthy, Message: msg, CheckedAt: start, Duration: time.Since(start)}
}
