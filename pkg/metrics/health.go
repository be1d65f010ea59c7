package metrics

import (
	"encoding/json"
	"net/http"
	"slices"
	"sync"
	"time"
)

// Overall health states
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
	StatusReady     = "ready"
	StatusNotReady  = "not_ready"
)

// HealthStatus is the body served by the health endpoints
type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components map[string]string `json:"components,omitempty"`
	Message    string            `json:"message,omitempty"`
	Version    string            `json:"version,omitempty"`
	Uptime     string            `json:"uptime,omitempty"`
}

// CriticalComponents must be registered and healthy for readiness. A
// failing component outside this list only degrades overall health.
var CriticalComponents = []string{"storage", "seed"}

// ComponentHealth is the last reported state of one component
type ComponentHealth struct {
	Name    string
	Healthy bool
	Message string
	Updated time.Time
}

// Health tracks component states for the health endpoints
type Health struct {
	mu         sync.RWMutex
	components map[string]ComponentHealth
	critical   []string
	started    time.Time
	version    string
	now        func() time.Time
}

// NewHealth creates a tracker with the given critical components
func NewHealth(critical ...string) *Health {
	return &Health{
		components: make(map[string]ComponentHealth),
		critical:   critical,
		started:    time.Now(),
		now:        time.Now,
	}
}

var defaultHealth = NewHealth(CriticalComponents...)

// Set records the state of a component
func (h *Health) Set(name string, healthy bool, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.components[name] = ComponentHealth{Name: name, Healthy: healthy, Message: message, Updated: h.now()}
}

// Component returns the last state of name
func (h *Health) Component(name string) (ComponentHealth, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.components[name]
	return c, ok
}

// SetVersion sets the version string reported by the endpoints
func (h *Health) SetVersion(version string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.version = version
}

// Status is unhealthy when a critical component fails and degraded when
// only other components do.
func (h *Health) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := StatusHealthy
	components := make(map[string]string, len(h.components))
	for name, c := range h.components {
		if c.Healthy {
			components[name] = StatusHealthy
			continue
		}
		components[name] = StatusUnhealthy + ": " + c.Message
		if slices.Contains(h.critical, name) {
			status = StatusUnhealthy
		} else if status == StatusHealthy {
			status = StatusDegraded
		}
	}
	return h.body(status, "", components)
}

// Readiness requires every critical component to be registered and healthy
func (h *Health) Readiness() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := StatusReady
	message := ""
	components := make(map[string]string, len(h.critical))
	for _, name := range h.critical {
		c, ok := h.components[name]
		switch {
		case !ok:
			status = StatusNotReady
			message = "waiting for " + name + " initialization"
			components[name] = "not registered"
		case !c.Healthy:
			status = StatusNotReady
			message = "waiting for " + name
			components[name] = "not ready: " + c.Message
		default:
			components[name] = StatusReady
		}
	}
	return h.body(status, message, components)
}

func (h *Health) body(status, message string, components map[string]string) HealthStatus {
	return HealthStatus{
		Status:     status,
		Timestamp:  h.now(),
		Components: components,
		Message:    message,
		Version:    h.version,
		Uptime:     h.now().Sub(h.started).Round(time.Second).String(),
	}
}

// HealthHandler serves Status, 503 when unhealthy
func (h *Health) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := h.Status()
		code := http.StatusOK
		if s.Status == StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, s)
	}
}

// ReadyHandler serves Readiness, 503 until ready
func (h *Health) ReadyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := h.Readiness()
		code := http.StatusOK
		if s.Status != StatusReady {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, s)
	}
}

// LivenessHandler always answers 200 while the process runs
func (h *Health) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "alive",
			"uptime": h.now().Sub(h.started).Round(time.Second).String(),
		})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Package level helpers operate on the process-wide tracker.

// RegisterComponent records a component on the default tracker
func RegisterComponent(name string, healthy bool, message string) {
	defaultHealth.Set(name, healthy, message)
}

// UpdateComponent is RegisterComponent under the name probes report with
func UpdateComponent(name string, healthy bool, message string) {
	defaultHealth.Set(name, healthy, message)
}

// SetVersion sets the version on the default tracker
func SetVersion(version string) { defaultHealth.SetVersion(version) }

// GetHealth returns the default tracker's Status
func GetHealth() HealthStatus { return defaultHealth.Status() }

// GetReadiness returns the default tracker's Readiness
func GetReadiness() HealthStatus { return defaultHealth.Readiness() }

// HealthHandler serves the default tracker's /health
func HealthHandler() http.HandlerFunc { return defaultHealth.HealthHandler() }

// ReadyHandler serves the default tracker's /ready
func ReadyHandler() http.HandlerFunc { return defaultHealth.ReadyHandler() }

// LivenessHandler serves the default tracker's /live
func LivenessHandler() http.HandlerFunc { return defaultHealth.LivenessHandler() }
