package metrics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_Status(t *testing.T) {
	tests := []struct {
		name       string
		components map[string]bool
		want       string
	}{
		{name: "nothing registered", components: nil, want: StatusHealthy},
		{name: "all healthy", components: map[string]bool{"storage": true, "seed": true, "quota": true}, want: StatusHealthy},
		{name: "non-critical failing", components: map[string]bool{"storage": true, "quota": false}, want: StatusDegraded},
		{name: "critical failing", components: map[string]bool{"storage": false, "quota": false}, want: StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealth("storage", "seed")
			for name, ok := range tt.components {
				h.Set(name, ok, "probe")
			}
			s := h.Status()
			assert.Equal(t, tt.want, s.Status)
			assert.Len(t, s.Components, len(tt.components))
		})
	}
}

func TestHealth_Readiness(t *testing.T) {
	h := NewHealth("storage", "seed")

	s := h.Readiness()
	assert.Equal(t, StatusNotReady, s.Status)
	assert.Equal(t, "not registered", s.Components["storage"])

	h.Set("storage", true, "")
	h.Set("seed", false, "not initialized")
	s = h.Readiness()
	assert.Equal(t, StatusNotReady, s.Status)
	assert.Equal(t, "waiting for seed", s.Message)
	assert.Equal(t, "not ready: not initialized", s.Components["seed"])

	h.Set("seed", true, "")
	assert.Equal(t, StatusReady, h.Readiness().Status)
}

func TestHealth_Handlers(t *testing.T) {
	h := NewHealth("storage")
	h.SetVersion("v1.2.3")

	tests := []struct {
		name     string
		setup    func()
		handler  http.HandlerFunc
		wantCode int
		wantBody string
	}{
		{name: "not ready", setup: func() {}, handler: h.ReadyHandler(), wantCode: http.StatusServiceUnavailable, wantBody: StatusNotReady},
		{name: "healthy", setup: func() { h.Set("storage", true, "") }, handler: h.HealthHandler(), wantCode: http.StatusOK, wantBody: StatusHealthy},
		{name: "ready", setup: func() {}, handler: h.ReadyHandler(), wantCode: http.StatusOK, wantBody: StatusReady},
		{name: "degraded still 200", setup: func() { h.Set("quota", false, "full") }, handler: h.HealthHandler(), wantCode: http.StatusOK, wantBody: StatusDegraded},
		{name: "unhealthy", setup: func() { h.Set("storage", false, "gone") }, handler: h.HealthHandler(), wantCode: http.StatusServiceUnavailable, wantBody: StatusUnhealthy},
		{name: "alive regardless", setup: func() {}, handler: h.LivenessHandler(), wantCode: http.StatusOK, wantBody: "alive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			rec := httptest.NewRecorder()
			tt.handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body["status"])
		})
	}
}

func TestDefaultHealth(t *testing.T) {
	RegisterComponent("storage", true, "")
	UpdateComponent("seed", true, "")

	c, ok := defaultHealth.Component("seed")
	require.True(t, ok)
	assert.True(t, c.Healthy)
	assert.Equal(t, StatusReady, GetReadiness().Status)
	assert.Equal(t, StatusHealthy, GetHealth().Status)
}
