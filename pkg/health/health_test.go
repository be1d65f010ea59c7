package health

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/storage"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/types"
)

func TestStatus_Update(t *testing.T) {
	cfg := Config{Retries: 2}
	ok := Result{Healthy: true}
	bad := Result{Healthy: false, Message: "down"}

	tests := []struct {
		name    string
		results []Result
		healthy bool
	}{
		{name: "starts healthy", results: nil, healthy: true},
		{name: "one failure tolerated", results: []Result{bad}, healthy: true},
		{name: "retries exhausted", results: []Result{bad, bad}, healthy: false},
		{name: "recovers on success", results: []Result{bad, bad, ok}, healthy: true},
		{name: "failures must be consecutive", results: []Result{bad, ok, bad}, healthy: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewStatus()
			for _, r := range tt.results {
				st.Update(r, cfg)
			}
			assert.Equal(t, tt.healthy, st.Healthy)
		})
	}
}

// brokenKV fails every write
type brokenKV struct{ storage.KV }

func (brokenKV) Set(context.Context, string, []byte) error { return errors.New("disk on fire") }

func TestStorageChecker(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()

	res := NewStorageChecker(kv).Check(ctx)
	assert.True(t, res.Healthy, res.Message)
	_, err := kv.Get(ctx, ProbeKey)
	assert.ErrorIs(t, err, storage.ErrNotFound, "probe key is cleaned up")

	res = NewStorageChecker(brokenKV{kv}).Check(ctx)
	assert.False(t, res.Healthy)
	assert.Contains(t, res.Message, "disk on fire")
	assert.Equal(t, CheckTypeStorage, NewStorageChecker(kv).Type())
}

func TestQuotaChecker(t *testing.T) {
	ctx := context.Background()
	kv := storage.WithQuota(storage.NewMemoryStore(), 100).(*storage.QuotaStore)
	checker := NewQuotaChecker(kv)

	require.NoError(t, kv.Set(ctx, "k", make([]byte, 49)))
	assert.True(t, checker.Check(ctx).Healthy)

	require.NoError(t, kv.Set(ctx, "k", make([]byte, 95)))
	res := checker.Check(ctx)
	assert.False(t, res.Healthy)
	assert.Contains(t, res.Message, "96 of 100 bytes")
}

func TestSeedChecker(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	checker := &SeedChecker{KV: kv}

	assert.False(t, checker.Check(ctx).Healthy)

	require.NoError(t, storage.SetJSON(ctx, kv, types.KeyInitialized, true))
	require.NoError(t, storage.SetJSON(ctx, kv, types.KeyDataVersion, "0.9.0"))
	assert.False(t, checker.Check(ctx).Healthy)

	require.NoError(t, storage.SetJSON(ctx, kv, types.KeyDataVersion, types.CurrentDataVersion))
	assert.True(t, checker.Check(ctx).Healthy)
}

func TestMonitor(t *testing.T) {
	var mu sync.Mutex
	reports := make(map[string]bool)
	report := func(component string, healthy bool, _ string) {
		mu.Lock()
		defer mu.Unlock()
		reports[component] = healthy
	}

	kv := storage.NewMemoryStore()
	m := NewMonitor(Config{Interval: 10 * time.Millisecond, Timeout: time.Second, Retries: 1}, report)
	m.Add("storage", NewStorageChecker(kv))
	m.Add("seed", &SeedChecker{KV: kv})

	m.Start(context.Background())
	defer m.Stop()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(reports) == 2
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.True(t, reports["storage"])
	assert.False(t, reports["seed"])
	mu.Unlock()

	st, ok := m.Status("seed")
	require.True(t, ok)
	assert.False(t, st.Healthy)
	_, ok = m.Status("unknown")
	assert.False(t, ok)
}
