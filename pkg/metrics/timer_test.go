package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimer_Duration(t *testing.T) {
	timer := NewTimer()
	time.Sleep(20 * time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), 20*time.Millisecond)
}

func TestTimer_ObserveDuration(t *testing.T) {
	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: "test_observe_seconds",
		Help: "test",
	})

	NewTimer().ObserveDuration(h)
	NewTimer().ObserveDuration(h)

	assert.Equal(t, 1, testutil.CollectAndCount(h))
	assert.Equal(t, uint64(2), sampleCount(t, h))
}

func TestTimer_ObserveDurationVec(t *testing.T) {
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: "test_observe_vec_seconds",
		Help: "test",
	}, []string{"collection", "operation"})

	NewTimer().ObserveDurationVec(vec, "crm_leads", "create")
	NewTimer().ObserveDurationVec(vec, "crm_cases", "delete")

	assert.Equal(t, 2, testutil.CollectAndCount(vec))
}

func TestStoreMetricsRegistered(t *testing.T) {
	StoreOperationsTotal.WithLabelValues("crm_leads", "create", "ok").Inc()
	assert.GreaterOrEqual(t, testutil.ToFloat64(StoreOperationsTotal.WithLabelValues("crm_leads", "create", "ok")), 1.0)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer, "crm_store_operations_total")
	assert.NoError(t, err)
	assert.Empty(t, problems)
}

func sampleCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, h.Write(&m))
	return m.GetHistogram().GetSampleCount()
}
