package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Collection store metrics
	StoreOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_store_operations_total",
			Help: "Total number of collection store operations by collection, operation and result",
		},
		[]string{"collection", "operation", "result"},
	)

	StoreOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crm_store_operation_duration_seconds",
			Help:    "Collection store operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"collection", "operation"},
	)

	CollectionItems = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "crm_collection_items",
			Help: "Number of items in each materialized collection cache",
		},
		[]string{"collection"},
	)

	StorageFullTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_storage_full_total",
			Help: "Total number of writes rejected because storage was full",
		},
	)

	CorruptReadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_corrupt_reads_total",
			Help: "Total number of collection reads that found malformed data",
		},
		[]string{"collection"},
	)

	// Seed metrics
	SeedRunsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_seed_runs_total",
			Help: "Total number of seed data generations applied",
		},
	)

	// Session metrics
	AuthLoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_auth_logins_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	ToastsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "crm_toasts_active",
			Help: "Number of toast messages currently displayed",
		},
	)

	// Event metrics
	EventsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_events_published_total",
			Help: "Total number of change events published by type",
		},
		[]string{"type"},
	)
)

func init() {
	// Register all metrics
	prometheus.MustRegister(StoreOperationsTotal)
	prometheus.MustRegister(StoreOperationDuration)
	prometheus.MustRegister(CollectionItems)
	prometheus.MustRegister(StorageFullTotal)
	prometheus.MustRegister(CorruptReadsTotal)
	prometheus.MustRegister(SeedRunsTotal)
	prometheus.MustRegister(AuthLoginsTotal)
	prometheus.MustRegister(ToastsActive)
	prometheus.MustRegister(EventsPublishedTotal)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
