/*
Package metrics provides Prometheus metrics and health endpoints for the
CRM data layer.

All collectors are package variables registered with the default registry
at init, so any package can record without wiring:

	timer := metrics.NewTimer()
	items, err := store.GetAll(ctx)
	timer.ObserveDurationVec(metrics.StoreOperationDuration, "crm_leads", "get_all")

# Metrics

Collection store:
  - crm_store_operations_total{collection,operation,result}
  - crm_store_operation_duration_seconds{collection,operation}
  - crm_corrupt_reads_total{collection}
  - crm_storage_full_total

Caches and events:
  - crm_collection_items{collection}, set on every reload and by Collector
  - crm_events_published_total{type}

Session, seed and toasts:
  - crm_auth_logins_total{result}
  - crm_seed_runs_total
  - crm_toasts_active

# Collector

Collector samples a CountSource (the registry) on an interval into
crm_collection_items. The monitor command wraps the registry so each
sample reloads from storage first and picks up writes made by other
processes.

	collector := metrics.NewCollector(reg).WithInterval(30 * time.Second)
	collector.Start()
	defer collector.Stop()

# Health

Components report through RegisterComponent/UpdateComponent. GetHealth is
unhealthy when any component is; GetReadiness requires the critical
components, storage and seed, to be registered and healthy.

	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/health", metrics.HealthHandler())
	mux.Handle("/ready", metrics.ReadyHandler())
	mux.Handle("/live", metrics.LivenessHandler())
*/
package metrics
