/*
Package health probes the data layer's dependencies.

A Checker performs one check and returns a Result. Status folds results
so a component turns unhealthy only after Config.Retries consecutive
failures and recovers on the first success. Monitor runs a set of named
checkers on an interval and reports each folded status, typically into
the metrics health registry behind /health and /ready:

	m := health.NewMonitor(health.DefaultConfig(), metrics.UpdateComponent)
	m.Add("storage", health.NewStorageChecker(kv))
	m.Add("seed", &health.SeedChecker{KV: kv})
	if q, ok := kv.(*storage.QuotaStore); ok {
		m.Add("quota", health.NewQuotaChecker(q))
	}
	m.Start(ctx)
	defer m.Stop()

Checkers:
  - StorageChecker: set, get and remove of ProbeKey
  - QuotaChecker: usage of a QuotaStore against a threshold
  - SeedChecker: crm_initialized and crm_data_version stamps
*/
package health
