package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/events"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/health"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/log"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/metrics"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/registry"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/storage"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Serve metrics and health endpoints",
	Long: `Serve Prometheus metrics on /metrics and health checks on /health,
/ready and /live until interrupted. Collection sizes are re-read from
storage on every collection interval, so changes made by other crm
processes show up in the metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, _ := cmd.Flags().GetDuration("interval")

		a, err := openApp(cmd, false)
		if err != nil {
			metrics.RegisterComponent("storage", false, err.Error())
			return err
		}
		defer a.Close()
		metrics.SetVersion(Version)

		addr := a.cfg.Metrics.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		if _, err := a.bootstrap(ctx, false); err != nil {
			logger := log.WithComponent("monitor")
			logger.Error().Err(err).Msg("Seeding failed")
		}

		probes := health.NewMonitor(health.DefaultConfig(), metrics.UpdateComponent)
		probes.Add("storage", health.NewStorageChecker(a.kv))
		probes.Add("seed", &health.SeedChecker{KV: a.kv})
		if q, ok := a.kv.(*storage.QuotaStore); ok {
			probes.Add("quota", health.NewQuotaChecker(q))
		}
		probes.Start(ctx)
		defer probes.Stop()

		var filters []events.Filter
		if names, _ := cmd.Flags().GetStringSlice("watch"); len(names) > 0 {
			keys := make([]string, 0, len(names))
			for _, name := range names {
				c, err := a.reg.Lookup(name)
				if err != nil {
					return err
				}
				keys = append(keys, c.Key())
			}
			filters = append(filters, events.ForCollection(keys...))
		}
		sub := a.reg.Broker().Subscribe(filters...)
		go logEvents(ctx, sub)
		defer a.reg.Broker().Unsubscribe(sub)

		collector := metrics.NewCollector(&reloadingCounts{ctx: ctx, reg: a.reg}).WithInterval(interval)
		collector.Start()
		defer collector.Stop()

		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		mux.Handle("/health", metrics.HealthHandler())
		mux.Handle("/ready", metrics.ReadyHandler())
		mux.Handle("/live", metrics.LivenessHandler())
		server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		errCh := make(chan error, 1)
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("monitor server error: %v", err)
			}
		}()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Serving metrics on http://%s/metrics\n", addr)
		fmt.Fprintln(out, "Press Ctrl+C to stop.")

		// Wait for interrupt signal or server error
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		var runErr error
		select {
		case <-sigCh:
			fmt.Fprintln(out, "\nShutting down...")
		case runErr = <-errCh:
		}

		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown: %v", err)
		}
		return runErr
	},
}

func init() {
	monitorCmd.Flags().String("addr", "", "Listen address (default from config metrics.addr)")
	monitorCmd.Flags().Duration("interval", metrics.DefaultCollectInterval, "Collection size sampling interval")
	monitorCmd.Flags().StringSlice("watch", nil, "Only log change events for these collections")
}

// reloadingCounts refreshes every cache from storage before reporting
// sizes. A failed reload reports the last known sizes.
type reloadingCounts struct {
	ctx context.Context
	reg *registry.Registry
}

func (r *reloadingCounts) Counts() map[string]int {
	if err := r.reg.Reload(r.ctx); err != nil {
		logger := log.WithComponent("monitor")
		logger.Warn().Err(err).Msg("Failed to reload collections")
	}
	return r.reg.Counts()
}

func logEvents(ctx context.Context, sub events.Subscriber) {
	logger := log.WithComponent("monitor")
	for {
		select {
		case e, ok := <-sub:
			if !ok {
				return
			}
			// reload events log at debug
			ev := logger.Info()
			if strings.HasSuffix(string(e.Type), "."+string(events.OpLoaded)) {
				ev = logger.Debug()
			}
			ev.Str("type", string(e.Type)).
				Str("collection", e.Collection).
				Str("entity_id", e.EntityID).
				Msg("Event")
		case <-ctx.Done():
			return
		}
	}
}
