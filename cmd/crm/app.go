package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/collection"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/config"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/registry"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/seed"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/storage"
)

// app is the opened data layer shared by the data commands
type app struct {
	cfg *config.Config
	kv  storage.KV
	reg *registry.Registry
}

// loadConfig reads --config and lets explicitly set flags win over both
// the file and the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if flags.Changed("driver") {
		cfg.Storage.Driver, _ = flags.GetString("driver")
	}
	if flags.Changed("data-dir") {
		cfg.Storage.DataDir, _ = flags.GetString("data-dir")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("json-logs") {
		cfg.Log.JSON, _ = flags.GetBool("json-logs")
	}
	return cfg, nil
}

// openApp opens storage and the registry. With autoSeed set the demo
// dataset is seeded when the store has never been initialized.
func openApp(cmd *cobra.Command, autoSeed bool) (*app, error) {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	kv, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	reg, err := registry.New(ctx, kv,
		registry.WithIDGenerator(collection.NewIDGenerator(cfg.IDs.Strategy)),
	)
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("failed to open collections: %w", err)
	}

	a := &app{cfg: cfg, kv: kv, reg: reg}
	if autoSeed {
		if _, err := a.bootstrap(ctx, false); err != nil {
			_ = a.Close()
			return nil, err
		}
	}
	return a, nil
}

func (a *app) generator() *seed.Generator {
	var rng *rand.Rand
	if a.cfg.Seed.RandomSeed != 0 {
		rng = seed.NewRand(a.cfg.Seed.RandomSeed)
	}
	return seed.NewGenerator(rng, a.reg.Now, a.reg.IDs(), a.cfg.Seed.Counts)
}

func (a *app) bootstrap(ctx context.Context, force bool) (bool, error) {
	return seed.Bootstrap(ctx, a.kv, a.reg, a.generator(), force)
}

// Close releases the registry and the substrate
func (a *app) Close() error {
	return a.reg.Close()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
