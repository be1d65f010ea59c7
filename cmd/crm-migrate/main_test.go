package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/storage"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/types"
)

func seedBolt(t *testing.T, dir string, values map[string]string) {
	t.Helper()
	kv, err := storage.NewBoltStore(dir)
	require.NoError(t, err)
	defer kv.Close()
	for k, v := range values {
		require.NoError(t, kv.Set(context.Background(), k, []byte(v)))
	}
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	srcDir, dstDir := t.TempDir(), t.TempDir()
	seedBolt(t, srcDir, map[string]string{
		"crm_leads":    `[{"id":"1"}]`,
		"crm_accounts": `[]`,
		"crm_broken":   `{`,
	})

	src := storage.Config{Driver: storage.DriverBolt, DataDir: srcDir}
	dst := storage.Config{Driver: storage.DriverSQLite, DataDir: dstDir}

	_, skipped, err := migrate(ctx, src, dst, options{})
	require.ErrorIs(t, err, ErrInvalidValues)
	assert.Contains(t, err.Error(), "crm_broken")
	assert.Equal(t, 1, skipped)
	assert.NoFileExists(t, filepath.Join(dstDir, "crm.sqlite"), "nothing is written when invalid values abort the run")

	copied, skipped, err := migrate(ctx, src, dst, options{SkipInvalid: true})
	require.NoError(t, err)
	assert.Equal(t, 2, copied)
	assert.Equal(t, 1, skipped)

	out, err := storage.NewSQLiteStore(filepath.Join(dstDir, "crm.sqlite"))
	require.NoError(t, err)
	defer out.Close()

	keys, err := out.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"crm_accounts", "crm_data_version", "crm_leads"}, keys)
	assert.Equal(t, types.CurrentDataVersion, storage.GetJSON(ctx, out, types.KeyDataVersion, ""))
}

func TestMigrate_DryRun(t *testing.T) {
	ctx := context.Background()
	srcDir, dstDir := t.TempDir(), t.TempDir()
	seedBolt(t, srcDir, map[string]string{"crm_leads": `[]`})

	copied, _, err := migrate(ctx,
		storage.Config{Driver: storage.DriverBolt, DataDir: srcDir},
		storage.Config{Driver: storage.DriverBolt, DataDir: dstDir},
		options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 1, copied)
	assert.NoFileExists(t, filepath.Join(dstDir, storage.BoltFileName))
}

func TestBackupBolt(t *testing.T) {
	dir := t.TempDir()
	seedBolt(t, dir, map[string]string{"crm_initialized": "true"})

	backupDir := t.TempDir()
	require.NoError(t, backupBolt(filepath.Join(dir, storage.BoltFileName), filepath.Join(backupDir, storage.BoltFileName)))

	restored, err := storage.NewBoltStore(backupDir)
	require.NoError(t, err)
	defer restored.Close()

	got, err := restored.Get(context.Background(), "crm_initialized")
	require.NoError(t, err)
	assert.Equal(t, "true", string(got))
}
