package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// driverCase opens a fresh, empty store for one driver
type driverCase struct {
	name string
	open func(t *testing.T) KV
}

func drivers() []driverCase {
	cases := []driverCase{
		{name: "memory", open: func(t *testing.T) KV { return NewMemoryStore() }},
		{name: "bolt", open: func(t *testing.T) KV {
			s, err := NewBoltStore(t.TempDir())
			require.NoError(t, err)
			return s
		}},
		{name: "sqlite", open: func(t *testing.T) KV {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "crm.sqlite"))
			require.NoError(t, err)
			return s
		}},
		{name: "s3", open: func(t *testing.T) KV {
			s, _ := newTestS3Store(t, "crm/", 0)
			return s
		}},
	}
	if dsn := os.Getenv("CRM_TEST_POSTGRES_DSN"); dsn != "" {
		cases = append(cases, driverCase{name: "postgres", open: func(t *testing.T) KV {
			s, err := NewPostgresStore(context.Background(), dsn)
			require.NoError(t, err)
			require.NoError(t, s.Clear(context.Background()))
			return s
		}})
	}
	return cases
}

func TestKV_Contract(t *testing.T) {
	for _, d := range drivers() {
		t.Run(d.name, func(t *testing.T) {
			ctx := context.Background()
			kv := d.open(t)
			defer kv.Close()

			_, err := kv.Get(ctx, "crm_leads")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, kv.Set(ctx, "crm_leads", []byte(`[{"id":"1"}]`)))
			require.NoError(t, kv.Set(ctx, "crm_accounts", []byte(`[]`)))

			got, err := kv.Get(ctx, "crm_leads")
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"1"}]`, string(got))

			require.NoError(t, kv.Set(ctx, "crm_leads", []byte(`[]`)))
			got, err = kv.Get(ctx, "crm_leads")
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(got))

			keys, err := kv.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"crm_accounts", "crm_leads"}, keys)

			require.NoError(t, kv.Remove(ctx, "crm_accounts"))
			require.NoError(t, kv.Remove(ctx, "never_set"))
			_, err = kv.Get(ctx, "crm_accounts")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, kv.Clear(ctx))
			keys, err = kv.Keys(ctx)
			require.NoError(t, err)
			assert.Empty(t, keys)
		})
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()

	value := []byte("abc")
	require.NoError(t, kv.Set(ctx, "k", value))
	value[0] = 'x'

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, _ := kv.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestBoltStore_Persists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewBoltStore(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, BoltFileName), s.Path())
	require.NoError(t, s.Set(ctx, "crm_initialized", []byte("true")))
	require.NoError(t, s.Close())

	reopened, err := NewBoltStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "crm_initialized")
	require.NoError(t, err)
	assert.Equal(t, "true", string(got))
}

func TestS3Store_PrefixAndFull(t *testing.T) {
	ctx := context.Background()
	store, fake := newTestS3Store(t, "tenant-a/", 32)

	require.NoError(t, store.Set(ctx, "crm_leads", []byte("[]")))
	assert.Equal(t, []string{"tenant-a/crm_leads"}, fake.objectKeys())

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"crm_leads"}, keys)

	err = store.Set(ctx, "crm_leads", make([]byte, 64))
	require.Error(t, err)
	assert.True(t, IsFull(err))
}

func TestQuotaStore(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	require.NoError(t, inner.Set(ctx, "existing", make([]byte, 40)))

	kv := WithQuota(inner, 100)
	q, ok := kv.(*QuotaStore)
	require.True(t, ok)

	used, err := q.Used(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len("existing")+40), used)

	// 1+50 fits beside the existing 48
	require.NoError(t, kv.Set(ctx, "a", make([]byte, 50)))

	err = kv.Set(ctx, "b", make([]byte, 10))
	assert.ErrorIs(t, err, ErrStorageFull)
	assert.True(t, IsFull(err))
	_, err = inner.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound, "rejected write must not reach the substrate")

	// shrinking an existing key frees budget
	require.NoError(t, kv.Set(ctx, "a", make([]byte, 10)))
	require.NoError(t, kv.Set(ctx, "b", make([]byte, 10)))

	require.NoError(t, kv.Remove(ctx, "existing"))
	used, err = q.Used(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(11+11), used)

	require.NoError(t, kv.Clear(ctx))
	used, err = q.Used(ctx)
	require.NoError(t, err)
	assert.Zero(t, used)
	assert.Equal(t, int64(100), q.Limit())
}

func TestWithQuota_Disabled(t *testing.T) {
	inner := NewMemoryStore()
	assert.Same(t, KV(inner), WithQuota(inner, 0))
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()

	type session struct {
		Token string `json:"token"`
	}

	tests := []struct {
		name  string
		setup func()
		want  session
	}{
		{name: "absent", setup: func() {}, want: session{Token: "default"}},
		{name: "malformed", setup: func() { _ = kv.Set(ctx, "s", []byte("{")) }, want: session{Token: "default"}},
		{name: "stored", setup: func() { _ = SetJSON(ctx, kv, "s", session{Token: "abc"}) }, want: session{Token: "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			assert.Equal(t, tt.want, GetJSON(ctx, kv, "s", session{Token: "default"}))
		})
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "memory", cfg: Config{Driver: DriverMemory, QuotaBytes: DefaultQuotaBytes}},
		{name: "bolt", cfg: Config{Driver: DriverBolt, DataDir: t.TempDir()}},
		{name: "sqlite default path", cfg: Config{Driver: DriverSQLite, DataDir: t.TempDir()}},
		{name: "unknown", cfg: Config{Driver: "floppy"}, wantErr: ErrUnknownDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv, err := Open(ctx, tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			defer kv.Close()
			require.NoError(t, kv.Set(ctx, "k", []byte("v")))
		})
	}
}
