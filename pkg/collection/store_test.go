package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/storage"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock always returns the same instant so monotonic bumping is visible
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func sequentialIDs() IDGenerator {
	var mu sync.Mutex
	n := 0
	return IDGeneratorFunc(func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id_%d", n)
	})
}

// failingKV returns err from every call
type failingKV struct {
	storage.KV
	getErr error
	setErr error
}

func (f *failingKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.KV.Get(ctx, key)
}

func (f *failingKV) Set(ctx context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.KV.Set(ctx, key, value)
}

func TestStore_CreateAssignsIdentity(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := New[types.Lead](storage.NewMemoryStore(), types.CollectionLeads, WithClock(fixedClock(now)))

	lead, err := store.Create(ctx, types.Lead{
		Base:      types.Base{ID: "ignored"},
		FirstName: "Ada",
		LastName:  "Lovelace",
		Company:   "Engines Ltd",
		Status:    types.LeadStatusNew,
	})
	require.NoError(t, err)

	assert.NotEqual(t, "ignored", lead.ID)
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, now, lead.CreatedAt)
	assert.Equal(t, lead.CreatedAt, lead.UpdatedAt)
	assert.Equal(t, "Ada", lead.FirstName)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, lead, all[0])
}

func TestStore_CreateDistinctIDsWithinOneMillisecond(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ids := TimeRandomIDs{Now: fixedClock(now)}
	store := New[types.Account](storage.NewMemoryStore(), types.CollectionAccounts,
		WithClock(fixedClock(now)), WithIDGenerator(ids))

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		acct, err := store.Create(ctx, types.Account{Name: fmt.Sprintf("Acme %d", i)})
		require.NoError(t, err)
		assert.False(t, seen[acct.ID], "duplicate id %s", acct.ID)
		seen[acct.ID] = true
	}

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, count)
}

func TestStore_CreateRetriesCollidingIDs(t *testing.T) {
	ctx := context.Background()
	calls := 0
	gen := IDGeneratorFunc(func() string {
		calls++
		if calls <= 2 {
			return "same"
		}
		return fmt.Sprintf("fresh_%d", calls)
	})
	store := New[types.Contact](storage.NewMemoryStore(), types.CollectionContacts, WithIDGenerator(gen))

	first, err := store.Create(ctx, types.Contact{FirstName: "A"})
	require.NoError(t, err)
	second, err := store.Create(ctx, types.Contact{FirstName: "B"})
	require.NoError(t, err)

	assert.Equal(t, "same", first.ID)
	assert.Equal(t, "fresh_3", second.ID)
}

func TestStore_UpdatePreservesIdentity(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := New[types.Lead](storage.NewMemoryStore(), types.CollectionLeads,
		WithClock(fixedClock(now)), WithIDGenerator(sequentialIDs()))

	lead, err := store.Create(ctx, types.Lead{FirstName: "Ada", Status: types.LeadStatusNew})
	require.NoError(t, err)

	tests := []struct {
		name    string
		patch   any
		wantErr error
		check   func(t *testing.T, got types.Lead)
	}{
		{
			name:  "map patch",
			patch: map[string]any{"status": types.LeadStatusWorking},
			check: func(t *testing.T, got types.Lead) {
				assert.Equal(t, types.LeadStatusWorking, got.Status)
				assert.Equal(t, "Ada", got.FirstName)
			},
		},
		{
			name:  "raw json patch",
			patch: json.RawMessage(`{"company":"Engines Ltd"}`),
			check: func(t *testing.T, got types.Lead) {
				assert.Equal(t, "Engines Ltd", got.Company)
				assert.Equal(t, types.LeadStatusWorking, got.Status)
			},
		},
		{
			name:  "patch cannot change id or createdAt",
			patch: map[string]any{"id": "other", "createdAt": now.Add(-time.Hour)},
			check: func(t *testing.T, got types.Lead) {
				assert.Equal(t, lead.ID, got.ID)
				assert.Equal(t, lead.CreatedAt, got.CreatedAt)
			},
		},
		{
			name:    "struct patch is rejected and leaves the record alone",
			patch:   types.Lead{Status: types.LeadStatusQualified},
			wantErr: ErrInvalidPatch,
			check: func(t *testing.T, got types.Lead) {
				assert.Equal(t, "Ada", got.FirstName)
				assert.Equal(t, "Engines Ltd", got.Company)
				assert.Equal(t, types.LeadStatusWorking, got.Status)
			},
		},
	}

	prev := lead.UpdatedAt
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found, err := store.Update(ctx, lead.ID, tt.patch)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.False(t, found)
				stored, ok, err := store.GetByID(ctx, lead.ID)
				require.NoError(t, err)
				require.True(t, ok)
				assert.Equal(t, prev, stored.UpdatedAt)
				tt.check(t, stored)
				return
			}
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, lead.ID, got.ID)
			assert.True(t, got.UpdatedAt.After(prev), "updatedAt %v not after %v", got.UpdatedAt, prev)
			tt.check(t, got)
			prev = got.UpdatedAt
		})
	}
}

func TestStore_UpdateFunc(t *testing.T) {
	ctx := context.Background()
	store := New[types.Opportunity](storage.NewMemoryStore(), types.CollectionOpportunities)

	opp, err := store.Create(ctx, types.Opportunity{Name: "Deal", Amount: 1000})
	require.NoError(t, err)

	got, found, err := store.UpdateFunc(ctx, opp.ID, func(o *types.Opportunity) {
		o.Amount = 2500
		o.ID = "hijack"
	})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(2500), got.Amount)
	assert.Equal(t, opp.ID, got.ID)
}

func TestStore_UpdateMissing(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	store := New[types.Lead](kv, types.CollectionLeads)

	_, found, err := store.Update(ctx, "nope", map[string]any{"status": "Working"})
	require.NoError(t, err)
	assert.False(t, found)

	_, err = kv.Get(ctx, string(types.CollectionLeads))
	assert.ErrorIs(t, err, storage.ErrNotFound, "update of a missing id must not write")
}

func TestStore_UpdateRejectsNonObjectPatch(t *testing.T) {
	ctx := context.Background()
	store := New[types.Lead](storage.NewMemoryStore(), types.CollectionLeads)
	lead, err := store.Create(ctx, types.Lead{FirstName: "Ada"})
	require.NoError(t, err)

	_, _, err = store.Update(ctx, lead.ID, []string{"not", "an", "object"})
	assert.ErrorIs(t, err, ErrInvalidPatch)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := New[types.Case](storage.NewMemoryStore(), types.CollectionCases, WithIDGenerator(sequentialIDs()))

	a, err := store.Create(ctx, types.Case{Subject: "a"})
	require.NoError(t, err)
	b, err := store.Create(ctx, types.Case{Subject: "b"})
	require.NoError(t, err)

	removed, err := store.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = store.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, b.ID, all[0].ID)

	require.NoError(t, store.DeleteAll(ctx))
	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStore_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	store := New[types.Account](storage.NewMemoryStore(), types.CollectionAccounts)

	tests := []struct {
		name    string
		items   []types.Account
		wantErr error
	}{
		{
			name: "unique ids",
			items: []types.Account{
				{Base: types.Base{ID: "a"}, Name: "A"},
				{Base: types.Base{ID: "b"}, Name: "B"},
			},
		},
		{
			name: "duplicate ids",
			items: []types.Account{
				{Base: types.Base{ID: "a"}},
				{Base: types.Base{ID: "a"}},
			},
			wantErr: ErrDuplicateID,
		},
		{
			name:    "empty id",
			items:   []types.Account{{Name: "anonymous"}},
			wantErr: ErrDuplicateID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.ReplaceAll(ctx, tt.items)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			all, err := store.GetAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.items, all)
		})
	}
}

func TestStore_SearchAndGetByID(t *testing.T) {
	ctx := context.Background()
	store := New[types.Lead](storage.NewMemoryStore(), types.CollectionLeads)

	hot, err := store.Create(ctx, types.Lead{FirstName: "Hot", Rating: types.LeadRatingHot})
	require.NoError(t, err)
	_, err = store.Create(ctx, types.Lead{FirstName: "Cold", Rating: types.LeadRatingCold})
	require.NoError(t, err)

	matched, err := store.Search(ctx, func(l types.Lead) bool { return l.Rating == types.LeadRatingHot })
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, hot.ID, matched[0].ID)

	got, found, err := store.GetByID(ctx, hot.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, hot, got)

	_, found, err = store.GetByID(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_MalformedDataReadsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, string(types.CollectionLeads), []byte("{not json")))

	store := New[types.Lead](kv, types.CollectionLeads)
	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	lead, err := store.Create(ctx, types.Lead{FirstName: "Fresh"})
	require.NoError(t, err)

	all, err = store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, lead.ID, all[0].ID)
}

func TestStore_ReadErrorPropagates(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{KV: storage.NewMemoryStore(), getErr: errors.New("disk on fire")}
	store := New[types.Lead](kv, types.CollectionLeads)

	_, err := store.GetAll(ctx)
	assert.Error(t, err)

	_, err = store.Create(ctx, types.Lead{FirstName: "Ada"})
	assert.ErrorContains(t, err, "disk on fire")
}

func TestStore_StorageFullPropagates(t *testing.T) {
	ctx := context.Background()
	kv := storage.WithQuota(storage.NewMemoryStore(), 64)
	store := New[types.Lead](kv, types.CollectionLeads)

	_, err := store.Create(ctx, types.Lead{
		FirstName:   "Ada",
		Description: "a description long enough to blow through a tiny quota",
	})
	require.Error(t, err)
	assert.True(t, storage.IsFull(err))

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_StampIsMonotonic(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := New[types.Lead](storage.NewMemoryStore(), types.CollectionLeads, WithClock(fixedClock(now)))

	tests := []struct {
		name string
		prev time.Time
		want time.Time
	}{
		{name: "no previous", prev: time.Time{}, want: now},
		{name: "previous in the past", prev: now.Add(-time.Second), want: now},
		{name: "previous equal", prev: now, want: now.Add(time.Millisecond)},
		{name: "previous in the future", prev: now.Add(time.Minute), want: now.Add(time.Minute + time.Millisecond)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.stamp(tt.prev))
		})
	}
}
