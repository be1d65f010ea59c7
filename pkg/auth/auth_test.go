package auth

import (
	"context"
	"testing"
	"time"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/storage"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		creds    types.LoginCredentials
		wantOK   bool
		wantRole types.UserRole
	}{
		{name: "admin", creds: types.LoginCredentials{Email: "admin@demo.com", Password: "admin123"}, wantOK: true, wantRole: types.RoleAdmin},
		{name: "sales", creds: types.LoginCredentials{Email: "sales@demo.com", Password: "sales123"}, wantOK: true, wantRole: types.RoleSalesRep},
		{name: "service", creds: types.LoginCredentials{Email: "service@demo.com", Password: "service123"}, wantOK: true, wantRole: types.RoleServiceAgent},
		{name: "marketing", creds: types.LoginCredentials{Email: "marketing@demo.com", Password: "marketing123"}, wantOK: true, wantRole: types.RoleMarketingUser},
		{name: "wrong password", creds: types.LoginCredentials{Email: "admin@demo.com", Password: "admin"}},
		{name: "unknown email", creds: types.LoginCredentials{Email: "nobody@demo.com", Password: "admin123"}},
		{name: "empty", creds: types.LoginCredentials{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := New(ctx, storage.NewMemoryStore())

			res, err := s.Login(ctx, tt.creds)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, res.Success)
			assert.Equal(t, tt.wantOK, s.IsAuthenticated())
			if !tt.wantOK {
				assert.Equal(t, ReasonInvalidCredentials, res.Reason)
				assert.Empty(t, s.Token())
				return
			}
			require.NotNil(t, res.User)
			assert.Equal(t, tt.wantRole, res.User.Role)
			assert.True(t, s.HasRole(tt.wantRole))
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	now := time.UnixMilli(1717000000000)

	var navigated []string
	s := New(ctx, kv,
		WithClock(func() time.Time { return now }),
		WithNavigator(func(path string) { navigated = append(navigated, path) }),
	)
	assert.False(t, s.IsAuthenticated())

	res, err := s.Login(ctx, types.LoginCredentials{Email: "sales@demo.com", Password: "sales123"})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "mock_token_1717000000000", s.Token())

	user, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "user_2", user.ID)
	assert.Equal(t, "Sales", user.FirstName)
	assert.True(t, s.HasAnyRole(types.RoleAdmin, types.RoleSalesRep))
	assert.False(t, s.HasAnyRole(types.RoleAdmin, types.RoleServiceAgent))

	// a new session over the same store is restored
	restored := New(ctx, kv)
	assert.True(t, restored.IsAuthenticated())
	assert.Equal(t, s.Token(), restored.Token())

	require.NoError(t, s.Logout(ctx))
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	assert.False(t, s.HasRole(types.RoleSalesRep))
	assert.Equal(t, []string{LoginPath}, navigated)

	_, err = kv.Get(ctx, types.KeyAuthUser)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = kv.Get(ctx, types.KeyAuthToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestNew_RequiresUserAndToken(t *testing.T) {
	tests := []struct {
		name  string
		user  bool
		token bool
		want  bool
	}{
		{name: "both", user: true, token: true, want: true},
		{name: "user only", user: true},
		{name: "token only", token: true},
		{name: "neither"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := storage.NewMemoryStore()
			if tt.user {
				require.NoError(t, storage.SetJSON(ctx, kv, types.KeyAuthUser, MockUsers[0].User()))
			}
			if tt.token {
				require.NoError(t, storage.SetJSON(ctx, kv, types.KeyAuthToken, "mock_token_1"))
			}
			assert.Equal(t, tt.want, New(ctx, kv).IsAuthenticated())
		})
	}
}

func TestLogin_StorageFull(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, storage.WithQuota(storage.NewMemoryStore(), 16))

	_, err := s.Login(ctx, types.LoginCredentials{Email: "admin@demo.com", Password: "admin123"})
	require.Error(t, err)
	assert.True(t, storage.IsFull(err))
	assert.False(t, s.IsAuthenticated())
}
