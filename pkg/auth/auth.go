// Package auth keeps the signed-in session of the demo CRM. Credentials are
// checked against a fixed list of mock users and the session is persisted
// in the key-value store so it survives restarts.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/events"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/log"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/metrics"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/storage"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/types"
)

// ReasonInvalidCredentials is the failure reason of a rejected login
const ReasonInvalidCredentials = "Invalid email or password"

// LoginPath is where Logout navigates to
const LoginPath = "/login"

// MockUser is a built-in demo account
type MockUser struct {
	ID        string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      types.UserRole
}

// User strips the password
func (m MockUser) User() types.User {
	return types.User{
		ID:        m.ID,
		Email:     m.Email,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Role:      m.Role,
	}
}

// MockUsers are the accounts accepted by Login
var MockUsers = []MockUser{
	{ID: "user_1", Email: "admin@demo.com", Password: "admin123", FirstName: "Admin", LastName: "User", Role: types.RoleAdmin},
	{ID: "user_2", Email: "sales@demo.com", Password: "sales123", FirstName: "Sales", LastName: "Rep", Role: types.RoleSalesRep},
	{ID: "user_3", Email: "service@demo.com", Password: "service123", FirstName: "Service", LastName: "Agent", Role: types.RoleServiceAgent},
	{ID: "user_4", Email: "marketing@demo.com", Password: "marketing123", FirstName: "Marketing", LastName: "User", Role: types.RoleMarketingUser},
}

// Result is the outcome of a login attempt
type Result struct {
	Success bool
	Reason  string
	User    *types.User
}

type options struct {
	now      func() time.Time
	navigate func(path string)
	broker   *events.Broker
	users    []MockUser
}

// Option configures a Session
type Option func(*options)

// WithClock replaces time.Now for token minting
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithNavigator sets the callback Logout uses to leave the app
func WithNavigator(fn func(path string)) Option {
	return func(o *options) { o.navigate = fn }
}

// WithBroker publishes login and logout events on b
func WithBroker(b *events.Broker) Option {
	return func(o *options) { o.broker = b }
}

// WithUsers replaces MockUsers
func WithUsers(users []MockUser) Option {
	return func(o *options) { o.users = users }
}

// Session is the authentication state
type Session struct {
	kv       storage.KV
	now      func() time.Time
	navigate func(path string)
	broker   *events.Broker
	users    []MockUser

	mu    sync.RWMutex
	user  *types.User
	token string
}

// New restores a persisted session. Only a stored user together with a
// stored token counts as signed in.
func New(ctx context.Context, kv storage.KV, opts ...Option) *Session {
	o := options{now: time.Now, navigate: func(string) {}, users: MockUsers}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Session{kv: kv, now: o.now, navigate: o.navigate, broker: o.broker, users: o.users}

	user := storage.GetJSON[*types.User](ctx, kv, types.KeyAuthUser, nil)
	token := storage.GetJSON(ctx, kv, types.KeyAuthToken, "")
	if user != nil && token != "" {
		s.user = user
		s.token = token
	}
	return s
}

// Login checks creds against the mock users. A mismatch is reported in the
// Result, not as an error. Errors come only from persisting the session.
func (s *Session) Login(ctx context.Context, creds types.LoginCredentials) (Result, error) {
	logger := log.WithComponent("auth")

	match, ok := s.find(creds)
	if !ok {
		metrics.AuthLoginsTotal.WithLabelValues("failure").Inc()
		logger.Debug().Str("email", creds.Email).Msg("Login rejected")
		return Result{Success: false, Reason: ReasonInvalidCredentials}, nil
	}

	user := match.User()
	token := fmt.Sprintf("mock_token_%d", s.now().UnixMilli())

	if err := storage.SetJSON(ctx, s.kv, types.KeyAuthUser, user); err != nil {
		return Result{}, err
	}
	if err := storage.SetJSON(ctx, s.kv, types.KeyAuthToken, token); err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()

	metrics.AuthLoginsTotal.WithLabelValues("success").Inc()
	s.publish(events.EventLoggedIn, user.ID)
	logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("User logged in")

	out := user
	return Result{Success: true, User: &out}, nil
}

func (s *Session) find(creds types.LoginCredentials) (MockUser, bool) {
	for _, u := range s.users {
		emailOK := subtle.ConstantTimeCompare([]byte(u.Email), []byte(creds.Email)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(u.Password), []byte(creds.Password)) == 1
		if emailOK && passOK {
			return u, true
		}
	}
	return MockUser{}, false
}

// Logout clears the session, removes the persisted keys and navigates to
// the login page.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	var userID string
	if s.user != nil {
		userID = s.user.ID
	}
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.kv.Remove(ctx, types.KeyAuthUser); err != nil {
		return err
	}
	if err := s.kv.Remove(ctx, types.KeyAuthToken); err != nil {
		return err
	}

	s.publish(events.EventLoggedOut, userID)
	s.navigate(LoginPath)
	return nil
}

// IsAuthenticated reports whether a user is signed in
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// User returns a copy of the signed-in user
func (s *Session) User() (types.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return types.User{}, false
	}
	return *s.user, true
}

// Token returns the session token, empty when signed out
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// HasRole reports whether the signed-in user has role
func (s *Session) HasRole(role types.UserRole) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.Role == role
}

// HasAnyRole reports whether the signed-in user has one of roles
func (s *Session) HasAnyRole(roles ...types.UserRole) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && slices.Contains(roles, s.user.Role)
}

func (s *Session) publish(t events.EventType, userID string) {
	if s.broker == nil {
		return
	}
	s.broker.Publish(&events.Event{
		Type:     t,
		Metadata: map[string]string{"user_id": userID},
	})
}
