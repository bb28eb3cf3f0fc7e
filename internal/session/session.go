// Package session holds the authenticated user for the running client. The
// store is constructed once at application root and passed by reference to
// every screen that needs it.
package session

import (
	"context"
	"sync"

	"storefront/internal/api"
	"storefront/internal/logging"
	"storefront/internal/types"
)

// Result is the outcome of a login or signup attempt. Auth failures are
// reported here rather than as errors so callers can render them inline.
type Result struct {
	Success bool
	Error   string
}

// Store mirrors the server-side session: nil user when unauthenticated.
type Store struct {
	client *api.Client

	mu   sync.RWMutex
	user *types.User
}

// New creates a session store backed by the gateway.
func New(client *api.Client) *Store {
	return &Store{client: client}
}

// Restore attempts to resume a previous session from the persisted token.
// Success transitions to authenticated with the loaded profile; any failure
// transitions to unauthenticated and clears the token. Returns whether the
// session was restored.
func (s *Store) Restore(ctx context.Context) bool {
	if s.client.Token() == "" {
		return false
	}

	user, err := s.client.Profile(ctx)
	if err != nil {
		logging.SessionError("profile restore failed, clearing token: %v", err)
		s.client.SetToken("")
		s.setUser(nil)
		return false
	}

	logging.Session("session restored for user %d", user.ID)
	s.setUser(&user)
	return true
}

// Login exchanges credentials for a session. On failure the state is left
// unchanged and the failure is returned without an error.
func (s *Store) Login(ctx context.Context, creds types.Credentials) Result {
	resp, err := s.client.Login(ctx, creds)
	if err != nil {
		logging.SessionError("login failed: %v", err)
		return Result{Success: false, Error: err.Error()}
	}

	s.client.SetToken(resp.Token)
	s.setUser(&resp.User)
	logging.Session("user %d logged in", resp.User.ID)
	return Result{Success: true}
}

// Signup creates an account and starts a session with the returned token.
func (s *Store) Signup(ctx context.Context, req types.SignupRequest) Result {
	resp, err := s.client.Signup(ctx, req)
	if err != nil {
		logging.SessionError("signup failed: %v", err)
		return Result{Success: false, Error: err.Error()}
	}

	s.client.SetToken(resp.Token)
	s.setUser(&resp.User)
	logging.Session("user %d signed up", resp.User.ID)
	return Result{Success: true}
}

// Logout clears the user and token. Purely local; no server call is needed.
func (s *Store) Logout() {
	s.client.SetToken("")
	s.setUser(nil)
	logging.Session("logged out")
}

// User returns a copy of the current user, nil when unauthenticated.
func (s *Store) User() *types.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// UserID returns the current user's id, 0 when unauthenticated.
func (s *Store) UserID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return 0
	}
	return s.user.ID
}

// IsAuthenticated is derived purely from the presence of a user.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// SetUser replaces the cached profile, e.g. after a profile update.
func (s *Store) SetUser(user types.User) {
	s.setUser(&user)
}

func (s *Store) setUser(user *types.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}
