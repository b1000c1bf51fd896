package service

import (
	"context"
	"sync"

	"github.com/aaravmahajanofficial/fashionhub/internal/logging"
	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	"github.com/aaravmahajanofficial/fashionhub/internal/state"
)

// AuthProvider verifies credentials and produces the signed-in user.
type AuthProvider interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Signup(ctx context.Context, email, password, name string) (*models.User, error)
	Logout(ctx context.Context) error
	// Restore returns the user of a persisted session, or nil if there is none.
	Restore(ctx context.Context) (*models.User, error)
}

// AuthService is either signed out or signed in as exactly one user.
// Provider failures never escape it: Login and Signup report false and the
// previous state stays in place.
type AuthService struct {
	provider AuthProvider

	writeMu sync.Mutex
	mu      sync.RWMutex
	user    *models.User
	changes *state.Broadcaster[models.AuthState]
}

func NewAuthService(provider AuthProvider) *AuthService {
	return &AuthService{
		provider: provider,
		changes:  state.NewBroadcaster[models.AuthState](),
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	user, err := s.provider.Login(ctx, email, password)
	if err != nil {
		logging.FromContext(ctx).Info("login rejected", "error", err)
		return false
	}

	s.setUser(user)

	return true
}

func (s *AuthService) Signup(ctx context.Context, email, password, name string) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	user, err := s.provider.Signup(ctx, email, password, name)
	if err != nil {
		logging.FromContext(ctx).Info("signup rejected", "error", err)
		return false
	}

	s.setUser(user)

	return true
}

// Logout signs out locally even if the provider could not be reached.
func (s *AuthService) Logout(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.provider.Logout(ctx); err != nil {
		logging.FromContext(ctx).Warn("provider logout failed", "error", err)
	}

	s.setUser(nil)
}

// Restore signs in the user of a persisted session, if the provider has one.
func (s *AuthService) Restore(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	user, err := s.provider.Restore(ctx)
	if err != nil {
		return err
	}

	if user != nil {
		s.setUser(user)
	}

	return nil
}

func (s *AuthService) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}

	user := *s.user
	return &user
}

func (s *AuthService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.user != nil
}

func (s *AuthService) State() models.AuthState {
	user := s.CurrentUser()

	return models.AuthState{IsAuthenticated: user != nil, User: user}
}

func (s *AuthService) Subscribe(fn func(models.AuthState)) (unsubscribe func()) {
	return s.changes.Subscribe(fn)
}

// setUser must be called with writeMu held.
func (s *AuthService) setUser(user *models.User) {
	s.mu.Lock()
	if s.user == nil && user == nil {
		s.mu.Unlock()
		return
	}
	if user != nil {
		copied := *user
		user = &copied
	}
	s.user = user
	s.mu.Unlock()

	s.changes.Publish(s.State())
}
