// Package identity is the remote identity service: credential accounts,
// signed session tokens persisted in Redis, and an auth-state listener list.
package identity

import (
	"context"
	stdErrors "errors"
	"strings"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/fashionhub/internal/errors"
	"github.com/aaravmahajanofficial/fashionhub/internal/logging"
	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	repository "github.com/aaravmahajanofficial/fashionhub/internal/repositories"
	"github.com/aaravmahajanofficial/fashionhub/internal/state"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// Service is what the remote auth provider needs from an identity backend.
type Service interface {
	SignIn(ctx context.Context, email, password string) (*models.Account, error)
	CreateAccount(ctx context.Context, email, password string) (*models.Account, error)
	SignOut(ctx context.Context) error
	UpdateProfile(ctx context.Context, displayName string) error
	CurrentAccount() *models.Account
	Restore(ctx context.Context) error
	OnAuthStateChanged(fn func(*models.Account)) (unsubscribe func())
}

type service struct {
	accounts    repository.AccountRepository
	sessions    repository.SessionRepository
	rateLimiter repository.RateLimitRepository
	jwtKey      []byte
	expiry      time.Duration

	mu       sync.RWMutex
	current  *models.Account
	listener *state.Broadcaster[*models.Account]
}

// NewService wires the identity backend. rateLimiter may be nil, in which case
// sign-in attempts are not throttled.
func NewService(accounts repository.AccountRepository, sessions repository.SessionRepository, rateLimiter repository.RateLimitRepository, jwtKey []byte, expiry time.Duration) Service {
	return &service{
		accounts:    accounts,
		sessions:    sessions,
		rateLimiter: rateLimiter,
		jwtKey:      jwtKey,
		expiry:      expiry,
		listener:    state.NewBroadcaster[*models.Account](),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) SignIn(ctx context.Context, email, password string) (*models.Account, error) {

	email = normalizeEmail(email)

	if s.rateLimiter != nil {
		allowed, _, retryAfter, err := s.rateLimiter.CheckLoginRateLimit(ctx, email)
		if err != nil {
			return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
		}
		if !allowed {
			return nil, errors.TooManyRequestsError("Too many login attempts. Please try again later.").
				WithDetail((time.Duration(retryAfter) * time.Second).String())
		}
	}

	account, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errors.UnauthorizedError("Invalid email or password")
		}
		return nil, errors.DatabaseError("Failed to fetch account").WithError(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, errors.UnauthorizedError("Invalid email or password")
	}

	if err := s.startSession(ctx, account); err != nil {
		return nil, err
	}

	if s.rateLimiter != nil {
		if err := s.rateLimiter.ResetLoginAttempts(ctx, email); err != nil {
			logging.FromContext(ctx).Warn("failed to reset login attempts", "error", err)
		}
	}

	s.setCurrent(account)

	return account, nil
}

func (s *service) CreateAccount(ctx context.Context, email, password string) (*models.Account, error) {

	email = normalizeEmail(email)
	if email == "" {
		return nil, errors.ValidationError("Email is required")
	}
	if len(password) < minPasswordLength {
		return nil, errors.ValidationError("Password should be at least 6 characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	account := &models.Account{
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		if stdErrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.DuplicateEntryError("Email already registered").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to create account").WithError(err)
	}

	if err := s.startSession(ctx, account); err != nil {
		return nil, err
	}

	s.setCurrent(account)

	return account, nil
}

// SignOut always ends the in-process session. A failure to drop the persisted
// token is logged and returned after listeners have been told.
func (s *service) SignOut(ctx context.Context) error {

	err := s.sessions.DeleteSession(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("failed to delete session", "error", err)
	}

	s.setCurrent(nil)

	if err != nil {
		return errors.ThirdPartyError("Failed to end session").WithError(err)
	}

	return nil
}

func (s *service) UpdateProfile(ctx context.Context, displayName string) error {

	current := s.CurrentAccount()
	if current == nil {
		return errors.UnauthorizedError("No signed in account")
	}

	if err := s.accounts.UpdateDisplayName(ctx, current.ID, displayName); err != nil {
		if repository.IsNotFound(err) {
			return errors.NotFoundError("Account not found").WithError(err)
		}
		return errors.DatabaseError("Failed to update profile").WithError(err)
	}

	current.DisplayName = displayName
	s.setCurrent(current)

	return nil
}

func (s *service) CurrentAccount() *models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}

	account := *s.current
	return &account
}

// Restore reloads the persisted session, if any, and always notifies
// listeners once with the outcome. A stale or forged token is discarded.
func (s *service) Restore(ctx context.Context) error {

	logger := logging.FromContext(ctx)

	token, ok, err := s.sessions.LoadSession(ctx)
	if err != nil {
		return errors.ThirdPartyError("Failed to load session").WithError(err)
	}

	if !ok {
		s.setCurrent(nil)
		return nil
	}

	claims, err := s.parseToken(token)
	if err != nil {
		logger.Warn("discarding invalid session", "error", err)
		if delErr := s.sessions.DeleteSession(ctx); delErr != nil {
			logger.Warn("failed to delete invalid session", "error", delErr)
		}
		s.setCurrent(nil)
		return nil
	}

	account, err := s.accounts.GetAccountByID(ctx, claims.AccountID)
	if err != nil {
		if repository.IsNotFound(err) {
			logger.Warn("session account no longer exists", "accountID", claims.AccountID)
			s.setCurrent(nil)
			return nil
		}
		return errors.DatabaseError("Failed to fetch account").WithError(err)
	}

	logger.Info("session restored", "accountID", account.ID)
	s.setCurrent(account)

	return nil
}

func (s *service) OnAuthStateChanged(fn func(*models.Account)) (unsubscribe func()) {
	return s.listener.Subscribe(fn)
}

func (s *service) setCurrent(account *models.Account) {
	s.mu.Lock()
	s.current = account
	s.mu.Unlock()

	var snapshot *models.Account
	if account != nil {
		copied := *account
		snapshot = &copied
	}

	s.listener.Publish(snapshot)
}

func (s *service) startSession(ctx context.Context, account *models.Account) error {

	now := time.Now()
	claims := &models.Claims{
		AccountID: account.ID,
		Email:     account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return errors.InternalError("Failed to generate session token").WithError(err)
	}

	if err := s.sessions.SaveSession(ctx, tokenString, s.expiry); err != nil {
		return errors.ThirdPartyError("Failed to persist session").WithError(err)
	}

	return nil
}

func (s *service) parseToken(tokenString string) (*models.Claims, error) {

	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtKey, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid || claims.AccountID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
