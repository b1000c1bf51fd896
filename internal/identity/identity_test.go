package identity_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/fashionhub/internal/errors"
	"github.com/aaravmahajanofficial/fashionhub/internal/identity"
	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	repository "github.com/aaravmahajanofficial/fashionhub/internal/repositories"
	"github.com/aaravmahajanofficial/fashionhub/internal/repositories/mocks"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var jwtKey = []byte("test-key")

type fixture struct {
	accounts *mocks.AccountRepository
	sessions *mocks.SessionRepository
	limiter  *mocks.RateLimitRepository
	svc      identity.Service
	states   []*models.Account
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		accounts: new(mocks.AccountRepository),
		sessions: new(mocks.SessionRepository),
		limiter:  new(mocks.RateLimitRepository),
	}
	f.svc = identity.NewService(f.accounts, f.sessions, f.limiter, jwtKey, time.Hour)
	f.svc.OnAuthStateChanged(func(a *models.Account) {
		f.states = append(f.states, a)
	})

	return f
}

func storedAccount(t *testing.T, email, password string) *models.Account {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &models.Account{ID: "acc-1", Email: email, DisplayName: "Jane", PasswordHash: string(hash)}
}

func signedToken(t *testing.T, key []byte, accountID string, expiresAt time.Time) string {
	t.Helper()

	claims := &models.Claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)

	return token
}

func TestIdentity_SignIn(t *testing.T) {

	t.Run("Success - Session Saved And Listeners Notified", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		ctx := t.Context()
		account := storedAccount(t, "jane@example.com", "secret1")

		f.limiter.On("CheckLoginRateLimit", ctx, "jane@example.com").Return(true, 4, 0, nil).Once()
		f.accounts.On("GetAccountByEmail", ctx, "jane@example.com").Return(account, nil).Once()
		f.sessions.On("SaveSession", ctx, mock.AnythingOfType("string"), time.Hour).Return(nil).Once()
		f.limiter.On("ResetLoginAttempts", ctx, "jane@example.com").Return(nil).Once()

		// Act
		got, err := f.svc.SignIn(ctx, "  Jane@Example.com ", "secret1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "acc-1", got.ID)
		require.Len(t, f.states, 1)
		assert.Equal(t, "acc-1", f.states[0].ID)
		assert.Equal(t, "acc-1", f.svc.CurrentAccount().ID)

		f.accounts.AssertExpectations(t)
		f.sessions.AssertExpectations(t)
		f.limiter.AssertExpectations(t)
	})

	t.Run("Failure - Wrong Password", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		ctx := t.Context()
		account := storedAccount(t, "jane@example.com", "secret1")

		f.limiter.On("CheckLoginRateLimit", ctx, "jane@example.com").Return(true, 4, 0, nil).Once()
		f.accounts.On("GetAccountByEmail", ctx, "jane@example.com").Return(account, nil).Once()

		// Act
		got, err := f.svc.SignIn(ctx, "jane@example.com", "wrong-password")

		// Assert
		assert.Nil(t, got)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeUnauthorized))
		assert.Empty(t, f.states)
		assert.Nil(t, f.svc.CurrentAccount())
		f.sessions.AssertNotCalled(t, "SaveSession", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown Email", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		ctx := t.Context()

		f.limiter.On("CheckLoginRateLimit", ctx, "ghost@example.com").Return(true, 4, 0, nil).Once()
		f.accounts.On("GetAccountByEmail", ctx, "ghost@example.com").
			Return(nil, fmt.Errorf("account ghost@example.com: %w", repository.ErrNotFound)).Once()

		// Act
		_, err := f.svc.SignIn(ctx, "ghost@example.com", "secret1")

		// Assert
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeUnauthorized))
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		ctx := t.Context()

		f.limiter.On("CheckLoginRateLimit", ctx, "jane@example.com").Return(false, 0, 30, nil).Once()

		// Act
		_, err := f.svc.SignIn(ctx, "jane@example.com", "secret1")

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeTooManyRequests, appErr.Code)
		assert.Equal(t, "30s", appErr.Detail)
		f.accounts.AssertNotCalled(t, "GetAccountByEmail", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Rate Limiter Unavailable", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		ctx := t.Context()

		f.limiter.On("CheckLoginRateLimit", ctx, "jane@example.com").Return(false, 0, 0, errors.New("redis down")).Once()

		// Act
		_, err := f.svc.SignIn(ctx, "jane@example.com", "secret1")

		// Assert
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeThirdPartyError))
	})
}

func TestIdentity_CreateAccount(t *testing.T) {

	t.Run("Success - Password Hashed", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		ctx := t.Context()

		f.accounts.On("CreateAccount", ctx, mock.AnythingOfType("*models.Account")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.Account).ID = "acc-9"
			}).Return(nil).Once()
		f.sessions.On("SaveSession", ctx, mock.AnythingOfType("string"), time.Hour).Return(nil).Once()

		// Act
		account, err := f.svc.CreateAccount(ctx, "New@Example.com", "secret1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "acc-9", account.ID)
		assert.Equal(t, "new@example.com", account.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("secret1")))
		require.Len(t, f.states, 1)
		assert.Equal(t, "acc-9", f.states[0].ID)
	})

	t.Run("Failure - Weak Password", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.svc.CreateAccount(t.Context(), "new@example.com", "12345")

		// Assert
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeValidation))
		f.accounts.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Email Taken", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		ctx := t.Context()

		f.accounts.On("CreateAccount", ctx, mock.AnythingOfType("*models.Account")).
			Return(fmt.Errorf("account new@example.com: %w", repository.ErrDuplicate)).Once()

		// Act
		_, err := f.svc.CreateAccount(ctx, "new@example.com", "secret1")

		// Assert
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeDuplicateEntry))
		assert.Empty(t, f.states)
	})
}

func TestIdentity_SignOut(t *testing.T) {

	t.Run("Success - Clears Current Account", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		ctx := t.Context()
		account := storedAccount(t, "jane@example.com", "secret1")

		f.limiter.On("CheckLoginRateLimit", ctx, "jane@example.com").Return(true, 4, 0, nil).Once()
		f.accounts.On("GetAccountByEmail", ctx, "jane@example.com").Return(account, nil).Once()
		f.sessions.On("SaveSession", ctx, mock.AnythingOfType("string"), time.Hour).Return(nil).Once()
		f.limiter.On("ResetLoginAttempts", ctx, "jane@example.com").Return(nil).Once()
		f.sessions.On("DeleteSession", ctx).Return(nil).Once()

		_, err := f.svc.SignIn(ctx, "jane@example.com", "secret1")
		require.NoError(t, err)

		// Act
		err = f.svc.SignOut(ctx)

		// Assert
		require.NoError(t, err)
		assert.Nil(t, f.svc.CurrentAccount())
		require.Len(t, f.states, 2)
		assert.Nil(t, f.states[1])
	})

	t.Run("Failure - Session Store Down Still Signs Out", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		ctx := t.Context()
		f.sessions.On("DeleteSession", ctx).Return(errors.New("redis down")).Once()

		// Act
		err := f.svc.SignOut(ctx)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, f.svc.CurrentAccount())
		require.Len(t, f.states, 1)
		assert.Nil(t, f.states[0])
	})
}

func TestIdentity_UpdateProfile(t *testing.T) {

	t.Run("Failure - Not Signed In", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.UpdateProfile(t.Context(), "Jane")

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeUnauthorized))
	})

	t.Run("Success - Display Name Stored", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		ctx := t.Context()
		token := signedToken(t, jwtKey, "acc-1", time.Now().Add(time.Hour))

		f.sessions.On("LoadSession", ctx).Return(token, true, nil).Once()
		f.accounts.On("GetAccountByID", ctx, "acc-1").Return(&models.Account{ID: "acc-1", Email: "jane@example.com"}, nil).Once()
		f.accounts.On("UpdateDisplayName", ctx, "acc-1", "Jane Doe").Return(nil).Once()
		require.NoError(t, f.svc.Restore(ctx))

		// Act
		err := f.svc.UpdateProfile(ctx, "Jane Doe")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", f.svc.CurrentAccount().DisplayName)
		require.Len(t, f.states, 2)
		assert.Equal(t, "Jane Doe", f.states[1].DisplayName)
	})
}

func TestIdentity_Restore(t *testing.T) {

	t.Run("Success - No Saved Session", func(t *testing.T) {
		f := newFixture(t)
		ctx := t.Context()
		f.sessions.On("LoadSession", ctx).Return("", false, nil).Once()

		err := f.svc.Restore(ctx)

		require.NoError(t, err)
		require.Len(t, f.states, 1)
		assert.Nil(t, f.states[0])
	})

	t.Run("Success - Valid Session Restored", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		ctx := t.Context()
		token := signedToken(t, jwtKey, "acc-1", time.Now().Add(time.Hour))

		f.sessions.On("LoadSession", ctx).Return(token, true, nil).Once()
		f.accounts.On("GetAccountByID", ctx, "acc-1").Return(&models.Account{ID: "acc-1", Email: "jane@example.com"}, nil).Once()

		// Act
		err := f.svc.Restore(ctx)

		// Assert
		require.NoError(t, err)
		require.Len(t, f.states, 1)
		assert.Equal(t, "acc-1", f.states[0].ID)
	})

	t.Run("Success - Expired Session Discarded", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		ctx := t.Context()
		token := signedToken(t, jwtKey, "acc-1", time.Now().Add(-time.Minute))

		f.sessions.On("LoadSession", ctx).Return(token, true, nil).Once()
		f.sessions.On("DeleteSession", ctx).Return(nil).Once()

		// Act
		err := f.svc.Restore(ctx)

		// Assert
		require.NoError(t, err)
		assert.Nil(t, f.svc.CurrentAccount())
		f.sessions.AssertExpectations(t)
		f.accounts.AssertNotCalled(t, "GetAccountByID", mock.Anything, mock.Anything)
	})

	t.Run("Success - Forged Session Discarded", func(t *testing.T) {
		f := newFixture(t)
		ctx := t.Context()
		token := signedToken(t, []byte("other-key"), "acc-1", time.Now().Add(time.Hour))

		f.sessions.On("LoadSession", ctx).Return(token, true, nil).Once()
		f.sessions.On("DeleteSession", ctx).Return(nil).Once()

		err := f.svc.Restore(ctx)

		require.NoError(t, err)
		assert.Nil(t, f.svc.CurrentAccount())
	})

	t.Run("Failure - Session Store Down", func(t *testing.T) {
		f := newFixture(t)
		ctx := t.Context()
		f.sessions.On("LoadSession", ctx).Return("", false, errors.New("redis down")).Once()

		err := f.svc.Restore(ctx)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeThirdPartyError))
		assert.Empty(t, f.states)
	})
}
