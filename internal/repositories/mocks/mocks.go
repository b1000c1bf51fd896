// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	"github.com/stretchr/testify/mock"
)

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (m *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepository) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProductRepository) SeedProducts(ctx context.Context, products []models.Product) (int, error) {
	args := m.Called(ctx, products)
	return args.Int(0), args.Error(1)
}

type ProfileRepository struct {
	mock.Mock
}

func (m *ProfileRepository) CreateProfile(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *ProfileRepository) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	profile, _ := args.Get(0).(*models.Profile)
	return profile, args.Error(1)
}

type AccountRepository struct {
	mock.Mock
}

func (m *AccountRepository) CreateAccount(ctx context.Context, account *models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *AccountRepository) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	account, _ := args.Get(0).(*models.Account)
	return account, args.Error(1)
}

func (m *AccountRepository) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	args := m.Called(ctx, id)
	account, _ := args.Get(0).(*models.Account)
	return account, args.Error(1)
}

func (m *AccountRepository) UpdateDisplayName(ctx context.Context, id, displayName string) error {
	args := m.Called(ctx, id, displayName)
	return args.Error(0)
}

type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) SaveSession(ctx context.Context, token string, ttl time.Duration) error {
	args := m.Called(ctx, token, ttl)
	return args.Error(0)
}

func (m *SessionRepository) LoadSession(ctx context.Context) (string, bool, error) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *SessionRepository) DeleteSession(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type RateLimitRepository struct {
	mock.Mock
}

func (m *RateLimitRepository) CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}

func (m *RateLimitRepository) ResetLoginAttempts(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type Cache struct {
	mock.Mock
}

func (m *Cache) Get(ctx context.Context, key string, value any) (bool, error) {
	args := m.Called(ctx, key, value)
	return args.Bool(0), args.Error(1)
}

func (m *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *Cache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type IdentityService struct {
	mock.Mock
	listeners []func(*models.Account)
}

func (m *IdentityService) SignIn(ctx context.Context, email, password string) (*models.Account, error) {
	args := m.Called(ctx, email, password)
	account, _ := args.Get(0).(*models.Account)
	if account != nil {
		m.Notify(account)
	}
	return account, args.Error(1)
}

func (m *IdentityService) CreateAccount(ctx context.Context, email, password string) (*models.Account, error) {
	args := m.Called(ctx, email, password)
	account, _ := args.Get(0).(*models.Account)
	if account != nil {
		m.Notify(account)
	}
	return account, args.Error(1)
}

func (m *IdentityService) SignOut(ctx context.Context) error {
	args := m.Called(ctx)
	m.Notify(nil)
	return args.Error(0)
}

func (m *IdentityService) UpdateProfile(ctx context.Context, displayName string) error {
	args := m.Called(ctx, displayName)
	return args.Error(0)
}

func (m *IdentityService) CurrentAccount() *models.Account {
	args := m.Called()
	account, _ := args.Get(0).(*models.Account)
	return account
}

func (m *IdentityService) Restore(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// OnAuthStateChanged is not recorded as a call; listeners are kept so tests
// can drive them with Notify.
func (m *IdentityService) OnAuthStateChanged(fn func(*models.Account)) (unsubscribe func()) {
	m.listeners = append(m.listeners, fn)
	return func() {}
}

func (m *IdentityService) Notify(account *models.Account) {
	for _, fn := range m.listeners {
		fn(account)
	}
}
