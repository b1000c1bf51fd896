package service

import (
	"context"
	"strings"

	"github.com/aaravmahajanofficial/fashionhub/internal/errors"
	"github.com/aaravmahajanofficial/fashionhub/internal/models"
)

const (
	mockUserID        = "1"
	minPasswordLength = 6
)

// mockAuth accepts any non-empty email with a long enough password. Nothing
// is stored; an email containing "admin" is treated as an administrator.
type mockAuth struct{}

func NewMockAuth() AuthProvider {
	return mockAuth{}
}

func (mockAuth) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || len(password) < minPasswordLength {
		return nil, errors.UnauthorizedError("Invalid email or password")
	}

	name, _, _ := strings.Cut(email, "@")

	return &models.User{
		ID:      mockUserID,
		Email:   email,
		Name:    name,
		IsAdmin: strings.Contains(email, "admin"),
	}, nil
}

func (mockAuth) Signup(ctx context.Context, email, password, name string) (*models.User, error) {
	if email == "" || len(password) < minPasswordLength || name == "" {
		return nil, errors.ValidationError("Email, name and a password of at least 6 characters are required")
	}

	return &models.User{
		ID:    mockUserID,
		Email: email,
		Name:  name,
	}, nil
}

func (mockAuth) Logout(ctx context.Context) error {
	return nil
}

func (mockAuth) Restore(ctx context.Context) (*models.User, error) {
	return nil, nil
}
