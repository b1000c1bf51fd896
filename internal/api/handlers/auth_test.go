package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/fashionhub/internal/api/handlers"
	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	service "github.com/aaravmahajanofficial/fashionhub/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Login(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		// Arrange
		auth := service.NewAuthService(service.NewMockAuth())
		authHandler := handlers.NewAuthHandler(auth)
		rr := httptest.NewRecorder()

		// Act
		authHandler.Login().ServeHTTP(rr, newTestRequest(http.MethodPost, "/api/v1/auth/login", `{"email":"admin@test.com","password":"123456"}`))

		// Assert
		var state models.AuthState
		decode(t, rr, &state)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, state.IsAuthenticated)
		assert.True(t, state.User.IsAdmin)
		assert.Equal(t, "admin", state.User.Name)
	})

	t.Run("Invalid Input - Malformed Email", func(t *testing.T) {
		auth := service.NewAuthService(service.NewMockAuth())
		rr := httptest.NewRecorder()

		handlers.NewAuthHandler(auth).Login().ServeHTTP(rr, newTestRequest(http.MethodPost, "/api/v1/auth/login", `{"email":"nope","password":"123456"}`))

		resp := decode(t, rr, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, resp.Error.Details, "Field Email must be a valid email address")
		assert.False(t, auth.IsAuthenticated())
	})

	t.Run("Invalid Input - Short Password", func(t *testing.T) {
		auth := service.NewAuthService(service.NewMockAuth())
		rr := httptest.NewRecorder()

		handlers.NewAuthHandler(auth).Login().ServeHTTP(rr, newTestRequest(http.MethodPost, "/api/v1/auth/login", `{"email":"user@test.com","password":"12345"}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.False(t, auth.IsAuthenticated())
	})
}

func TestAuthHandler_Signup(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		auth := service.NewAuthService(service.NewMockAuth())
		rr := httptest.NewRecorder()
		body := `{"name":"Ada","email":"ada@test.com","password":"123456","confirm_password":"123456"}`

		handlers.NewAuthHandler(auth).Signup().ServeHTTP(rr, newTestRequest(http.MethodPost, "/api/v1/auth/signup", body))

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "Ada", auth.CurrentUser().Name)
	})

	t.Run("Invalid Input - Passwords Differ", func(t *testing.T) {
		auth := service.NewAuthService(service.NewMockAuth())
		rr := httptest.NewRecorder()
		body := `{"name":"Ada","email":"ada@test.com","password":"123456","confirm_password":"654321"}`

		handlers.NewAuthHandler(auth).Signup().ServeHTTP(rr, newTestRequest(http.MethodPost, "/api/v1/auth/signup", body))

		resp := decode(t, rr, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, resp.Error.Details, "Field ConfirmPassword must match Password")
		assert.False(t, auth.IsAuthenticated())
	})
}

func TestAuthHandler_LogoutAndMe(t *testing.T) {

	// Arrange
	auth := service.NewAuthService(service.NewMockAuth())
	require.True(t, auth.Login(t.Context(), "user@test.com", "123456"))
	authHandler := handlers.NewAuthHandler(auth)

	// Act
	rr := httptest.NewRecorder()
	authHandler.Logout().ServeHTTP(rr, newTestRequest(http.MethodPost, "/api/v1/auth/logout", ""))

	// Assert
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	authHandler.Me().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/v1/auth/me", ""))

	var state models.AuthState
	decode(t, rr, &state)
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.User)
}
