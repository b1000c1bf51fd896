package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/fashionhub/internal/api/middleware"
	"github.com/aaravmahajanofficial/fashionhub/internal/errors"
	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	service "github.com/aaravmahajanofficial/fashionhub/internal/services"
	"github.com/aaravmahajanofficial/fashionhub/internal/utils"
	"github.com/aaravmahajanofficial/fashionhub/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	auth      *service.AuthService
	validator *validator.Validate
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth, validator: utils.NewValidator()}
}

// Login godoc
//	@Summary		Log in
//	@Description	Signs in with email and password.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body	models.LoginRequest	true	"Login credentials"
//	@Success		200	{object}	models.AuthState	"Signed in"
//	@Failure		400	{object}	response.ErrorResponse	"Validation error"
//	@Failure		401	{object}	response.ErrorResponse	"Invalid email or password"
//	@Router			/auth/login [post]
func (h *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if !h.auth.Login(r.Context(), req.Email, req.Password) {
			logger.Warn("Login failed", slog.String("email", req.Email))
			response.Error(w, errors.UnauthorizedError("Invalid email or password"))
			return
		}

		logger.Info("User logged in", slog.String("userID", h.auth.CurrentUser().ID))
		response.Success(w, http.StatusOK, h.auth.State())
	}
}

// Signup godoc
//	@Summary		Sign up
//	@Description	Creates an account and signs it in.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			account	body	models.SignupRequest	true	"Account details"
//	@Success		201	{object}	models.AuthState	"Signed in"
//	@Failure		400	{object}	response.ErrorResponse	"Validation error or account not created"
//	@Router			/auth/signup [post]
func (h *AuthHandler) Signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.SignupRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if !h.auth.Signup(r.Context(), req.Email, req.Password, req.Name) {
			logger.Warn("Signup failed", slog.String("email", req.Email))
			response.Error(w, errors.BadRequestError("Could not create account"))
			return
		}

		logger.Info("User signed up", slog.String("userID", h.auth.CurrentUser().ID))
		response.Success(w, http.StatusCreated, h.auth.State())
	}
}

// Logout godoc
//	@Summary		Log out
//	@Description	Signs the current user out.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	models.AuthState	"Signed out"
//	@Router			/auth/logout [post]
func (h *AuthHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.auth.Logout(r.Context())

		response.Success(w, http.StatusOK, h.auth.State())
	}
}

// Me godoc
//	@Summary		Current auth state
//	@Description	Reports whether someone is signed in and who.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	models.AuthState	"Auth state"
//	@Router			/auth/me [get]
func (h *AuthHandler) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.auth.State())
	}
}
