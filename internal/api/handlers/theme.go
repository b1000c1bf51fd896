package handlers

import (
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	service "github.com/aaravmahajanofficial/fashionhub/internal/services"
	"github.com/aaravmahajanofficial/fashionhub/internal/utils"
	"github.com/aaravmahajanofficial/fashionhub/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// ColorSchemeHeader is the client hint carrying the host's light/dark preference.
const ColorSchemeHeader = "Sec-CH-Prefers-Color-Scheme"

type ThemeHandler struct {
	theme     *service.ThemeService
	validator *validator.Validate
}

func NewThemeHandler(theme *service.ThemeService) *ThemeHandler {
	return &ThemeHandler{theme: theme, validator: utils.NewValidator()}
}

// GetTheme godoc
//	@Summary		Get the theme
//	@Description	Returns the mode, the effective scheme and its palette. The Sec-CH-Prefers-Color-Scheme header updates the host scheme.
//	@Tags			Theme
//	@Produce		json
//	@Param			Sec-CH-Prefers-Color-Scheme	header	string	false	"Host color scheme"
//	@Success		200	{object}	models.ThemeState	"Theme state"
//	@Router			/theme [get]
func (h *ThemeHandler) GetTheme() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.recordHostScheme(r)

		response.Success(w, http.StatusOK, h.theme.State())
	}
}

// SetTheme godoc
//	@Summary		Set the theme mode
//	@Description	Sets light, dark or auto.
//	@Tags			Theme
//	@Accept			json
//	@Produce		json
//	@Param			mode	body	models.SetThemeRequest	true	"Theme mode"
//	@Success		200	{object}	models.ThemeState	"Theme state"
//	@Failure		400	{object}	response.ErrorResponse	"Validation error"
//	@Router			/theme [put]
func (h *ThemeHandler) SetTheme() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.SetThemeRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		h.recordHostScheme(r)

		if err := h.theme.SetMode(req.Mode); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, h.theme.State())
	}
}

// ToggleTheme godoc
//	@Summary		Toggle the theme mode
//	@Description	Cycles auto, light, dark and back to auto.
//	@Tags			Theme
//	@Produce		json
//	@Success		200	{object}	models.ThemeState	"Theme state"
//	@Router			/theme/toggle [post]
func (h *ThemeHandler) ToggleTheme() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.recordHostScheme(r)
		h.theme.Toggle()

		response.Success(w, http.StatusOK, h.theme.State())
	}
}

// the hint value may be quoted, as in `"dark"`
func (h *ThemeHandler) recordHostScheme(r *http.Request) {
	hint := r.Header.Get(ColorSchemeHeader)
	if hint == "" {
		return
	}

	h.theme.SetSystemScheme(models.Scheme(strings.ToLower(strings.Trim(hint, `" `))))
}
