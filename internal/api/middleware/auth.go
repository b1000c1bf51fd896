package middleware

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/fashionhub/internal/errors"
	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	"github.com/aaravmahajanofficial/fashionhub/internal/utils/response"
)

// UserSource reports the user signed in to this storefront session.
type UserSource interface {
	CurrentUser() *models.User
}

type AuthMiddleware struct {
	users UserSource
}

func NewAuthMiddleware(users UserSource) *AuthMiddleware {

	return &AuthMiddleware{users: users}

}

// RequireAdmin lets the request through only for a signed in administrator.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		user := m.users.CurrentUser()
		if user == nil {
			logger.Warn("Admin request without a signed in user")
			response.Error(w, errors.UnauthorizedError("Sign in required"))
			return
		}

		if !user.IsAdmin {
			logger.Warn("Admin request rejected", slog.String("userID", user.ID))
			response.Error(w, errors.ForbiddenError("Administrator access required"))
			return
		}

		next.ServeHTTP(w, r)
	}
}
