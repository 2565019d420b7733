package middleware

import (
	"unione/internal/delivery/http/response"
	"unione/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware guards routes that need an authenticated session. The portal
// holds one process-wide session, so there is no per-request token to check;
// the guard asks the session provider for the current state.
type AuthMiddleware struct {
	session usecase.SessionUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(session usecase.SessionUsecase) *AuthMiddleware {
	return &AuthMiddleware{session: session}
}

// RequireSession rejects the request unless a session is active.
func (m *AuthMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		snapshot := m.session.Current()
		if !snapshot.Authenticated() {
			return response.Unauthorized(c, "AUTH_REQUIRED", "Please login to continue")
		}

		// Expose the snapshot so handlers avoid a second provider read.
		c.Set("identity", snapshot.Identity)
		c.Set("profile", snapshot.Profile)

		return next(c)
	}
}
