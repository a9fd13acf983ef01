package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kitlog/kitlog-api/internal/repository"
)

// AuthHandler serves the identity sync surface. The heavy lifting (token
// introspection and user upsert) happens in the Authenticate middleware, so
// these handlers mostly report on the user the middleware resolved.
type AuthHandler struct {
	Users *repository.UserRepo
}

func NewAuthHandler(users *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Users: users}
}

// Sync handles POST /v1/auth/sync. The middleware has already reconciled the
// identity provider profile with the local users table; re-syncing identical
// data is a no-op overwrite, so the call is idempotent by construction.
func (h *AuthHandler) Sync(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, u)
}

// Me handles GET /v1/me.
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, u)
}

// CompleteOnboarding handles POST /v1/me/onboarding/complete.
func (h *AuthHandler) CompleteOnboarding(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := h.Users.MarkOnboarded(c.Request().Context(), u.ID); err != nil {
		return fail(c, err, "could not update onboarding")
	}
	u.Onboarded = true
	return c.JSON(http.StatusOK, echo.Map{"message": "onboarding completed", "user": u})
}
