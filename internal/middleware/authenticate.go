package middleware // middleware provides shared request processing for handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kitlog/kitlog-api/internal/auth"
	"github.com/kitlog/kitlog-api/internal/repository"
)

// userKey is the Echo context key the authenticated local user is stored
// under. Handlers read it back through CurrentUser.
const userKey = "current_user"

// Authenticate resolves the request's bearer token to an identity provider
// profile, syncs it into the local users table and stores the resulting user
// in the request context. The credential is resolved exactly once per
// request; there is no global or thread-local user state. Requests without a
// valid bearer are rejected with 401, an unreachable provider with 500.
func Authenticate(intr auth.Introspector, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			token := strings.TrimPrefix(header, "Bearer ")

			profile, err := intr.Introspect(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, auth.ErrInvalidToken) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "identity provider unavailable"})
			}

			user, err := users.Sync(c.Request().Context(), profile)
			if err != nil {
				if errors.Is(err, repository.ErrMissingSubject) {
					return c.JSON(http.StatusBadRequest, echo.Map{"error": "profile subject is required"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "user sync failed"})
			}
			if !user.IsActive {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "account disabled"})
			}

			c.Set(userKey, user)
			return next(c)
		}
	}
}
