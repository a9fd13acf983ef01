package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/kitlog/kitlog-api/internal/model"
)

// CurrentUser returns the user placed in the context by Authenticate. The
// second return is false on routes that skipped the middleware.
func CurrentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(userKey).(model.User)
	return u, ok
}
