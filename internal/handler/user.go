package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kitlog/kitlog-api/internal/repository"
)

// UserHandler serves the user directory.
type UserHandler struct {
	Users *repository.UserRepo
}

func NewUserHandler(users *repository.UserRepo) *UserHandler {
	return &UserHandler{Users: users}
}

// List handles GET /v1/users with offset paging.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context(),
		queryInt(c, "skip", 0), queryInt(c, "limit", 100))
	if err != nil {
		return fail(c, err, "db error")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": users})
}

// Get handles GET /v1/users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "db error")
	}
	return c.JSON(http.StatusOK, u)
}
