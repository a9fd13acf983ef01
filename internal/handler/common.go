// Package handler contains the HTTP surface: request validation, calls into
// the repositories and translation of error kinds to status codes.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kitlog/kitlog-api/internal/middleware"
	"github.com/kitlog/kitlog-api/internal/model"
	"github.com/kitlog/kitlog-api/internal/repository"
)

// fail maps repository error kinds to their fixed status codes. Anything
// unrecognized is an internal error with the given fallback message.
func fail(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrExpired):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "expired"})
	case errors.Is(err, repository.ErrMissingSubject):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": fallback})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

func forbidden(c echo.Context, msg string) error {
	return c.JSON(http.StatusForbidden, echo.Map{"error": msg})
}

func conflict(c echo.Context, msg string) error {
	return c.JSON(http.StatusConflict, echo.Map{"error": msg})
}

func notFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": msg})
}

// currentUser pulls the authenticated user set by the Authenticate
// middleware. Routes registered without it hit the ok=false branch and
// should return 401.
func currentUser(c echo.Context) (model.User, bool) {
	return middleware.CurrentUser(c)
}

// paramID parses a numeric path parameter.
func paramID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// queryInt parses an optional integer query parameter with a default.
func queryInt(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

// queryUint parses an optional uint64 query parameter; absent or malformed
// values yield zero (meaning "no filter").
func queryUint(c echo.Context, name string) uint64 {
	n, _ := strconv.ParseUint(c.QueryParam(name), 10, 64)
	return n
}

func queryBool(c echo.Context, name string) bool {
	v := c.QueryParam(name)
	return v == "1" || v == "true"
}
