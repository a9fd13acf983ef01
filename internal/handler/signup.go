package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kitlog/kitlog-api/internal/model"
	"github.com/kitlog/kitlog-api/internal/repository"
)

// SignupHandler serves the public marketing signup list.
type SignupHandler struct {
	Signups *repository.SignupRepo
}

func NewSignupHandler(signups *repository.SignupRepo) *SignupHandler {
	return &SignupHandler{Signups: signups}
}

type createSignupReq struct {
	Name   *string `json:"name"`
	Email  string  `json:"email"`
	Source *string `json:"source"`
}

// defaultSignupSource tags signups that arrive without an explicit source.
const defaultSignupSource = "landing_page"

// newEmailSignup normalizes a signup request: the email is lowercased and
// trimmed, and an absent or blank source falls back to the default.
func newEmailSignup(req createSignupReq) model.EmailSignup {
	source := defaultSignupSource
	if req.Source != nil && strings.TrimSpace(*req.Source) != "" {
		source = strings.TrimSpace(*req.Source)
	}
	return model.EmailSignup{
		Name:   req.Name,
		Email:  strings.ToLower(strings.TrimSpace(req.Email)),
		Source: source,
	}
}

// Create handles POST /v1/signups. The route is public; a repeated email is
// a conflict.
func (h *SignupHandler) Create(c echo.Context) error {
	var req createSignupReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	s := newEmailSignup(req)
	if s.Email == "" || !strings.Contains(s.Email, "@") {
		return badRequest(c, "a valid email is required")
	}

	if err := h.Signups.Create(c.Request().Context(), &s); err != nil {
		if err == repository.ErrConflict {
			return conflict(c, "email is already signed up")
		}
		return fail(c, err, "could not record signup")
	}
	return c.JSON(http.StatusCreated, s)
}

// List handles GET /v1/signups for platform admins.
func (h *SignupHandler) List(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !u.IsAdmin {
		return forbidden(c, "insufficient permissions")
	}
	items, err := h.Signups.List(c.Request().Context(),
		queryInt(c, "skip", 0), queryInt(c, "limit", 100))
	if err != nil {
		return fail(c, err, "db error")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Count handles GET /v1/signups/count for platform admins.
func (h *SignupHandler) Count(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !u.IsAdmin {
		return forbidden(c, "insufficient permissions")
	}
	n, err := h.Signups.Count(c.Request().Context())
	if err != nil {
		return fail(c, err, "db error")
	}
	return c.JSON(http.StatusOK, echo.Map{"count": n})
}
