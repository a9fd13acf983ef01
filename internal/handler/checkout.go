package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kitlog/kitlog-api/internal/repository"
)

// CheckoutHandler serves equipment checkout and check-in.
type CheckoutHandler struct {
	Checkouts *repository.CheckoutRepo
}

func NewCheckoutHandler(checkouts *repository.CheckoutRepo) *CheckoutHandler {
	return &CheckoutHandler{Checkouts: checkouts}
}

type checkoutReq struct {
	Notes   *string    `json:"notes"`
	DueDate *time.Time `json:"due_date"`
}

type checkinReq struct {
	Notes *string `json:"notes"`
}

// Checkout handles POST /v1/equipment/:id/checkout. An unavailable item or
// one that already has an active checkout is a conflict.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var req checkoutReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.DueDate != nil && req.DueDate.Before(time.Now().UTC()) {
		return badRequest(c, "due_date must be in the future")
	}

	co, err := h.Checkouts.Checkout(c.Request().Context(), id, u.ID, req.Notes, req.DueDate)
	if err != nil {
		if err == repository.ErrConflict {
			return conflict(c, "equipment is already checked out")
		}
		return fail(c, err, "checkout failed")
	}
	return c.JSON(http.StatusCreated, co)
}

// Checkin handles POST /v1/equipment/:id/checkin. Without an active checkout
// there is nothing to close.
func (h *CheckoutHandler) Checkin(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var req checkinReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	co, err := h.Checkouts.Checkin(c.Request().Context(), id, req.Notes, time.Now().UTC())
	if err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "no active checkout for this equipment")
		}
		return fail(c, err, "checkin failed")
	}
	return c.JSON(http.StatusOK, co)
}

// History handles GET /v1/equipment/:id/checkouts.
func (h *CheckoutHandler) History(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	items, err := h.Checkouts.ListByEquipment(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "db error")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
