package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kitlog/kitlog-api/internal/model"
	"github.com/kitlog/kitlog-api/internal/repository"
)

// EquipmentHandler serves the equipment registry.
type EquipmentHandler struct {
	Equipment *repository.EquipmentRepo
}

func NewEquipmentHandler(equipment *repository.EquipmentRepo) *EquipmentHandler {
	return &EquipmentHandler{Equipment: equipment}
}

type createEquipmentReq struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	Category     string  `json:"category"`
	Brand        *string `json:"brand"`
	Model        *string `json:"model"`
	SerialNumber *string `json:"serial_number"`
	Condition    string  `json:"condition"`
	IsAvailable  *bool   `json:"is_available"`
	Location     *string `json:"location"`
	Notes        *string `json:"notes"`
	OwnerID      *uint64 `json:"owner_id"`
	TeamID       *uint64 `json:"team_id"`
}

type updateEquipmentReq struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	Brand        *string `json:"brand"`
	Model        *string `json:"model"`
	SerialNumber *string `json:"serial_number"`
	Condition    *string `json:"condition"`
	IsAvailable  *bool   `json:"is_available"`
	Location     *string `json:"location"`
	Notes        *string `json:"notes"`
	OwnerID      *uint64 `json:"owner_id"`
	TeamID       *uint64 `json:"team_id"`
}

// Create handles POST /v1/equipment. Duplicate serial numbers are a
// conflict; items without a serial never collide.
func (h *EquipmentHandler) Create(c echo.Context) error {
	var req createEquipmentReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	if req.Name == "" {
		return badRequest(c, "name is required")
	}
	if req.Category == "" {
		return badRequest(c, "category is required")
	}
	cond := req.Condition
	if cond == "" {
		cond = model.ConditionGood
	}
	if !model.ValidCondition(cond) {
		return badRequest(c, "invalid condition")
	}
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	if req.SerialNumber != nil && strings.TrimSpace(*req.SerialNumber) == "" {
		req.SerialNumber = nil
	}

	e := &model.Equipment{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Brand:        req.Brand,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		Condition:    cond,
		IsAvailable:  available,
		Location:     req.Location,
		Notes:        req.Notes,
		OwnerID:      req.OwnerID,
		TeamID:       req.TeamID,
	}
	if err := h.Equipment.Create(c.Request().Context(), e); err != nil {
		if err == repository.ErrConflict {
			return conflict(c, "serial number already exists")
		}
		return fail(c, err, "could not create equipment")
	}
	return c.JSON(http.StatusCreated, e)
}

// List handles GET /v1/equipment with optional category, availability and
// owner filters plus offset paging.
func (h *EquipmentHandler) List(c echo.Context) error {
	filter := repository.EquipmentFilter{
		Category:      c.QueryParam("category"),
		AvailableOnly: queryBool(c, "available_only"),
		OwnerID:       queryUint(c, "owner_id"),
		TeamID:        queryUint(c, "team_id"),
		Skip:          queryInt(c, "skip", 0),
		Limit:         queryInt(c, "limit", 100),
	}
	items, err := h.Equipment.List(c.Request().Context(), filter)
	if err != nil {
		return fail(c, err, "db error")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/equipment/:id.
func (h *EquipmentHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	e, err := h.Equipment.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "db error")
	}
	return c.JSON(http.StatusOK, e)
}

// Update handles PUT/PATCH /v1/equipment/:id, merging only supplied fields.
func (h *EquipmentHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var req updateEquipmentReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return badRequest(c, "name cannot be empty")
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) == "" {
		return badRequest(c, "category cannot be empty")
	}
	if req.Condition != nil && !model.ValidCondition(*req.Condition) {
		return badRequest(c, "invalid condition")
	}

	e, err := h.Equipment.Update(c.Request().Context(), id, repository.EquipmentUpdate{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Brand:        req.Brand,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		Condition:    req.Condition,
		IsAvailable:  req.IsAvailable,
		Location:     req.Location,
		Notes:        req.Notes,
		OwnerID:      req.OwnerID,
		TeamID:       req.TeamID,
	})
	if err != nil {
		if err == repository.ErrConflict {
			return conflict(c, "serial number already exists")
		}
		return fail(c, err, "update failed")
	}
	return c.JSON(http.StatusOK, e)
}

// Delete handles DELETE /v1/equipment/:id.
func (h *EquipmentHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.Equipment.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err, "delete failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "equipment deleted"})
}

// Categories handles GET /v1/equipment/categories.
func (h *EquipmentHandler) Categories(c echo.Context) error {
	cats, err := h.Equipment.Categories(c.Request().Context())
	if err != nil {
		return fail(c, err, "db error")
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": cats})
}

// Stats handles GET /v1/equipment/stats, optionally scoped with owner_id or
// team_id query parameters.
func (h *EquipmentHandler) Stats(c echo.Context) error {
	stats, err := h.Equipment.Stats(c.Request().Context(),
		queryUint(c, "owner_id"), queryUint(c, "team_id"))
	if err != nil {
		return fail(c, err, "db error")
	}
	return c.JSON(http.StatusOK, stats)
}
