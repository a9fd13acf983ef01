package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kitlog/kitlog-api/internal/model"
	"github.com/kitlog/kitlog-api/internal/repository"
)

// TeamHandler serves the team directory.
type TeamHandler struct {
	Teams   *repository.TeamRepo
	Members *repository.MembershipRepo
}

func NewTeamHandler(teams *repository.TeamRepo, members *repository.MembershipRepo) *TeamHandler {
	return &TeamHandler{Teams: teams, Members: members}
}

type createTeamReq struct {
	Name             string  `json:"name"`
	Description      *string `json:"description"`
	SubscriptionTier string  `json:"subscription_tier"`
}

type updateTeamReq struct {
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	SubscriptionTier *string `json:"subscription_tier"`
}

// Create handles POST /v1/teams. The creator becomes the team's first and
// only owner in the same transaction as the team row.
func (h *TeamHandler) Create(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createTeamReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return badRequest(c, "name is required")
	}
	tier := req.SubscriptionTier
	if tier == "" {
		tier = model.TierFree
	}
	if !model.ValidTier(tier) {
		return badRequest(c, "subscription_tier must be free or paid")
	}

	team := &model.Team{Name: req.Name, Description: req.Description, SubscriptionTier: tier}
	if err := h.Teams.Create(c.Request().Context(), team, u.ID); err != nil {
		return fail(c, err, "could not create team")
	}
	return c.JSON(http.StatusCreated, team)
}

// List handles GET /v1/teams and returns all active teams.
func (h *TeamHandler) List(c echo.Context) error {
	teams, err := h.Teams.List(c.Request().Context())
	if err != nil {
		return fail(c, err, "db error")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": teams})
}

// Get handles GET /v1/teams/:id. Archived teams behave as not found.
func (h *TeamHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	team, err := h.Teams.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "db error")
	}
	return c.JSON(http.StatusOK, team)
}

// Update handles PUT/PATCH /v1/teams/:id. Only owners and admins may update;
// only supplied fields are merged.
func (h *TeamHandler) Update(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var req updateTeamReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return badRequest(c, "name cannot be empty")
	}
	if req.SubscriptionTier != nil && !model.ValidTier(*req.SubscriptionTier) {
		return badRequest(c, "subscription_tier must be free or paid")
	}

	ctx := c.Request().Context()
	if _, err := h.Teams.GetByID(ctx, id); err != nil {
		return fail(c, err, "db error")
	}
	allowed, err := h.Members.HasRole(ctx, id, u.ID, model.RoleOwner, model.RoleAdmin)
	if err != nil {
		return fail(c, err, "db error")
	}
	if !allowed {
		return forbidden(c, "only team owners and admins can update a team")
	}

	team, err := h.Teams.Update(ctx, id, repository.TeamUpdate{
		Name:             req.Name,
		Description:      req.Description,
		SubscriptionTier: req.SubscriptionTier,
	})
	if err != nil {
		return fail(c, err, "update failed")
	}
	return c.JSON(http.StatusOK, team)
}

// Delete handles DELETE /v1/teams/:id: a soft delete that archives the team.
// Only owners may archive.
func (h *TeamHandler) Delete(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}

	ctx := c.Request().Context()
	if _, err := h.Teams.GetByID(ctx, id); err != nil {
		return fail(c, err, "db error")
	}
	isOwner, err := h.Members.HasRole(ctx, id, u.ID, model.RoleOwner)
	if err != nil {
		return fail(c, err, "db error")
	}
	if !isOwner {
		return forbidden(c, "only team owners can delete a team")
	}

	if err := h.Teams.Archive(ctx, id); err != nil {
		return fail(c, err, "delete failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "team deleted"})
}

// UserTeams handles GET /v1/users/:id/teams. Users see their own teams;
// admins see anyone's.
func (h *TeamHandler) UserTeams(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if u.ID != id && !u.IsAdmin {
		return forbidden(c, "insufficient permissions")
	}
	teams, err := h.Teams.ListByUser(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "db error")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": teams})
}
