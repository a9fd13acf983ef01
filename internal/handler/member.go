package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kitlog/kitlog-api/internal/model"
	"github.com/kitlog/kitlog-api/internal/repository"
)

// MemberHandler serves the membership ledger.
type MemberHandler struct {
	Teams   *repository.TeamRepo
	Members *repository.MembershipRepo
}

func NewMemberHandler(teams *repository.TeamRepo, members *repository.MembershipRepo) *MemberHandler {
	return &MemberHandler{Teams: teams, Members: members}
}

type addMemberReq struct {
	UserID uint64 `json:"user_id"`
	Role   string `json:"role"`
}

type updateMemberReq struct {
	Role string `json:"role"`
}

// Add handles POST /v1/teams/:id/members. A duplicate (team, user) pair is
// a conflict.
func (h *MemberHandler) Add(c echo.Context) error {
	teamID, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var req addMemberReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.UserID == 0 {
		return badRequest(c, "user_id is required")
	}
	role := req.Role
	if role == "" {
		role = model.RoleMember
	}
	if !model.ValidRole(role) {
		return badRequest(c, "role must be owner, admin or member")
	}

	ctx := c.Request().Context()
	if _, err := h.Teams.GetByID(ctx, teamID); err != nil {
		return fail(c, err, "db error")
	}
	m, err := h.Members.Add(ctx, teamID, req.UserID, role)
	if err != nil {
		if err == repository.ErrConflict {
			return conflict(c, "user is already a member of this team")
		}
		return fail(c, err, "could not add member")
	}
	return c.JSON(http.StatusCreated, m)
}

// List handles GET /v1/teams/:id/members.
func (h *MemberHandler) List(c echo.Context) error {
	teamID, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx := c.Request().Context()
	if _, err := h.Teams.GetByID(ctx, teamID); err != nil {
		return fail(c, err, "db error")
	}
	members, err := h.Members.ListByTeam(ctx, teamID)
	if err != nil {
		return fail(c, err, "db error")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": members})
}

// UpdateRole handles PUT /v1/teams/:id/members/:userID. Demoting a team's
// last owner is rejected the same way removing them is.
func (h *MemberHandler) UpdateRole(c echo.Context) error {
	teamID, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	userID, err := paramID(c, "userID")
	if err != nil {
		return badRequest(c, "invalid user id")
	}
	var req updateMemberReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if !model.ValidRole(req.Role) {
		return badRequest(c, "role must be owner, admin or member")
	}

	ctx := c.Request().Context()
	if _, err := h.Teams.GetByID(ctx, teamID); err != nil {
		return fail(c, err, "db error")
	}
	m, err := h.Members.UpdateRole(ctx, teamID, userID, req.Role)
	if err != nil {
		if err == repository.ErrConflict {
			return conflict(c, "cannot demote the last owner of a team")
		}
		return fail(c, err, "update failed")
	}
	return c.JSON(http.StatusOK, m)
}

// Remove handles DELETE /v1/teams/:id/members/:userID. Removing the last
// owner is a conflict: a team must always retain at least one owner.
func (h *MemberHandler) Remove(c echo.Context) error {
	teamID, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	userID, err := paramID(c, "userID")
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	ctx := c.Request().Context()
	if _, err := h.Teams.GetByID(ctx, teamID); err != nil {
		return fail(c, err, "db error")
	}
	if err := h.Members.Remove(ctx, teamID, userID); err != nil {
		if err == repository.ErrConflict {
			return conflict(c, "cannot remove the last owner of a team")
		}
		return fail(c, err, "remove failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "member removed"})
}

// ByUser handles GET /v1/users/:id/memberships.
func (h *MemberHandler) ByUser(c echo.Context) error {
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
	memberships, err := h.Members.ListByUser(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "db error")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": memberships})
}
