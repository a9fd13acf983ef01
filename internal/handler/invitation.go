package handler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kitlog/kitlog-api/internal/model"
	"github.com/kitlog/kitlog-api/internal/queue"
	"github.com/kitlog/kitlog-api/internal/repository"
	"github.com/kitlog/kitlog-api/internal/service"
	"github.com/kitlog/kitlog-api/internal/utils"
)

// InvitationHandler serves the invitation workflow.
type InvitationHandler struct {
	Teams   *repository.TeamRepo
	Members *repository.MembershipRepo
	Invites *repository.InvitationRepo
	TTLDays int
}

func NewInvitationHandler(teams *repository.TeamRepo, members *repository.MembershipRepo, invites *repository.InvitationRepo, ttlDays int) *InvitationHandler {
	if ttlDays <= 0 {
		ttlDays = 7
	}
	return &InvitationHandler{Teams: teams, Members: members, Invites: invites, TTLDays: ttlDays}
}

type createInvitationReq struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type updateInvitationReq struct {
	Role string `json:"role"`
}

// Create handles POST /v1/teams/:id/invitations. Invitations are gated on
// the paid tier and on the inviter holding owner or admin; at most one
// pending invitation may exist per (team, email).
func (h *InvitationHandler) Create(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	teamID, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var req createInvitationReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return badRequest(c, "a valid email is required")
	}
	role := req.Role
	if role == "" {
		role = model.RoleMember
	}
	if !model.ValidRole(role) {
		return badRequest(c, "role must be owner, admin or member")
	}

	ctx := c.Request().Context()
	team, err := h.Teams.GetByID(ctx, teamID)
	if err != nil {
		return fail(c, err, "db error")
	}
	if team.SubscriptionTier != model.TierPaid {
		return forbidden(c, "team invitations require a paid subscription")
	}
	allowed, err := h.Members.HasRole(ctx, teamID, u.ID, model.RoleOwner, model.RoleAdmin)
	if err != nil {
		return fail(c, err, "db error")
	}
	if !allowed {
		return forbidden(c, "only team owners and admins can send invitations")
	}

	token, err := utils.NewInviteToken()
	if err != nil {
		return fail(c, err, "could not generate token")
	}
	inv := &model.TeamInvitation{
		TeamID:    teamID,
		Email:     email,
		Role:      role,
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(time.Duration(h.TTLDays) * 24 * time.Hour),
		InvitedBy: u.ID,
	}
	if err := h.Invites.Create(ctx, inv); err != nil {
		if err == repository.ErrConflict {
			return conflict(c, "there is already a pending invitation for this email")
		}
		return fail(c, err, "could not create invitation")
	}

	// Best effort: a broker outage must not fail the request.
	ev := queue.InviteCreatedEvent{
		InvitationID: inv.ID,
		TeamID:       team.ID,
		TeamName:     team.Name,
		Email:        inv.Email,
		Role:         inv.Role,
		Token:        inv.Token,
		InvitedBy:    u.ID,
		InviterName:  u.Name,
		ExpiresAt:    inv.ExpiresAt.Format(time.RFC3339),
		CreatedAt:    inv.CreatedAt.Format(time.RFC3339),
	}
	if err := service.PublishInviteCreated(ctx, ev); err != nil {
		log.Printf("invitation: publish event failed: %v", err)
	}

	return c.JSON(http.StatusCreated, inv)
}

// ListByTeam handles GET /v1/teams/:id/invitations for owners and admins.
func (h *InvitationHandler) ListByTeam(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	teamID, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx := c.Request().Context()
	if _, err := h.Teams.GetByID(ctx, teamID); err != nil {
		return fail(c, err, "db error")
	}
	allowed, err := h.Members.HasRole(ctx, teamID, u.ID, model.RoleOwner, model.RoleAdmin)
	if err != nil {
		return fail(c, err, "db error")
	}
	if !allowed {
		return forbidden(c, "only team owners and admins can view invitations")
	}
	invites, err := h.Invites.ListByTeam(ctx, teamID)
	if err != nil {
		return fail(c, err, "db error")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": invites})
}

// GetByToken handles GET /v1/invitations/:token. The route is public so an
// invitee can preview the invitation before signing in; expired and consumed
// tokens are rejected.
func (h *InvitationHandler) GetByToken(c echo.Context) error {
	inv, err := h.Invites.GetByToken(c.Request().Context(), c.Param("token"))
	if err != nil {
		return fail(c, err, "db error")
	}
	if inv.IsAccepted {
		return conflict(c, "invitation has already been accepted")
	}
	if inv.Expired(time.Now().UTC()) {
		return badRequest(c, "invitation has expired")
	}
	return c.JSON(http.StatusOK, inv)
}

// Accept handles POST /v1/invitations/:token/accept. State is re-validated
// inside the accepting transaction; marking the invitation consumed and
// inserting the membership happen atomically.
func (h *InvitationHandler) Accept(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	m, err := h.Invites.Accept(c.Request().Context(), c.Param("token"), u.ID, time.Now().UTC())
	if err != nil {
		switch err {
		case repository.ErrExpired:
			return badRequest(c, "invitation has expired")
		case repository.ErrConflict:
			return conflict(c, "invitation already accepted or user is already a member")
		}
		return fail(c, err, "accept failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "invitation accepted", "membership": m})
}

// Cancel handles DELETE /v1/teams/:id/invitations/:invitationID for owners
// and admins. Accepted invitations cannot be cancelled.
func (h *InvitationHandler) Cancel(c echo.Context) error {
	id, err := h.scopedInvitation(c)
	if err != nil {
		return err
	}
	if id == 0 {
		return nil // response already written
	}
	if err := h.Invites.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrConflict {
			return conflict(c, "cannot cancel an accepted invitation")
		}
		return fail(c, err, "cancel failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "invitation cancelled"})
}

// Update handles PUT /v1/teams/:id/invitations/:invitationID and overwrites
// the proposed role of a still-pending invitation.
func (h *InvitationHandler) Update(c echo.Context) error {
	id, err := h.scopedInvitation(c)
	if err != nil {
		return err
	}
	if id == 0 {
		return nil
	}
	var req updateInvitationReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if !model.ValidRole(req.Role) {
		return badRequest(c, "role must be owner, admin or member")
	}
	inv, err := h.Invites.UpdateRole(c.Request().Context(), id, req.Role, time.Now().UTC())
	if err != nil {
		if err == repository.ErrConflict {
			return conflict(c, "cannot update an accepted or expired invitation")
		}
		return fail(c, err, "update failed")
	}
	return c.JSON(http.StatusOK, inv)
}

// scopedInvitation authorizes a team-scoped invitation mutation: the caller
// must be an owner or admin of the team and the invitation must belong to it.
// On failure the response has already been written and the returned id is 0.
func (h *InvitationHandler) scopedInvitation(c echo.Context) (uint64, error) {
	u, ok := currentUser(c)
	if !ok {
		return 0, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	teamID, err := paramID(c, "id")
	if err != nil {
		return 0, badRequest(c, "invalid id")
	}
	id, err := paramID(c, "invitationID")
	if err != nil {
		return 0, badRequest(c, "invalid invitation id")
	}

	ctx := c.Request().Context()
	if _, err := h.Teams.GetByID(ctx, teamID); err != nil {
		return 0, fail(c, err, "db error")
	}
	allowed, err := h.Members.HasRole(ctx, teamID, u.ID, model.RoleOwner, model.RoleAdmin)
	if err != nil {
		return 0, fail(c, err, "db error")
	}
	if !allowed {
		return 0, forbidden(c, "only team owners and admins can manage invitations")
	}
	inv, err := h.Invites.GetByID(ctx, id)
	if err != nil {
		return 0, fail(c, err, "db error")
	}
	if inv.TeamID != teamID {
		return 0, notFound(c, "not found")
	}
	return id, nil
}
