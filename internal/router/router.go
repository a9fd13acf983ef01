// Package router wires the HTTP surface onto an Echo instance. Routes are
// split into a public set (health, signups, invitation preview) and a
// protected /v1 group behind bearer authentication.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/kitlog/kitlog-api/internal/handler"
)

// Handlers bundles everything the route table needs.
type Handlers struct {
	Auth        *handler.AuthHandler
	Users       *handler.UserHandler
	Teams       *handler.TeamHandler
	Members     *handler.MemberHandler
	Invitations *handler.InvitationHandler
	Equipment   *handler.EquipmentHandler
	Checkouts   *handler.CheckoutHandler
	Signups     *handler.SignupHandler
}

// RegisterPublic registers routes that work without a bearer token: the
// health check, the marketing signup and the invitation preview an invitee
// opens from their email before signing in. The extra middleware (typically
// the response cache) applies to the read-only routes.
func RegisterPublic(e *echo.Echo, h Handlers, mw ...echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)
	e.POST("/v1/signups", h.Signups.Create)
	e.GET("/v1/invitations/:token", h.Invitations.GetByToken, mw...)
}

// RegisterAPI registers the protected surface under /v1. Every route in the
// group runs the given authentication middleware first.
func RegisterAPI(e *echo.Echo, h Handlers, authn echo.MiddlewareFunc) {
	g := e.Group("/v1", authn)

	// Identity.
	g.POST("/auth/sync", h.Auth.Sync)
	g.GET("/me", h.Auth.Me)
	g.POST("/me/onboarding/complete", h.Auth.CompleteOnboarding)

	// User directory.
	g.GET("/users", h.Users.List)
	g.GET("/users/:id", h.Users.Get)
	g.GET("/users/:id/teams", h.Teams.UserTeams)
	g.GET("/users/:id/memberships", h.Members.ByUser)

	// Teams.
	g.POST("/teams", h.Teams.Create)
	g.GET("/teams", h.Teams.List)
	g.GET("/teams/:id", h.Teams.Get)
	g.PUT("/teams/:id", h.Teams.Update)
	g.PATCH("/teams/:id", h.Teams.Update)
	g.DELETE("/teams/:id", h.Teams.Delete)

	// Memberships.
	g.POST("/teams/:id/members", h.Members.Add)
	g.GET("/teams/:id/members", h.Members.List)
	g.PUT("/teams/:id/members/:userID", h.Members.UpdateRole)
	g.DELETE("/teams/:id/members/:userID", h.Members.Remove)

	// Invitations. Token-addressed acceptance lives beside the public
	// preview route; management is scoped to the owning team.
	g.POST("/teams/:id/invitations", h.Invitations.Create)
	g.GET("/teams/:id/invitations", h.Invitations.ListByTeam)
	g.PUT("/teams/:id/invitations/:invitationID", h.Invitations.Update)
	g.DELETE("/teams/:id/invitations/:invitationID", h.Invitations.Cancel)
	g.POST("/invitations/:token/accept", h.Invitations.Accept)

	// Equipment registry. Static segments must be registered so they are
	// not swallowed by the :id parameter.
	g.POST("/equipment", h.Equipment.Create)
	g.GET("/equipment", h.Equipment.List)
	g.GET("/equipment/categories", h.Equipment.Categories)
	g.GET("/equipment/stats", h.Equipment.Stats)
	g.GET("/equipment/:id", h.Equipment.Get)
	g.PUT("/equipment/:id", h.Equipment.Update)
	g.PATCH("/equipment/:id", h.Equipment.Update)
	g.DELETE("/equipment/:id", h.Equipment.Delete)

	// Checkouts.
	g.POST("/equipment/:id/checkout", h.Checkouts.Checkout)
	g.POST("/equipment/:id/checkin", h.Checkouts.Checkin)
	g.GET("/equipment/:id/checkouts", h.Checkouts.History)

	// Marketing signups (admin views; creation is public).
	g.GET("/signups", h.Signups.List)
	g.GET("/signups/count", h.Signups.Count)
}
