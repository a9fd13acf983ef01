package router

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kitlog/kitlog-api/internal/handler"
)

func registerAll(t *testing.T) *echo.Echo {
	t.Helper()
	h := Handlers{
		Auth:        handler.NewAuthHandler(nil),
		Users:       handler.NewUserHandler(nil),
		Teams:       handler.NewTeamHandler(nil, nil),
		Members:     handler.NewMemberHandler(nil, nil),
		Invitations: handler.NewInvitationHandler(nil, nil, nil, 7),
		Equipment:   handler.NewEquipmentHandler(nil),
		Checkouts:   handler.NewCheckoutHandler(nil),
		Signups:     handler.NewSignupHandler(nil),
	}
	e := echo.New()
	RegisterPublic(e, h)
	RegisterAPI(e, h, func(next echo.HandlerFunc) echo.HandlerFunc { return next })
	return e
}

func TestRouteTable(t *testing.T) {
	e := registerAll(t)

	want := map[string]bool{
		http.MethodGet + " /healthz":                                    false,
		http.MethodPost + " /v1/signups":                                false,
		http.MethodGet + " /v1/invitations/:token":                      false,
		http.MethodPost + " /v1/invitations/:token/accept":              false,
		http.MethodPost + " /v1/auth/sync":                              false,
		http.MethodGet + " /v1/me":                                      false,
		http.MethodPost + " /v1/me/onboarding/complete":                 false,
		http.MethodGet + " /v1/users/:id/teams":                         false,
		http.MethodGet + " /v1/users/:id/memberships":                   false,
		http.MethodPost + " /v1/teams":                                  false,
		http.MethodDelete + " /v1/teams/:id":                            false,
		http.MethodPut + " /v1/teams/:id/members/:userID":               false,
		http.MethodPost + " /v1/teams/:id/invitations":                  false,
		http.MethodDelete + " /v1/teams/:id/invitations/:invitationID":  false,
		http.MethodGet + " /v1/equipment/categories":                    false,
		http.MethodGet + " /v1/equipment/stats":                         false,
		http.MethodPost + " /v1/equipment/:id/checkout":                 false,
		http.MethodPost + " /v1/equipment/:id/checkin":                  false,
		http.MethodGet + " /v1/equipment/:id/checkouts":                 false,
		http.MethodGet + " /v1/signups/count":                           false,
	}
	for _, r := range e.Routes() {
		key := r.Method + " " + r.Path
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}
	for key, seen := range want {
		if !seen {
			t.Errorf("route %s not registered", key)
		}
	}
}
