package handler

import (
	"net/http"
	"testing"

	"github.com/kitlog/kitlog-api/internal/model"
)

func TestTeamCreateRequiresUser(t *testing.T) {
	h := &TeamHandler{}
	c, rec := testCtx(http.MethodPost, "/v1/teams", `{"name":"AV Crew"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestTeamCreateValidation(t *testing.T) {
	h := &TeamHandler{}
	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{}`},
		{"blank name", `{"name":"   "}`},
		{"bad tier", `{"name":"AV Crew","subscription_tier":"platinum"}`},
		{"malformed body", `{"name":`},
	}
	for _, tc := range cases {
		c, rec := testCtx(http.MethodPost, "/v1/teams", tc.body)
		asUser(c, model.User{ID: 1})
		if err := h.Create(c); err != nil {
			t.Fatalf("%s: Create: %v", tc.name, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}
}

func TestTeamUpdateValidation(t *testing.T) {
	h := &TeamHandler{}

	c, rec := testCtx(http.MethodPut, "/v1/teams/1", `{"name":" "}`)
	asUser(c, model.User{ID: 1})
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank name: status = %d, want 400", rec.Code)
	}

	c, rec = testCtx(http.MethodPut, "/v1/teams/abc", `{"name":"x"}`)
	asUser(c, model.User{ID: 1})
	c.SetParamNames("id")
	c.SetParamValues("abc")
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id: status = %d, want 400", rec.Code)
	}
}

func TestUserTeamsForbiddenForOthers(t *testing.T) {
	h := &TeamHandler{}
	c, rec := testCtx(http.MethodGet, "/v1/users/2/teams", "")
	asUser(c, model.User{ID: 1})
	c.SetParamNames("id")
	c.SetParamValues("2")
	if err := h.UserTeams(c); err != nil {
		t.Fatalf("UserTeams: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}
