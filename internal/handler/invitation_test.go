package handler

import (
	"net/http"
	"testing"

	"github.com/kitlog/kitlog-api/internal/model"
)

func TestNewInvitationHandlerDefaultTTL(t *testing.T) {
	h := NewInvitationHandler(nil, nil, nil, 0)
	if h.TTLDays != 7 {
		t.Fatalf("TTLDays = %d, want 7", h.TTLDays)
	}
	h = NewInvitationHandler(nil, nil, nil, 14)
	if h.TTLDays != 14 {
		t.Fatalf("TTLDays = %d, want 14", h.TTLDays)
	}
}

func TestInvitationCreateRequiresUser(t *testing.T) {
	h := &InvitationHandler{}
	c, rec := testCtx(http.MethodPost, "/v1/teams/1/invitations", `{"email":"a@b.c"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestInvitationCreateValidation(t *testing.T) {
	h := &InvitationHandler{}
	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{}`},
		{"not an email", `{"email":"nope"}`},
		{"bad role", `{"email":"a@b.c","role":"boss"}`},
	}
	for _, tc := range cases {
		c, rec := testCtx(http.MethodPost, "/v1/teams/1/invitations", tc.body)
		asUser(c, model.User{ID: 1})
		c.SetParamNames("id")
		c.SetParamValues("1")
		if err := h.Create(c); err != nil {
			t.Fatalf("%s: Create: %v", tc.name, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}
}

func TestInvitationUpdateValidation(t *testing.T) {
	h := &InvitationHandler{}
	c, rec := testCtx(http.MethodPut, "/v1/teams/abc/invitations/1", `{"role":"member"}`)
	asUser(c, model.User{ID: 1})
	c.SetParamNames("id", "invitationID")
	c.SetParamValues("abc", "1")
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
