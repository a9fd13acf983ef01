package handler

import (
	"net/http"
	"testing"

	"github.com/kitlog/kitlog-api/internal/model"
)

func TestNewEmailSignupDefaults(t *testing.T) {
	s := newEmailSignup(createSignupReq{Email: " Ada@Example.COM "})
	if s.Email != "ada@example.com" {
		t.Errorf("email = %q, want lowercased and trimmed", s.Email)
	}
	if s.Source != "landing_page" {
		t.Errorf("source = %q, want landing_page default", s.Source)
	}

	blank := "   "
	if s := newEmailSignup(createSignupReq{Email: "a@b.c", Source: &blank}); s.Source != "landing_page" {
		t.Errorf("blank source = %q, want landing_page default", s.Source)
	}

	newsletter := " newsletter "
	if s := newEmailSignup(createSignupReq{Email: "a@b.c", Source: &newsletter}); s.Source != "newsletter" {
		t.Errorf("source = %q, want trimmed newsletter", s.Source)
	}
}

func TestSignupCreateValidation(t *testing.T) {
	h := &SignupHandler{}
	for _, body := range []string{`{}`, `{"email":"   "}`, `{"email":"not-an-email"}`} {
		c, rec := testCtx(http.MethodPost, "/v1/signups", body)
		if err := h.Create(c); err != nil {
			t.Fatalf("Create(%s): %v", body, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Create(%s) = %d, want 400", body, rec.Code)
		}
	}
}

func TestSignupListRequiresAdmin(t *testing.T) {
	h := &SignupHandler{}

	c, rec := testCtx(http.MethodGet, "/v1/signups", "")
	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: status = %d, want 401", rec.Code)
	}

	c, rec = testCtx(http.MethodGet, "/v1/signups", "")
	asUser(c, model.User{ID: 1})
	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin: status = %d, want 403", rec.Code)
	}
}

func TestSignupCountRequiresAdmin(t *testing.T) {
	h := &SignupHandler{}
	c, rec := testCtx(http.MethodGet, "/v1/signups/count", "")
	asUser(c, model.User{ID: 1})
	if err := h.Count(c); err != nil {
		t.Fatalf("Count: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}
