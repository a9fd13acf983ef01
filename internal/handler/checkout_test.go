package handler

import (
	"net/http"
	"testing"

	"github.com/kitlog/kitlog-api/internal/model"
)

func TestCheckoutRequiresUser(t *testing.T) {
	h := &CheckoutHandler{}
	c, rec := testCtx(http.MethodPost, "/v1/equipment/1/checkout", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.Checkout(c); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestCheckoutRejectsPastDueDate(t *testing.T) {
	h := &CheckoutHandler{}
	c, rec := testCtx(http.MethodPost, "/v1/equipment/1/checkout",
		`{"due_date":"2020-01-01T00:00:00Z"}`)
	asUser(c, model.User{ID: 1})
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.Checkout(c); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCheckinBadID(t *testing.T) {
	h := &CheckoutHandler{}
	c, rec := testCtx(http.MethodPost, "/v1/equipment/abc/checkin", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	if err := h.Checkin(c); err != nil {
		t.Fatalf("Checkin: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
