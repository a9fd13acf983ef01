package handler

import (
	"net/http"
	"testing"
)

func TestEquipmentCreateValidation(t *testing.T) {
	h := &EquipmentHandler{}
	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"category":"camera"}`},
		{"missing category", `{"name":"Canon C70"}`},
		{"bad condition", `{"name":"Canon C70","category":"camera","condition":"mint"}`},
	}
	for _, tc := range cases {
		c, rec := testCtx(http.MethodPost, "/v1/equipment", tc.body)
		if err := h.Create(c); err != nil {
			t.Fatalf("%s: Create: %v", tc.name, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}
}

func TestEquipmentUpdateValidation(t *testing.T) {
	h := &EquipmentHandler{}
	cases := []struct {
		name string
		body string
	}{
		{"blank name", `{"name":"  "}`},
		{"blank category", `{"category":""}`},
		{"bad condition", `{"condition":"mint"}`},
	}
	for _, tc := range cases {
		c, rec := testCtx(http.MethodPut, "/v1/equipment/1", tc.body)
		c.SetParamNames("id")
		c.SetParamValues("1")
		if err := h.Update(c); err != nil {
			t.Fatalf("%s: Update: %v", tc.name, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}
}

func TestEquipmentGetBadID(t *testing.T) {
	h := &EquipmentHandler{}
	c, rec := testCtx(http.MethodGet, "/v1/equipment/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
