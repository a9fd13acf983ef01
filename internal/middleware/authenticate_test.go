package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kitlog/kitlog-api/internal/auth"
	"github.com/kitlog/kitlog-api/internal/model"
)

type stubIntrospector struct {
	profile auth.Profile
	err     error
}

func (s stubIntrospector) Introspect(context.Context, string) (auth.Profile, error) {
	return s.profile, s.err
}

func runAuth(t *testing.T, intr auth.Introspector, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Authenticate(intr, nil)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestAuthenticateMissingBearer(t *testing.T) {
	rec := runAuth(t, stubIntrospector{}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	rec := runAuth(t, stubIntrospector{}, "Basic dXNlcjpwYXNz")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	rec := runAuth(t, stubIntrospector{err: auth.ErrInvalidToken}, "Bearer bad")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateUpstreamDown(t *testing.T) {
	rec := runAuth(t, stubIntrospector{err: auth.ErrUpstream}, "Bearer tok")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestCurrentUserAbsent(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if _, ok := CurrentUser(c); ok {
		t.Fatal("CurrentUser reported a user on a bare context")
	}
}

func TestCurrentUserRoundTrip(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set(userKey, model.User{ID: 7, Subject: "auth0|7"})

	u, ok := CurrentUser(c)
	if !ok || u.ID != 7 {
		t.Fatalf("CurrentUser = %+v, %v", u, ok)
	}
}
