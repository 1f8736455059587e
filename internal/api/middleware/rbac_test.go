package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func invokeRBAC(t *testing.T, role any, allowed ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	if err := RBAC(allowed...)(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec
}

func TestRBAC_AllowedRole(t *testing.T) {
	rec := invokeRBAC(t, "admin", "admin")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_ForbiddenRole(t *testing.T) {
	rec := invokeRBAC(t, "user", "admin")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRBAC_MissingRole(t *testing.T) {
	rec := invokeRBAC(t, nil, "admin")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without a role, got %d", rec.Code)
	}
}
