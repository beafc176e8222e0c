package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/voltworks/ev-service-api/internal/core/domain"
)

func runRBAC(t *testing.T, ident *Identity, allowed ...domain.Role) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if ident != nil {
		SetIdentity(c, *ident)
	}

	called := false
	handler := RBAC(allowed...)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, called
}

func TestRBAC_AllowsMember(t *testing.T) {
	rec, called := runRBAC(t, &Identity{ID: "u1", Role: domain.RoleStaff},
		domain.RoleStaff, domain.RoleTechnician)

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_AdminBypass(t *testing.T) {
	// Admin passes even when not listed in the allowed set.
	rec, called := runRBAC(t, &Identity{ID: "u1", Role: domain.RoleAdmin},
		domain.RoleTechnician)

	if !called {
		t.Fatalf("admin should bypass the allowed set")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_NoIdentity(t *testing.T) {
	rec, called := runRBAC(t, nil, domain.RoleStaff)

	if called {
		t.Fatalf("next should not be called without an identity")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if rej := decodeRejection(t, rec); rej.Code != CodeAuthRequired {
		t.Fatalf("expected %s, got %s", CodeAuthRequired, rej.Code)
	}
}

func TestRBAC_UnknownRole(t *testing.T) {
	rec, called := runRBAC(t, &Identity{ID: "u1", Role: "superuser"}, domain.RoleStaff)

	if called {
		t.Fatalf("next should not be called for an unrecognised role")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if rej := decodeRejection(t, rec); rej.Code != CodeRoleNotDefined {
		t.Fatalf("expected %s, got %s", CodeRoleNotDefined, rej.Code)
	}
}

func TestRBAC_NotInAllowedSet(t *testing.T) {
	rec, called := runRBAC(t, &Identity{ID: "u1", Role: domain.RoleCustomer},
		domain.RoleAdmin, domain.RoleStaff)

	if called {
		t.Fatalf("next should not be called")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	rej := decodeRejection(t, rec)
	if rej.Code != CodeInsufficientPerms {
		t.Fatalf("expected %s, got %s", CodeInsufficientPerms, rej.Code)
	}
	if rej.Current != string(domain.RoleCustomer) {
		t.Fatalf("expected current role in rejection, got %q", rej.Current)
	}
	if len(rej.Required) != 2 {
		t.Fatalf("expected required roles in rejection, got %v", rej.Required)
	}
}

func TestRBAC_TechnicianAllowedWithStaff(t *testing.T) {
	// Non-upward-closed set: technician (level 2) sits below staff
	// (level 3) but is explicitly listed, so membership and the level
	// floor both pass.
	rec, called := runRBAC(t, &Identity{ID: "u1", Role: domain.RoleTechnician},
		domain.RoleStaff, domain.RoleTechnician)

	if !called {
		t.Fatalf("technician should be allowed when listed")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_StaffNotListedDespiteHigherLevel(t *testing.T) {
	// A higher level alone is not enough; the role must be listed.
	rec, called := runRBAC(t, &Identity{ID: "u1", Role: domain.RoleStaff},
		domain.RoleTechnician)

	if called {
		t.Fatalf("staff should be rejected when not listed")
	}
	if rej := decodeRejection(t, rec); rej.Code != CodeInsufficientPerms {
		t.Fatalf("expected %s, got %s", CodeInsufficientPerms, rej.Code)
	}
}
