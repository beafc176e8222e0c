package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voltworks/ev-service-api/internal/api/middleware"
	"github.com/voltworks/ev-service-api/internal/core/domain"
	"github.com/voltworks/ev-service-api/internal/core/ports"
)

// ctxScope extracts the identity injected by the Auth middleware and turns
// it into the access scope services use for ownership checks. A missing
// identity means the route was wired without the Auth middleware; fail
// closed with 401 rather than proceed unscoped.
func ctxScope(c echo.Context) (ports.AccessScope, error) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return ports.AccessScope{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.AccessScope{UserID: ident.ID, Role: ident.Role}, nil
}

// ctxIsAdmin reports whether the authenticated caller is an admin.
func ctxIsAdmin(c echo.Context) bool {
	ident, ok := middleware.IdentityFrom(c)
	return ok && ident.Role == domain.RoleAdmin
}
