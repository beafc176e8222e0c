package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voltworks/ev-service-api/internal/core/domain"
)

// RBAC enforces role-based access control over the fixed role hierarchy
// (admin=4, staff=3, technician=2, customer=1).
//
// Admins bypass the check entirely. Every other caller must both appear
// in allowedRoles and hold a level at least the minimum level present in
// allowedRoles. The second condition is kept alongside membership because
// the allowed sets declared on routes are not always upward-closed.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	required := make([]string, 0, len(allowedRoles))
	minLevel := 0
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
		required = append(required, string(r))
		if lvl := r.Level(); minLevel == 0 || lvl < minLevel {
			minLevel = lvl
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := IdentityFrom(c)
			if !ok {
				// Authorization ran before authentication; a pipeline
				// wiring error, not a client fault.
				return c.JSON(http.StatusUnauthorized, rejection{
					Message: "authentication required",
					Code:    CodeAuthRequired,
				})
			}

			if !ident.Role.Known() {
				return c.JSON(http.StatusForbidden, rejection{
					Message: fmt.Sprintf("role %q is not defined", ident.Role),
					Code:    CodeRoleNotDefined,
				})
			}

			if ident.Role == domain.RoleAdmin {
				return next(c)
			}

			if _, ok := allowed[ident.Role]; !ok {
				return c.JSON(http.StatusForbidden, rejection{
					Message:  fmt.Sprintf("role %s is not permitted for this operation", ident.Role),
					Code:     CodeInsufficientPerms,
					Required: required,
					Current:  string(ident.Role),
				})
			}

			if ident.Role.Level() < minLevel {
				return c.JSON(http.StatusForbidden, rejection{
					Message:  fmt.Sprintf("role %s is below the required privilege level", ident.Role),
					Code:     CodeInsufficientLevel,
					Required: required,
					Current:  string(ident.Role),
				})
			}

			return next(c)
		}
	}
}
