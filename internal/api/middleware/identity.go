package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/voltworks/ev-service-api/internal/core/domain"
)

// identityKey is the echo context key the Auth middleware stores the
// resolved identity under.
const identityKey = "auth.identity"

// Identity is the per-request account snapshot attached after successful
// authentication. It lives for the request only.
type Identity struct {
	ID          string
	Role        domain.Role
	Email       string
	Username    string
	FullName    string
	PhoneNumber string
	PhotoURL    string
	Gender      string
	IsDisabled  bool
}

// IdentityFrom extracts the resolved identity set by the Auth middleware.
func IdentityFrom(c echo.Context) (Identity, bool) {
	ident, ok := c.Get(identityKey).(Identity)
	return ident, ok
}

// SetIdentity attaches an identity to the request context. Exported for
// handler tests that bypass the Auth middleware.
func SetIdentity(c echo.Context, ident Identity) {
	c.Set(identityKey, ident)
}

// rejection is the JSON envelope returned on every gate rejection.
// Required and Current are only populated on authorization denials.
type rejection struct {
	Message  string   `json:"message"`
	Code     string   `json:"code"`
	Required []string `json:"required,omitempty"`
	Current  string   `json:"current,omitempty"`
}

// Stable rejection codes. Clients dispatch on these, not on messages.
const (
	CodeMissingToken      = "MISSING_TOKEN"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeTokenExpired      = "TOKEN_EXPIRED"
	CodeUserNotFound      = "USER_NOT_FOUND"
	CodeAccountDisabled   = "ACCOUNT_DISABLED"
	CodeAuthRequired      = "AUTH_REQUIRED"
	CodeRoleNotDefined    = "ROLE_NOT_DEFINED"
	CodeInsufficientPerms = "INSUFFICIENT_PERMISSIONS"
	CodeInsufficientLevel = "INSUFFICIENT_ROLE_LEVEL"
	CodeServerError       = "SERVER_ERROR"
)
