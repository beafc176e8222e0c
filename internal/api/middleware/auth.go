package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/voltworks/ev-service-api/internal/auth"
	"github.com/voltworks/ev-service-api/internal/core/domain"
)

const bearerPrefix = "Bearer "

// TokenVerifier is the slice of the token codec the gate needs. Kept small
// so tests can fake it easily.
type TokenVerifier interface {
	Verify(token string) (*auth.Assertion, error)
}

// AccountLookup fetches the current account state for a verified subject.
type AccountLookup interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Auth validates the bearer assertion and resolves the caller's identity.
//
// The assertion's role claim is never the final authority: the account is
// re-fetched on every request so role changes and disabled flags take
// effect immediately. That is one store read per authenticated request,
// a deliberate freshness-over-performance trade-off.
func Auth(verifier TokenVerifier, accounts AccountLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				return c.JSON(http.StatusUnauthorized, rejection{
					Message: "missing bearer token",
					Code:    CodeMissingToken,
				})
			}
			raw := strings.TrimSpace(header[len(bearerPrefix):])
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, rejection{
					Message: "missing bearer token",
					Code:    CodeMissingToken,
				})
			}

			assertion, err := verifier.Verify(raw)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrNoSecret):
					return c.JSON(http.StatusInternalServerError, rejection{
						Message: "authentication is not configured",
						Code:    CodeServerError,
					})
				case errors.Is(err, auth.ErrTokenExpired):
					return c.JSON(http.StatusUnauthorized, rejection{
						Message: "token expired",
						Code:    CodeTokenExpired,
					})
				default:
					return c.JSON(http.StatusUnauthorized, rejection{
						Message: "invalid token",
						Code:    CodeInvalidToken,
					})
				}
			}

			user, err := accounts.FindByID(c.Request().Context(), assertion.SubjectID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return c.JSON(http.StatusUnauthorized, rejection{
						Message: "account no longer exists",
						Code:    CodeUserNotFound,
					})
				}
				return c.JSON(http.StatusInternalServerError, rejection{
					Message: "could not resolve identity",
					Code:    CodeServerError,
				})
			}

			if user.IsDisabled {
				return c.JSON(http.StatusForbidden, rejection{
					Message: "account is disabled",
					Code:    CodeAccountDisabled,
				})
			}

			SetIdentity(c, Identity{
				ID:          user.ID,
				Role:        user.EffectiveRole(),
				Email:       user.Email,
				Username:    user.Username,
				FullName:    user.FullName,
				PhoneNumber: user.PhoneNumber,
				PhotoURL:    user.PhotoURL,
				Gender:      user.Gender,
				IsDisabled:  user.IsDisabled,
			})

			return next(c)
		}
	}
}

// OptionalAuth resolves an identity when a valid bearer token is presented
// and lets the request through anonymously otherwise. Used on routes that
// are open to the public but behave differently for privileged callers,
// such as registration, where an admin may create staff accounts.
func OptionalAuth(verifier TokenVerifier, accounts AccountLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				return next(c)
			}
			raw := strings.TrimSpace(header[len(bearerPrefix):])
			if raw == "" {
				return next(c)
			}

			assertion, err := verifier.Verify(raw)
			if err != nil {
				return next(c)
			}
			user, err := accounts.FindByID(c.Request().Context(), assertion.SubjectID)
			if err != nil || user.IsDisabled {
				return next(c)
			}

			SetIdentity(c, Identity{
				ID:          user.ID,
				Role:        user.EffectiveRole(),
				Email:       user.Email,
				Username:    user.Username,
				FullName:    user.FullName,
				PhoneNumber: user.PhoneNumber,
				PhotoURL:    user.PhotoURL,
				Gender:      user.Gender,
				IsDisabled:  user.IsDisabled,
			})

			return next(c)
		}
	}
}
