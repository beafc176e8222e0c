package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voltworks/ev-service-api/internal/api/metrics"
	"github.com/voltworks/ev-service-api/internal/api/middleware"
	"github.com/voltworks/ev-service-api/internal/core/domain"
	"github.com/voltworks/ev-service-api/internal/core/ports"
)

// AuthHandler handles registration, login and identity introspection.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username    string `json:"username"     validate:"required,min=3"`
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=8"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"` // honoured only for admin callers
}

type loginRequest struct {
	Login    string `json:"login"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	FullName    string `json:"full_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
	Gender      string `json:"gender,omitempty"`
	IsDisabled  bool   `json:"is_disabled"`
}

type authResponse struct {
	Token string        `json:"token,omitempty"`
	User  *userResponse `json:"user,omitempty"`
}

func toUserResponse(u *domain.User) *userResponse {
	return &userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        string(u.EffectiveRole()),
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		PhotoURL:    u.PhotoURL,
		Gender:      u.Gender,
		IsDisabled:  u.IsDisabled,
	}
}

// Register creates a new account. Unauthenticated callers always get a
// customer account; authenticated admins may set any role.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		Role:        domain.Role(req.Role),
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		AsAdmin:     ctxIsAdmin(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: toUserResponse(user)})
}

// Login authenticates by email or username and returns a signed token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials (login accepts email or username)"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Login, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, authResponse{Token: token, User: toUserResponse(user)})
}

// Me returns the authenticated caller's profile.
//
// @Summary      Current account profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return c.JSON(http.StatusOK, userResponse{
		ID:          ident.ID,
		Username:    ident.Username,
		Email:       ident.Email,
		Role:        string(ident.Role),
		FullName:    ident.FullName,
		PhoneNumber: ident.PhoneNumber,
		PhotoURL:    ident.PhotoURL,
		Gender:      ident.Gender,
		IsDisabled:  ident.IsDisabled,
	})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUserNotFound):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrAccountDisabled):
		return "disabled"
	default:
		return "error"
	}
}
