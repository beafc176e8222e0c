package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/voltworks/ev-service-api/internal/core/domain"
	"github.com/voltworks/ev-service-api/internal/core/ports"
)

// TechnicianHandler handles workshop technician profiles.
type TechnicianHandler struct {
	technicians ports.TechnicianService
}

func NewTechnicianHandler(technicians ports.TechnicianService) *TechnicianHandler {
	return &TechnicianHandler{technicians: technicians}
}

type createTechnicianRequest struct {
	UserID      string   `json:"user_id"     validate:"required"`
	Specialties []string `json:"specialties"`
}

type addCertificateRequest struct {
	Name      string     `json:"name"       validate:"required"`
	Issuer    string     `json:"issuer"     validate:"required"`
	IssuedAt  time.Time  `json:"issued_at"  validate:"required"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type setActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// Create handles POST /v1/technicians.
//
// @Summary      Create a technician profile
// @Tags         technicians
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTechnicianRequest  true  "Linked account and specialties"
// @Success      201   {object}  domain.Technician
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/technicians [post]
func (h *TechnicianHandler) Create(c echo.Context) error {
	var req createTechnicianRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	technician, err := h.technicians.Create(c.Request().Context(), ports.CreateTechnicianInput{
		UserID:      req.UserID,
		Specialties: req.Specialties,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, technician)
}

// Get handles GET /v1/technicians/:id.
//
// @Summary      Get a technician profile
// @Tags         technicians
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Technician ID"
// @Success      200  {object}  domain.Technician
// @Failure      404  {object}  map[string]string
// @Router       /v1/technicians/{id} [get]
func (h *TechnicianHandler) Get(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	technician, err := h.technicians.Get(c.Request().Context(), scope, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, technician)
}

// List handles GET /v1/technicians.
//
// @Summary      List technicians
// @Tags         technicians
// @Produce      json
// @Security     BearerAuth
// @Param        active  query    bool  false  "Only active technicians"
// @Success      200     {array}  domain.Technician
// @Router       /v1/technicians [get]
func (h *TechnicianHandler) List(c echo.Context) error {
	technicians, err := h.technicians.List(c.Request().Context(), c.QueryParam("active") == "true")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, technicians)
}

// AddCertificate handles POST /v1/technicians/:id/certificates.
//
// @Summary      Add a certificate to a technician
// @Tags         technicians
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Technician ID"
// @Param        body  body      addCertificateRequest  true  "Certificate details"
// @Success      200   {object}  domain.Technician
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/technicians/{id}/certificates [post]
func (h *TechnicianHandler) AddCertificate(c echo.Context) error {
	var req addCertificateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	cert := domain.Certificate{
		Name:     req.Name,
		Issuer:   req.Issuer,
		IssuedAt: req.IssuedAt,
	}
	if req.ExpiresAt != nil {
		cert.ExpiresAt = *req.ExpiresAt
	}

	technician, err := h.technicians.AddCertificate(c.Request().Context(), c.Param("id"), cert)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, technician)
}

// SetActive handles PATCH /v1/technicians/:id/active.
//
// @Summary      Activate or deactivate a technician
// @Tags         technicians
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Technician ID"
// @Param        body  body      setActiveRequest  true  "Active flag"
// @Success      200   {object}  domain.Technician
// @Failure      404   {object}  map[string]string
// @Router       /v1/technicians/{id}/active [patch]
func (h *TechnicianHandler) SetActive(c echo.Context) error {
	var req setActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	technician, err := h.technicians.SetActive(c.Request().Context(), c.Param("id"), *req.Active)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, technician)
}
