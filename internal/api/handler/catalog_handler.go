package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voltworks/ev-service-api/internal/core/domain"
	"github.com/voltworks/ev-service-api/internal/core/ports"
)

// CatalogHandler handles the maintenance service catalog and packages.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type createServiceRequest struct {
	Name            string  `json:"name"             validate:"required"`
	Description     string  `json:"description"`
	Category        string  `json:"category"         validate:"required"`
	Price           float64 `json:"price"            validate:"gte=0"`
	DurationMinutes int     `json:"duration_minutes" validate:"gt=0"`
}

type updateServiceRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"            validate:"omitempty,gte=0"`
	DurationMinutes *int     `json:"duration_minutes" validate:"omitempty,gt=0"`
	Active          *bool    `json:"active"`
}

type createPackageRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Description string   `json:"description"`
	ServiceIDs  []string `json:"service_ids" validate:"required,min=1"`
	Price       float64  `json:"price"       validate:"gte=0"`
}

type serviceListResponse struct {
	Services []*domain.MaintenanceService `json:"services"`
	Total    int64                        `json:"total"`
	Page     int                          `json:"page"`
	Limit    int                          `json:"limit"`
}

// CreateService handles POST /v1/services.
//
// @Summary      Create a catalog service
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createServiceRequest  true  "Service details"
// @Success      201   {object}  domain.MaintenanceService
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/services [post]
func (h *CatalogHandler) CreateService(c echo.Context) error {
	var req createServiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	svc, err := h.catalog.CreateService(c.Request().Context(), ports.CreateServiceInput{
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, svc)
}

// GetService handles GET /v1/services/:id.
//
// @Summary      Get a catalog service
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Service ID"
// @Success      200  {object}  domain.MaintenanceService
// @Failure      404  {object}  map[string]string
// @Router       /v1/services/{id} [get]
func (h *CatalogHandler) GetService(c echo.Context) error {
	svc, err := h.catalog.GetService(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, svc)
}

// ListServices handles GET /v1/services. Any authenticated role may
// browse the catalog before booking.
//
// @Summary      List catalog services
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        category  query     string  false  "Filter by category"
// @Param        active    query     bool    false  "Only active services"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  serviceListResponse
// @Router       /v1/services [get]
func (h *CatalogHandler) ListServices(c echo.Context) error {
	filter := ports.ListServicesFilter{
		Category:   c.QueryParam("category"),
		ActiveOnly: c.QueryParam("active") == "true",
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 20),
	}

	services, total, err := h.catalog.ListServices(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serviceListResponse{
		Services: services,
		Total:    total,
		Page:     filter.Page,
		Limit:    filter.Limit,
	})
}

// UpdateService handles PATCH /v1/services/:id.
//
// @Summary      Update a catalog service
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Service ID"
// @Param        body  body      updateServiceRequest  true  "Fields to change"
// @Success      200   {object}  domain.MaintenanceService
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/services/{id} [patch]
func (h *CatalogHandler) UpdateService(c echo.Context) error {
	var req updateServiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	svc, err := h.catalog.UpdateService(c.Request().Context(), c.Param("id"), ports.ServiceUpdate{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Active:          req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, svc)
}

// DeleteService handles DELETE /v1/services/:id.
//
// @Summary      Delete a catalog service
// @Tags         catalog
// @Security     BearerAuth
// @Param        id  path  string  true  "Service ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/services/{id} [delete]
func (h *CatalogHandler) DeleteService(c echo.Context) error {
	if err := h.catalog.DeleteService(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreatePackage handles POST /v1/packages.
//
// @Summary      Create a service package
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPackageRequest  true  "Package details"
// @Success      201   {object}  domain.ServicePackage
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/packages [post]
func (h *CatalogHandler) CreatePackage(c echo.Context) error {
	var req createPackageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	pkg, err := h.catalog.CreatePackage(c.Request().Context(), ports.CreatePackageInput{
		Name:        req.Name,
		Description: req.Description,
		ServiceIDs:  req.ServiceIDs,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, pkg)
}

// GetPackage handles GET /v1/packages/:id.
//
// @Summary      Get a service package
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Package ID"
// @Success      200  {object}  domain.ServicePackage
// @Failure      404  {object}  map[string]string
// @Router       /v1/packages/{id} [get]
func (h *CatalogHandler) GetPackage(c echo.Context) error {
	pkg, err := h.catalog.GetPackage(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pkg)
}

// ListPackages handles GET /v1/packages.
//
// @Summary      List service packages
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        active  query     bool  false  "Only active packages"
// @Success      200     {array}   domain.ServicePackage
// @Router       /v1/packages [get]
func (h *CatalogHandler) ListPackages(c echo.Context) error {
	packages, err := h.catalog.ListPackages(c.Request().Context(), c.QueryParam("active") == "true")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, packages)
}

// DeletePackage handles DELETE /v1/packages/:id.
//
// @Summary      Delete a service package
// @Tags         catalog
// @Security     BearerAuth
// @Param        id  path  string  true  "Package ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/packages/{id} [delete]
func (h *CatalogHandler) DeletePackage(c echo.Context) error {
	if err := h.catalog.DeletePackage(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
