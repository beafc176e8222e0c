package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/voltworks/ev-service-api/internal/core/domain"
	"github.com/voltworks/ev-service-api/internal/core/ports"
)

// VehicleHandler handles vehicle registry endpoints.
type VehicleHandler struct {
	vehicles ports.VehicleService
}

func NewVehicleHandler(vehicles ports.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

type createVehicleRequest struct {
	Make        string  `json:"make"         validate:"required"`
	Model       string  `json:"model"        validate:"required"`
	Year        int     `json:"year"         validate:"required,gte=2008"`
	VIN         string  `json:"vin"          validate:"required,len=17"`
	PlateNumber string  `json:"plate_number"`
	BatteryKWh  float64 `json:"battery_kwh"  validate:"gte=0"`
	MileageKm   int     `json:"mileage_km"   validate:"gte=0"`
	// OwnerID lets staff register a vehicle on a customer's behalf.
	OwnerID string `json:"owner_id"`
}

type updateVehicleRequest struct {
	PlateNumber *string `json:"plate_number"`
	MileageKm   *int    `json:"mileage_km" validate:"omitempty,gte=0"`
}

type vehicleResponse struct {
	ID          string  `json:"id"`
	OwnerID     string  `json:"owner_id"`
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	Year        int     `json:"year"`
	VIN         string  `json:"vin"`
	PlateNumber string  `json:"plate_number,omitempty"`
	BatteryKWh  float64 `json:"battery_kwh,omitempty"`
	MileageKm   int     `json:"mileage_km"`
	CreatedAt   string  `json:"created_at"`
}

type vehicleListResponse struct {
	Vehicles []*vehicleResponse `json:"vehicles"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	Limit    int                `json:"limit"`
}

func toVehicleResponse(v *domain.Vehicle) *vehicleResponse {
	return &vehicleResponse{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		Make:        v.Make,
		Model:       v.Model,
		Year:        v.Year,
		VIN:         v.VIN,
		PlateNumber: v.PlateNumber,
		BatteryKWh:  v.BatteryKWh,
		MileageKm:   v.MileageKm,
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Create handles POST /v1/vehicles.
//
// @Summary      Register a vehicle
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createVehicleRequest  true  "Vehicle details"
// @Success      201   {object}  vehicleResponse
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/vehicles [post]
func (h *VehicleHandler) Create(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req createVehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ownerID := scope.UserID
	if req.OwnerID != "" && scope.Elevated() {
		ownerID = req.OwnerID
	}

	vehicle, err := h.vehicles.Create(c.Request().Context(), ports.CreateVehicleInput{
		OwnerID:     ownerID,
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		VIN:         req.VIN,
		PlateNumber: req.PlateNumber,
		BatteryKWh:  req.BatteryKWh,
		MileageKm:   req.MileageKm,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toVehicleResponse(vehicle))
}

// Get handles GET /v1/vehicles/:id.
//
// @Summary      Get a vehicle by ID
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Vehicle ID"
// @Success      200  {object}  vehicleResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/vehicles/{id} [get]
func (h *VehicleHandler) Get(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	vehicle, err := h.vehicles.Get(c.Request().Context(), scope, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVehicleResponse(vehicle))
}

// List handles GET /v1/vehicles. Customers only see their own vehicles.
//
// @Summary      List vehicles
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        make   query     string  false  "Filter by manufacturer"
// @Param        page   query     int     false  "Page (1-based)"
// @Param        limit  query     int     false  "Page size (max 100)"
// @Success      200    {object}  vehicleListResponse
// @Router       /v1/vehicles [get]
func (h *VehicleHandler) List(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	filter := ports.ListVehiclesFilter{
		Make:  c.QueryParam("make"),
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 20),
	}

	vehicles, total, err := h.vehicles.List(c.Request().Context(), scope, filter)
	if err != nil {
		return err
	}

	out := make([]*vehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehicleResponse(v))
	}
	return c.JSON(http.StatusOK, vehicleListResponse{
		Vehicles: out,
		Total:    total,
		Page:     filter.Page,
		Limit:    filter.Limit,
	})
}

// Update handles PATCH /v1/vehicles/:id.
//
// @Summary      Update a vehicle
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Vehicle ID"
// @Param        body  body      updateVehicleRequest  true  "Fields to change"
// @Success      200   {object}  vehicleResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/vehicles/{id} [patch]
func (h *VehicleHandler) Update(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req updateVehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	vehicle, err := h.vehicles.Update(c.Request().Context(), scope, c.Param("id"), ports.VehicleUpdate{
		PlateNumber: req.PlateNumber,
		MileageKm:   req.MileageKm,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVehicleResponse(vehicle))
}

// Delete handles DELETE /v1/vehicles/:id.
//
// @Summary      Delete a vehicle
// @Tags         vehicles
// @Security     BearerAuth
// @Param        id  path  string  true  "Vehicle ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	if err := h.vehicles.Delete(c.Request().Context(), scope, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
