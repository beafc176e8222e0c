package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/voltworks/ev-service-api/internal/api/metrics"
	"github.com/voltworks/ev-service-api/internal/core/domain"
	"github.com/voltworks/ev-service-api/internal/core/ports"
)

// AppointmentHandler handles booking and lifecycle endpoints.
type AppointmentHandler struct {
	appointments ports.AppointmentService
}

func NewAppointmentHandler(appointments ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

// Book handles POST /v1/appointments.
//
// @Summary      Book an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookAppointmentRequest  true  "Booking details"
// @Success      201   {object}  bookAppointmentResponse
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/appointments [post]
func (h *AppointmentHandler) Book(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req bookAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if len(req.ServiceIDs) == 0 && req.PackageID == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "either service_ids or package_id is required")
	}

	result, err := h.appointments.Book(c.Request().Context(), toBookInput(req, scope.UserID))
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			metrics.BookingConflictsTotal.Inc()
		}
		return err
	}
	metrics.AppointmentsBookedTotal.WithLabelValues(packageLabel(req.PackageID)).Inc()

	return c.JSON(http.StatusCreated, toBookResponse(result))
}

// Get handles GET /v1/appointments/:code.
//
// @Summary      Get an appointment by confirmation code
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        code  path      string  true  "Confirmation code (e.g. EV-7A8B9C2D)"
// @Success      200   {object}  appointmentResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/appointments/{code} [get]
func (h *AppointmentHandler) Get(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	appointment, err := h.appointments.Get(c.Request().Context(), scope, c.Param("code"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAppointmentResponse(appointment))
}

// List handles GET /v1/appointments. Customers only see their own bookings.
//
// @Summary      List appointments
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        status         query     string  false  "Filter by status"
// @Param        technician_id  query     string  false  "Filter by assigned technician"
// @Param        date_from      query     string  false  "RFC3339 lower bound on scheduled_at"
// @Param        date_to        query     string  false  "RFC3339 upper bound on scheduled_at"
// @Param        page           query     int     false  "Page (1-based)"
// @Param        limit          query     int     false  "Page size (max 100)"
// @Success      200            {object}  appointmentListResponse
// @Router       /v1/appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	filter := ports.ListAppointmentsFilter{
		TechnicianID: c.QueryParam("technician_id"),
		Status:       c.QueryParam("status"),
		Page:         queryInt(c, "page", 1),
		Limit:        queryInt(c, "limit", 20),
	}
	if raw := c.QueryParam("date_from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date_from must be RFC3339")
		}
		filter.DateFrom = t
	}
	if raw := c.QueryParam("date_to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date_to must be RFC3339")
		}
		filter.DateTo = t
	}

	appointments, total, err := h.appointments.List(c.Request().Context(), scope, filter)
	if err != nil {
		return err
	}

	out := make([]*appointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, toAppointmentResponse(a))
	}
	return c.JSON(http.StatusOK, appointmentListResponse{
		Appointments: out,
		Total:        total,
		Page:         filter.Page,
		Limit:        filter.Limit,
	})
}

// ChangeStatus handles POST /v1/appointments/:code/status. Staff and
// technicians drive the lifecycle; customers cancel via Cancel.
//
// @Summary      Change appointment status
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        code  path      string               true  "Confirmation code"
// @Param        body  body      changeStatusRequest  true  "Target status"
// @Success      200   {object}  appointmentResponse
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/appointments/{code}/status [post]
func (h *AppointmentHandler) ChangeStatus(c echo.Context) error {
	var req changeStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	appointment, err := h.appointments.ChangeStatus(c.Request().Context(), ports.ChangeStatusInput{
		Code:         c.Param("code"),
		Status:       domain.AppointmentStatus(req.Status),
		Notes:        req.Notes,
		TechnicianID: req.TechnicianID,
	})
	if err != nil {
		return err
	}
	recordTransition(appointment)

	return c.JSON(http.StatusOK, toAppointmentResponse(appointment))
}

// Cancel handles POST /v1/appointments/:code/cancel, the customer-facing
// path to the cancelled state.
//
// @Summary      Cancel an appointment
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        code  path      string  true  "Confirmation code"
// @Success      200   {object}  appointmentResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/appointments/{code}/cancel [post]
func (h *AppointmentHandler) Cancel(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	appointment, err := h.appointments.Cancel(c.Request().Context(), scope, c.Param("code"))
	if err != nil {
		return err
	}
	recordTransition(appointment)

	return c.JSON(http.StatusOK, toAppointmentResponse(appointment))
}

func packageLabel(packageID string) string {
	if packageID == "" {
		return "custom"
	}
	return packageID
}

// recordTransition derives the from/to pair from the appended history.
func recordTransition(a *domain.Appointment) {
	n := len(a.StatusHistory)
	if n < 2 {
		return
	}
	metrics.StatusTransitionsTotal.WithLabelValues(
		string(a.StatusHistory[n-2].Status),
		string(a.StatusHistory[n-1].Status),
	).Inc()
}
