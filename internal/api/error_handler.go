package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/voltworks/ev-service-api/internal/api/middleware"
	"github.com/voltworks/ev-service-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Code is
// a stable machine-readable identifier; Message is for humans.
type errorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "...", "code": "..."}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, resp := resolveError(err, log, c)
		_ = c.JSON(status, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{
			Message: fmt.Sprintf("%v", he.Message),
			Code:    codeForStatus(he.Code),
		}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{"invalid credentials", "INVALID_CREDENTIALS"}
	case errors.Is(err, domain.ErrAccountDisabled):
		return http.StatusForbidden, errorResponse{"account is disabled", middleware.CodeAccountDisabled}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{"access forbidden", "FORBIDDEN"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{"user not found", middleware.CodeUserNotFound}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, errorResponse{"user already exists", "USER_EXISTS"}
	case errors.Is(err, domain.ErrVehicleNotFound):
		return http.StatusNotFound, errorResponse{"vehicle not found", "VEHICLE_NOT_FOUND"}
	case errors.Is(err, domain.ErrVehicleExists):
		return http.StatusConflict, errorResponse{"vehicle already registered", "VEHICLE_EXISTS"}
	case errors.Is(err, domain.ErrServiceNotFound):
		return http.StatusNotFound, errorResponse{"service not found", "SERVICE_NOT_FOUND"}
	case errors.Is(err, domain.ErrServiceExists):
		return http.StatusConflict, errorResponse{"service already exists", "SERVICE_EXISTS"}
	case errors.Is(err, domain.ErrPackageNotFound):
		return http.StatusNotFound, errorResponse{"service package not found", "PACKAGE_NOT_FOUND"}
	case errors.Is(err, domain.ErrAppointmentNotFound):
		return http.StatusNotFound, errorResponse{"appointment not found", "APPOINTMENT_NOT_FOUND"}
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, errorResponse{err.Error(), "INVALID_TRANSITION"}
	case errors.Is(err, domain.ErrSlotTaken):
		return http.StatusConflict, errorResponse{"the requested time slot is already booked", "SLOT_TAKEN"}
	case errors.Is(err, domain.ErrPartNotFound):
		return http.StatusNotFound, errorResponse{"part not found", "PART_NOT_FOUND"}
	case errors.Is(err, domain.ErrPartExists):
		return http.StatusConflict, errorResponse{"part already exists", "PART_EXISTS"}
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict, errorResponse{"insufficient stock", "INSUFFICIENT_STOCK"}
	case errors.Is(err, domain.ErrConversationNotFound):
		return http.StatusNotFound, errorResponse{"conversation not found", "CONVERSATION_NOT_FOUND"}
	case errors.Is(err, domain.ErrNotParticipant):
		return http.StatusForbidden, errorResponse{"not a participant of this conversation", "NOT_PARTICIPANT"}
	case errors.Is(err, domain.ErrTechnicianNotFound):
		return http.StatusNotFound, errorResponse{"technician not found", "TECHNICIAN_NOT_FOUND"}
	case errors.Is(err, domain.ErrTechnicianExists):
		return http.StatusConflict, errorResponse{"technician profile already exists", "TECHNICIAN_EXISTS"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{"internal server error", middleware.CodeServerError}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusUnauthorized:
		return middleware.CodeAuthRequired
	default:
		return middleware.CodeServerError
	}
}
