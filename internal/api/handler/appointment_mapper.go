package handler

import (
	"time"

	"github.com/voltworks/ev-service-api/internal/core/domain"
	"github.com/voltworks/ev-service-api/internal/core/ports"
)

func toBookInput(req bookAppointmentRequest, customerID string) ports.BookAppointmentInput {
	in := ports.BookAppointmentInput{
		CustomerID:   customerID,
		VehicleID:    req.VehicleID,
		ServiceIDs:   req.ServiceIDs,
		PackageID:    req.PackageID,
		TechnicianID: req.TechnicianID,
		ScheduledAt:  req.ScheduledAt,
		Notes:        req.Notes,
	}
	for _, p := range req.Parts {
		in.Parts = append(in.Parts, domain.PartUsage{SKU: p.SKU, Quantity: p.Quantity})
	}
	return in
}

func toBookResponse(r *ports.BookingResult) bookAppointmentResponse {
	return bookAppointmentResponse{
		Code:        r.Code,
		Status:      r.Status,
		ScheduledAt: r.ScheduledAt.UTC().Format(time.RFC3339),
		CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339),
		Links:       appointmentLinks{Self: "/v1/appointments/" + r.Code},
	}
}

func toAppointmentResponse(a *domain.Appointment) *appointmentResponse {
	history := make([]statusHistoryItem, 0, len(a.StatusHistory))
	for _, h := range a.StatusHistory {
		history = append(history, statusHistoryItem{
			Status:    string(h.Status),
			Timestamp: h.Timestamp.UTC().Format(time.RFC3339),
			Notes:     h.Notes,
		})
	}
	return &appointmentResponse{
		Code:          a.Code,
		CustomerID:    a.CustomerID,
		VehicleID:     a.VehicleID,
		ServiceIDs:    a.ServiceIDs,
		PackageID:     a.PackageID,
		TechnicianID:  a.TechnicianID,
		ScheduledAt:   a.ScheduledAt.UTC().Format(time.RFC3339),
		Status:        string(a.Status),
		Notes:         a.Notes,
		Parts:         a.Parts,
		StatusHistory: history,
		CreatedAt:     a.CreatedAt.UTC().Format(time.RFC3339),
		Links:         appointmentLinks{Self: "/v1/appointments/" + a.Code},
	}
}
