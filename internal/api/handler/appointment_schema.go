package handler

import (
	"time"

	"github.com/voltworks/ev-service-api/internal/core/domain"
)

// --- Request types ---

type partUsageRequest struct {
	SKU      string `json:"sku"      validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type bookAppointmentRequest struct {
	VehicleID string `json:"vehicle_id" validate:"required"`
	// Exactly one of service_ids / package_id is expected; package wins
	// when both are present.
	ServiceIDs   []string           `json:"service_ids"`
	PackageID    string             `json:"package_id"`
	TechnicianID string             `json:"technician_id"`
	ScheduledAt  time.Time          `json:"scheduled_at" validate:"required"`
	Notes        string             `json:"notes"`
	Parts        []partUsageRequest `json:"parts" validate:"dive"`
}

type changeStatusRequest struct {
	Status       string `json:"status" validate:"required,oneof=confirmed in_progress completed cancelled"`
	Notes        string `json:"notes"`
	TechnicianID string `json:"technician_id"`
}

// --- Response types ---

type appointmentLinks struct {
	Self string `json:"self"`
}

type bookAppointmentResponse struct {
	Code        string           `json:"code"`
	Status      string           `json:"status"`
	ScheduledAt string           `json:"scheduled_at"`
	CreatedAt   string           `json:"created_at"`
	Links       appointmentLinks `json:"_links"`
}

type statusHistoryItem struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Notes     string `json:"notes,omitempty"`
}

type appointmentResponse struct {
	Code          string              `json:"code"`
	CustomerID    string              `json:"customer_id"`
	VehicleID     string              `json:"vehicle_id"`
	ServiceIDs    []string            `json:"service_ids"`
	PackageID     string              `json:"package_id,omitempty"`
	TechnicianID  string              `json:"technician_id,omitempty"`
	ScheduledAt   string              `json:"scheduled_at"`
	Status        string              `json:"status"`
	Notes         string              `json:"notes,omitempty"`
	Parts         []domain.PartUsage  `json:"parts,omitempty"`
	StatusHistory []statusHistoryItem `json:"status_history"`
	CreatedAt     string              `json:"created_at"`
	Links         appointmentLinks    `json:"_links"`
}

type appointmentListResponse struct {
	Appointments []*appointmentResponse `json:"appointments"`
	Total        int64                  `json:"total"`
	Page         int                    `json:"page"`
	Limit        int                    `json:"limit"`
}
