package ports

import (
	"context"
	"time"

	"github.com/voltworks/ev-service-api/internal/core/domain"
)

// ListAppointmentsFilter carries all query parameters for listing bookings.
// CustomerID is always enforced by the service layer for customer callers.
type ListAppointmentsFilter struct {
	CustomerID   string // empty = no filter (admin/staff)
	TechnicianID string // optional: bookings assigned to a technician
	Status       string // optional
	DateFrom     time.Time
	DateTo       time.Time
	Page         int
	Limit        int
}

// AppointmentRepository defines persistence operations for bookings.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	FindByCode(ctx context.Context, code string) (*domain.Appointment, error)
	List(ctx context.Context, filter ListAppointmentsFilter) ([]*domain.Appointment, int64, error)
	// UpdateStatus atomically sets the new status, appends a history entry,
	// and optionally assigns a technician.
	UpdateStatus(ctx context.Context, code string, status domain.AppointmentStatus, ts time.Time, notes, technicianID string) error
}

// SlotHolder guards appointment slots against double-booking.
type SlotHolder interface {
	// Hold claims the slot for code. Returns false when another booking
	// already holds it.
	Hold(ctx context.Context, technicianID string, slot time.Time, code string) (bool, error)
	Release(ctx context.Context, technicianID string, slot time.Time) error
}

// BookAppointmentInput carries all data needed to create a booking.
type BookAppointmentInput struct {
	CustomerID   string
	VehicleID    string
	ServiceIDs   []string
	PackageID    string
	TechnicianID string // optional at creation
	ScheduledAt  time.Time
	Notes        string
	Parts        []domain.PartUsage
}

// BookingResult is returned by the service after creating a booking.
type BookingResult struct {
	Code        string
	Status      string
	ScheduledAt time.Time
	CreatedAt   time.Time
}

// ChangeStatusInput carries a status transition request.
type ChangeStatusInput struct {
	Code         string
	Status       domain.AppointmentStatus
	Notes        string
	TechnicianID string // optional reassignment on confirm
}

// AppointmentService defines use-case operations for bookings.
type AppointmentService interface {
	Book(ctx context.Context, input BookAppointmentInput) (*BookingResult, error)
	Get(ctx context.Context, scope AccessScope, code string) (*domain.Appointment, error)
	List(ctx context.Context, scope AccessScope, filter ListAppointmentsFilter) ([]*domain.Appointment, int64, error)
	ChangeStatus(ctx context.Context, input ChangeStatusInput) (*domain.Appointment, error)
	// Cancel is the customer-facing transition to cancelled; only the
	// owning customer (or an elevated role) may invoke it.
	Cancel(ctx context.Context, scope AccessScope, code string) (*domain.Appointment, error)
}
