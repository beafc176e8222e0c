package domain

import (
	"errors"
	"time"
)

// AppointmentStatus represents the lifecycle state of a booking.
type AppointmentStatus string

const (
	AppointmentPending    AppointmentStatus = "pending"
	AppointmentConfirmed  AppointmentStatus = "confirmed"
	AppointmentInProgress AppointmentStatus = "in_progress"
	AppointmentCompleted  AppointmentStatus = "completed"
	AppointmentCancelled  AppointmentStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentPending:    {AppointmentConfirmed, AppointmentCancelled},
	AppointmentConfirmed:  {AppointmentInProgress, AppointmentCancelled},
	AppointmentInProgress: {AppointmentCompleted},
}

var ErrAppointmentNotFound = errors.New("appointment not found")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrSlotTaken = errors.New("time slot already booked")

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// StatusHistoryEntry records a single status transition on an appointment.
type StatusHistoryEntry struct {
	Status    AppointmentStatus `json:"status" bson:"status"`
	Timestamp time.Time         `json:"timestamp" bson:"timestamp"`
	Notes     string            `json:"notes,omitempty" bson:"notes,omitempty"`
}

// PartUsage reserves a quantity of a part for an appointment.
type PartUsage struct {
	SKU      string `json:"sku" bson:"sku"`
	Quantity int    `json:"quantity" bson:"quantity"`
}

// Appointment is the booking aggregate root.
type Appointment struct {
	ID            string               `json:"id" bson:"_id,omitempty"`
	Code          string               `json:"code" bson:"code"`
	CustomerID    string               `json:"customer_id" bson:"customer_id"`
	VehicleID     string               `json:"vehicle_id" bson:"vehicle_id"`
	ServiceIDs    []string             `json:"service_ids" bson:"service_ids"`
	PackageID     string               `json:"package_id,omitempty" bson:"package_id,omitempty"`
	TechnicianID  string               `json:"technician_id,omitempty" bson:"technician_id,omitempty"`
	// SlotKey records which key the booking's slot hold lives under. It is
	// internal plumbing, never exposed over the API.
	SlotKey       string               `json:"-" bson:"slot_key,omitempty"`
	ScheduledAt   time.Time            `json:"scheduled_at" bson:"scheduled_at"`
	Status        AppointmentStatus    `json:"status" bson:"status"`
	Notes         string               `json:"notes,omitempty" bson:"notes,omitempty"`
	Parts         []PartUsage          `json:"parts,omitempty" bson:"parts,omitempty"`
	StatusHistory []StatusHistoryEntry `json:"status_history" bson:"status_history"`
	CreatedAt     time.Time            `json:"created_at" bson:"created_at"`
}
