package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/voltworks/ev-service-api/internal/core/domain"
	"github.com/voltworks/ev-service-api/internal/core/ports"
)

// NotificationQueue is the interface the service uses to hand off
// notifications for async delivery.
type NotificationQueue interface {
	Enqueue(n ports.Notification)
}

// AppointmentService implements booking and lifecycle management.
type AppointmentService struct {
	repo     ports.AppointmentRepository
	vehicles ports.VehicleRepository
	catalog  ports.CatalogRepository
	parts    ports.PartRepository
	slots    ports.SlotHolder
	queue    NotificationQueue
	logger   zerolog.Logger
}

func NewAppointmentService(
	repo ports.AppointmentRepository,
	vehicles ports.VehicleRepository,
	catalog ports.CatalogRepository,
	parts ports.PartRepository,
	slots ports.SlotHolder,
	queue NotificationQueue,
	logger zerolog.Logger,
) *AppointmentService {
	return &AppointmentService{
		repo:     repo,
		vehicles: vehicles,
		catalog:  catalog,
		parts:    parts,
		slots:    slots,
		queue:    queue,
		logger:   logger,
	}
}

// Book validates the vehicle and requested services, claims the time slot,
// and persists a pending appointment.
func (s *AppointmentService) Book(ctx context.Context, input ports.BookAppointmentInput) (*ports.BookingResult, error) {
	vehicle, err := s.vehicles.FindByID(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.OwnerID != input.CustomerID {
		return nil, domain.ErrForbidden
	}

	serviceIDs := input.ServiceIDs
	if input.PackageID != "" {
		pkg, err := s.catalog.FindPackageByID(ctx, input.PackageID)
		if err != nil {
			return nil, err
		}
		serviceIDs = pkg.ServiceIDs
	}
	if err := s.validateServices(ctx, serviceIDs); err != nil {
		return nil, err
	}

	code := generateConfirmationCode()
	holdKey := slotKeyFor(input.TechnicianID)
	held, err := s.slots.Hold(ctx, holdKey, input.ScheduledAt, code)
	if err != nil {
		return nil, fmt.Errorf("book: slot hold: %w", err)
	}
	if !held {
		return nil, domain.ErrSlotTaken
	}

	now := time.Now().UTC()
	appointment := &domain.Appointment{
		Code:         code,
		CustomerID:   input.CustomerID,
		VehicleID:    input.VehicleID,
		ServiceIDs:   serviceIDs,
		PackageID:    input.PackageID,
		TechnicianID: input.TechnicianID,
		SlotKey:      holdKey,
		ScheduledAt:  input.ScheduledAt.UTC(),
		Status:       domain.AppointmentPending,
		Notes:        input.Notes,
		Parts:        input.Parts,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.AppointmentPending, Timestamp: now, Notes: "booked"},
		},
		CreatedAt: now,
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		// Give the slot back so the failure is retryable.
		if relErr := s.slots.Release(ctx, holdKey, input.ScheduledAt); relErr != nil {
			s.logger.Warn().Err(relErr).Str("code", code).Msg("failed to release slot after create error")
		}
		return nil, err
	}

	s.logger.Info().Str("code", code).Str("customer_id", input.CustomerID).Time("scheduled_at", appointment.ScheduledAt).Msg("appointment booked")

	s.queue.Enqueue(ports.Notification{
		AppointmentCode: code,
		CustomerID:      input.CustomerID,
		Status:          string(domain.AppointmentPending),
		Message:         "appointment received and awaiting confirmation",
	})

	return &ports.BookingResult{
		Code:        code,
		Status:      string(appointment.Status),
		ScheduledAt: appointment.ScheduledAt,
		CreatedAt:   appointment.CreatedAt,
	}, nil
}

func (s *AppointmentService) Get(ctx context.Context, scope ports.AccessScope, code string) (*domain.Appointment, error) {
	appointment, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !s.canView(scope, appointment) {
		return nil, domain.ErrForbidden
	}
	return appointment, nil
}

func (s *AppointmentService) List(ctx context.Context, scope ports.AccessScope, filter ports.ListAppointmentsFilter) ([]*domain.Appointment, int64, error) {
	if !scope.Elevated() && scope.Role != domain.RoleTechnician {
		filter.CustomerID = scope.UserID
	}
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)
	return s.repo.List(ctx, filter)
}

// ChangeStatus applies a lifecycle transition. Assigning a technician moves
// the slot hold onto that technician's calendar. Completing an appointment
// consumes its reserved parts; terminal transitions release the slot.
func (s *AppointmentService) ChangeStatus(ctx context.Context, input ports.ChangeStatusInput) (*domain.Appointment, error) {
	appointment, err := s.repo.FindByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	if !appointment.Status.CanTransitionTo(input.Status) {
		return nil, fmt.Errorf("change status: %w (from %s to %s)", domain.ErrInvalidTransition, appointment.Status, input.Status)
	}

	// Claim the assigned technician's slot before touching anything else,
	// so a concurrent booking cannot take it in between.
	prevKey := holdKeyOf(appointment)
	migrating := input.TechnicianID != "" && input.TechnicianID != prevKey
	if migrating {
		held, err := s.slots.Hold(ctx, input.TechnicianID, appointment.ScheduledAt, appointment.Code)
		if err != nil {
			return nil, fmt.Errorf("change status: slot hold: %w", err)
		}
		if !held {
			return nil, domain.ErrSlotTaken
		}
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateStatus(ctx, input.Code, input.Status, now, input.Notes, input.TechnicianID); err != nil {
		if migrating {
			// The old hold is still in place; give the new one back.
			if relErr := s.slots.Release(ctx, input.TechnicianID, appointment.ScheduledAt); relErr != nil {
				s.logger.Warn().Err(relErr).Str("code", appointment.Code).Msg("failed to release slot after update error")
			}
		}
		return nil, fmt.Errorf("change status: %w", err)
	}

	if migrating {
		if err := s.slots.Release(ctx, prevKey, appointment.ScheduledAt); err != nil {
			s.logger.Warn().Err(err).Str("code", appointment.Code).Str("key", prevKey).Msg("failed to release previous slot hold")
		}
		appointment.SlotKey = input.TechnicianID
	}

	switch input.Status {
	case domain.AppointmentCompleted:
		s.consumeParts(ctx, appointment)
		s.releaseSlot(ctx, appointment)
	case domain.AppointmentCancelled:
		s.releaseSlot(ctx, appointment)
	}

	s.queue.Enqueue(ports.Notification{
		AppointmentCode: appointment.Code,
		CustomerID:      appointment.CustomerID,
		Status:          string(input.Status),
		Message:         input.Notes,
	})

	s.logger.Info().Str("code", appointment.Code).Str("from", string(appointment.Status)).Str("to", string(input.Status)).Msg("appointment status changed")

	appointment.Status = input.Status
	if input.TechnicianID != "" {
		appointment.TechnicianID = input.TechnicianID
	}
	appointment.StatusHistory = append(appointment.StatusHistory, domain.StatusHistoryEntry{
		Status:    input.Status,
		Timestamp: now,
		Notes:     input.Notes,
	})
	return appointment, nil
}

// Cancel is the customer-facing path to the cancelled state.
func (s *AppointmentService) Cancel(ctx context.Context, scope ports.AccessScope, code string) (*domain.Appointment, error) {
	appointment, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !scope.Elevated() && appointment.CustomerID != scope.UserID {
		return nil, domain.ErrForbidden
	}
	return s.ChangeStatus(ctx, ports.ChangeStatusInput{
		Code:   code,
		Status: domain.AppointmentCancelled,
		Notes:  "cancelled by customer",
	})
}

func (s *AppointmentService) canView(scope ports.AccessScope, a *domain.Appointment) bool {
	if scope.Elevated() || scope.Role == domain.RoleTechnician {
		return true
	}
	return a.CustomerID == scope.UserID
}

// validateServices checks every requested service exists and is active.
func (s *AppointmentService) validateServices(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("book: %w", domain.ErrServiceNotFound)
	}
	found, err := s.catalog.FindServicesByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return fmt.Errorf("book: %w", domain.ErrServiceNotFound)
	}
	for _, svc := range found {
		if !svc.Active {
			return fmt.Errorf("book: service %s inactive: %w", svc.ID, domain.ErrServiceNotFound)
		}
	}
	return nil
}

// consumeParts deducts reserved parts from inventory. Failures are logged
// but do not roll back the completion.
func (s *AppointmentService) consumeParts(ctx context.Context, a *domain.Appointment) {
	for _, usage := range a.Parts {
		if _, err := s.parts.AdjustStock(ctx, usage.SKU, -usage.Quantity); err != nil {
			s.logger.Warn().Err(err).Str("code", a.Code).Str("sku", usage.SKU).Int("quantity", usage.Quantity).Msg("failed to consume part")
		}
	}
}

func (s *AppointmentService) releaseSlot(ctx context.Context, a *domain.Appointment) {
	if err := s.slots.Release(ctx, holdKeyOf(a), a.ScheduledAt); err != nil {
		s.logger.Warn().Err(err).Str("code", a.Code).Msg("failed to release slot")
	}
}

// slotKeyFor maps an unassigned booking onto the shared pool key.
func slotKeyFor(technicianID string) string {
	if technicianID == "" {
		return "pool"
	}
	return technicianID
}

// holdKeyOf returns the key the booking's hold currently lives under.
// Documents written before the key was persisted fall back to the
// technician assignment.
func holdKeyOf(a *domain.Appointment) string {
	if a.SlotKey != "" {
		return a.SlotKey
	}
	return slotKeyFor(a.TechnicianID)
}

// generateConfirmationCode returns a unique confirmation code in the
// format EV-XXXXXXXX.
func generateConfirmationCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("EV-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("EV-%08X", b)
}
