package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/voltworks/ev-service-api/internal/core/ports"
)

// NotificationService delivers booking notifications. Delivery is a
// structured log entry; real channels (email, SMS) hang off this seam.
type NotificationService struct {
	logger zerolog.Logger
}

func NewNotificationService(logger zerolog.Logger) *NotificationService {
	return &NotificationService{logger: logger}
}

func (s *NotificationService) Process(_ context.Context, n ports.Notification) error {
	s.logger.Info().
		Str("appointment_code", n.AppointmentCode).
		Str("customer_id", n.CustomerID).
		Str("status", n.Status).
		Str("message", n.Message).
		Msg("notification delivered")
	return nil
}
