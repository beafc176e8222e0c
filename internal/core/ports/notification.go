package ports

import "context"

// Notification is the DTO handed to the async pipeline whenever a booking
// changes state.
type Notification struct {
	AppointmentCode string
	CustomerID      string
	Status          string
	Message         string
}

// NotificationService processes queued notifications.
type NotificationService interface {
	Process(ctx context.Context, n Notification) error
}
