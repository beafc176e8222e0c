package domain

import (
	"errors"
	"time"
)

var ErrServiceNotFound = errors.New("service not found")
var ErrServiceExists = errors.New("service already exists")
var ErrPackageNotFound = errors.New("service package not found")

// MaintenanceService is a bookable catalog entry (battery check, brake
// service, firmware update, ...).
type MaintenanceService struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	Name            string    `json:"name" bson:"name"`
	Description     string    `json:"description" bson:"description"`
	Category        string    `json:"category" bson:"category"`
	Price           float64   `json:"price" bson:"price"`
	DurationMinutes int       `json:"duration_minutes" bson:"duration_minutes"`
	Active          bool      `json:"active" bson:"active"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}

// ServicePackage bundles several services at a single price.
type ServicePackage struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	ServiceIDs  []string  `json:"service_ids" bson:"service_ids"`
	Price       float64   `json:"price" bson:"price"`
	Active      bool      `json:"active" bson:"active"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
