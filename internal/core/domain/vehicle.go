package domain

import (
	"errors"
	"time"
)

var ErrVehicleNotFound = errors.New("vehicle not found")
var ErrVehicleExists = errors.New("vehicle already registered")

// Vehicle is a customer-owned electric vehicle.
type Vehicle struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	OwnerID     string    `json:"owner_id" bson:"owner_id"`
	Make        string    `json:"make" bson:"make"`
	Model       string    `json:"model" bson:"model"`
	Year        int       `json:"year" bson:"year"`
	VIN         string    `json:"vin" bson:"vin"`
	PlateNumber string    `json:"plate_number" bson:"plate_number"`
	BatteryKWh  float64   `json:"battery_kwh" bson:"battery_kwh"`
	MileageKm   int       `json:"mileage_km" bson:"mileage_km"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
