package domain

import (
	"errors"
	"time"
)

var ErrPartNotFound = errors.New("part not found")
var ErrPartExists = errors.New("part already exists")
var ErrInsufficientStock = errors.New("insufficient stock")

// Part is a replacement part tracked in inventory. Stock lives on the
// part document itself; adjustments are applied atomically by the store.
type Part struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	SKU       string    `json:"sku" bson:"sku"`
	Name      string    `json:"name" bson:"name"`
	Category  string    `json:"category" bson:"category"`
	UnitPrice float64   `json:"unit_price" bson:"unit_price"`
	Stock     int       `json:"stock" bson:"stock"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
