package domain

import (
	"errors"
	"time"
)

var ErrTechnicianNotFound = errors.New("technician not found")
var ErrTechnicianExists = errors.New("technician profile already exists")

// Certificate is a qualification held by a technician.
type Certificate struct {
	Name      string    `json:"name" bson:"name"`
	Issuer    string    `json:"issuer" bson:"issuer"`
	IssuedAt  time.Time `json:"issued_at" bson:"issued_at"`
	ExpiresAt time.Time `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
}

// Technician is the workshop profile linked to a technician account.
type Technician struct {
	ID           string        `json:"id" bson:"_id,omitempty"`
	UserID       string        `json:"user_id" bson:"user_id"`
	Specialties  []string      `json:"specialties" bson:"specialties"`
	Certificates []Certificate `json:"certificates" bson:"certificates"`
	Active       bool          `json:"active" bson:"active"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" bson:"updated_at"`
}
