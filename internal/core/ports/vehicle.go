package ports

import (
	"context"

	"github.com/voltworks/ev-service-api/internal/core/domain"
)

// ListVehiclesFilter carries query parameters for listing vehicles.
// OwnerID is enforced by the service layer for customer callers.
type ListVehiclesFilter struct {
	OwnerID string // empty = no filter (admin/staff); non-empty = scoped to owner
	Make    string // optional
	Page    int    // 1-based
	Limit   int    // capped at 100 by service
}

// VehicleUpdate carries the mutable vehicle fields.
type VehicleUpdate struct {
	PlateNumber *string
	MileageKm   *int
}

// VehicleRepository defines persistence operations for vehicles.
type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
	FindByID(ctx context.Context, id string) (*domain.Vehicle, error)
	List(ctx context.Context, filter ListVehiclesFilter) ([]*domain.Vehicle, int64, error)
	Update(ctx context.Context, id string, update VehicleUpdate) (*domain.Vehicle, error)
	Delete(ctx context.Context, id string) error
}

// CreateVehicleInput carries the data needed to register a vehicle.
type CreateVehicleInput struct {
	OwnerID     string
	Make        string
	Model       string
	Year        int
	VIN         string
	PlateNumber string
	BatteryKWh  float64
	MileageKm   int
}

// VehicleService defines use-case operations for vehicles. Scope carries
// the caller's identity so customer access stays limited to owned records.
type VehicleService interface {
	Create(ctx context.Context, input CreateVehicleInput) (*domain.Vehicle, error)
	Get(ctx context.Context, scope AccessScope, id string) (*domain.Vehicle, error)
	List(ctx context.Context, scope AccessScope, filter ListVehiclesFilter) ([]*domain.Vehicle, int64, error)
	Update(ctx context.Context, scope AccessScope, id string, update VehicleUpdate) (*domain.Vehicle, error)
	Delete(ctx context.Context, scope AccessScope, id string) error
}

// AccessScope identifies the caller for ownership checks inside services.
type AccessScope struct {
	UserID string
	Role   domain.Role
}

// Elevated reports whether the scope may cross ownership boundaries.
func (s AccessScope) Elevated() bool {
	return s.Role == domain.RoleAdmin || s.Role == domain.RoleStaff
}
