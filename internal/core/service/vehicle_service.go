package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/voltworks/ev-service-api/internal/core/domain"
	"github.com/voltworks/ev-service-api/internal/core/ports"
)

// VehicleService implements vehicle registration and lookup with
// ownership scoping.
type VehicleService struct {
	repo   ports.VehicleRepository
	logger zerolog.Logger
}

func NewVehicleService(repo ports.VehicleRepository, logger zerolog.Logger) *VehicleService {
	return &VehicleService{repo: repo, logger: logger}
}

func (s *VehicleService) Create(ctx context.Context, input ports.CreateVehicleInput) (*domain.Vehicle, error) {
	now := time.Now().UTC()
	vehicle := &domain.Vehicle{
		OwnerID:     input.OwnerID,
		Make:        input.Make,
		Model:       input.Model,
		Year:        input.Year,
		VIN:         strings.ToUpper(strings.TrimSpace(input.VIN)),
		PlateNumber: input.PlateNumber,
		BatteryKWh:  input.BatteryKWh,
		MileageKm:   input.MileageKm,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, vehicle)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("vehicle_id", created.ID).Str("owner_id", created.OwnerID).Str("vin", created.VIN).Msg("vehicle registered")
	return created, nil
}

func (s *VehicleService) Get(ctx context.Context, scope ports.AccessScope, id string) (*domain.Vehicle, error) {
	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.Elevated() && vehicle.OwnerID != scope.UserID {
		return nil, domain.ErrForbidden
	}
	return vehicle, nil
}

func (s *VehicleService) List(ctx context.Context, scope ports.AccessScope, filter ports.ListVehiclesFilter) ([]*domain.Vehicle, int64, error) {
	if !scope.Elevated() {
		filter.OwnerID = scope.UserID
	}
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)
	return s.repo.List(ctx, filter)
}

func (s *VehicleService) Update(ctx context.Context, scope ports.AccessScope, id string, update ports.VehicleUpdate) (*domain.Vehicle, error) {
	if _, err := s.Get(ctx, scope, id); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, update)
}

func (s *VehicleService) Delete(ctx context.Context, scope ports.AccessScope, id string) error {
	if _, err := s.Get(ctx, scope, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
