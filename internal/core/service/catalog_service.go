package service

import (
	"context"
	"fmt"
	"time"

	"github.com/voltworks/ev-service-api/internal/core/domain"
	"github.com/voltworks/ev-service-api/internal/core/ports"
)

// CatalogService manages maintenance services and packages.
type CatalogService struct {
	repo ports.CatalogRepository
}

func NewCatalogService(repo ports.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) CreateService(ctx context.Context, input ports.CreateServiceInput) (*domain.MaintenanceService, error) {
	now := time.Now().UTC()
	return s.repo.CreateService(ctx, &domain.MaintenanceService{
		Name:            input.Name,
		Description:     input.Description,
		Category:        input.Category,
		Price:           input.Price,
		DurationMinutes: input.DurationMinutes,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
}

func (s *CatalogService) GetService(ctx context.Context, id string) (*domain.MaintenanceService, error) {
	return s.repo.FindServiceByID(ctx, id)
}

func (s *CatalogService) ListServices(ctx context.Context, filter ports.ListServicesFilter) ([]*domain.MaintenanceService, int64, error) {
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)
	return s.repo.ListServices(ctx, filter)
}

func (s *CatalogService) UpdateService(ctx context.Context, id string, update ports.ServiceUpdate) (*domain.MaintenanceService, error) {
	return s.repo.UpdateService(ctx, id, update)
}

func (s *CatalogService) DeleteService(ctx context.Context, id string) error {
	return s.repo.DeleteService(ctx, id)
}

// CreatePackage validates that every bundled service exists before the
// package is persisted.
func (s *CatalogService) CreatePackage(ctx context.Context, input ports.CreatePackageInput) (*domain.ServicePackage, error) {
	if len(input.ServiceIDs) == 0 {
		return nil, fmt.Errorf("create package: %w", domain.ErrServiceNotFound)
	}
	found, err := s.repo.FindServicesByIDs(ctx, input.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if len(found) != len(input.ServiceIDs) {
		return nil, fmt.Errorf("create package: %w", domain.ErrServiceNotFound)
	}

	now := time.Now().UTC()
	return s.repo.CreatePackage(ctx, &domain.ServicePackage{
		Name:        input.Name,
		Description: input.Description,
		ServiceIDs:  input.ServiceIDs,
		Price:       input.Price,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *CatalogService) GetPackage(ctx context.Context, id string) (*domain.ServicePackage, error) {
	return s.repo.FindPackageByID(ctx, id)
}

func (s *CatalogService) ListPackages(ctx context.Context, activeOnly bool) ([]*domain.ServicePackage, error) {
	return s.repo.ListPackages(ctx, activeOnly)
}

func (s *CatalogService) DeletePackage(ctx context.Context, id string) error {
	return s.repo.DeletePackage(ctx, id)
}
