package ports

import (
	"context"

	"github.com/voltworks/ev-service-api/internal/core/domain"
)

// ListServicesFilter carries query parameters for the service catalog.
type ListServicesFilter struct {
	Category   string
	ActiveOnly bool
	Page       int
	Limit      int
}

// ServiceUpdate carries the mutable catalog fields.
type ServiceUpdate struct {
	Name            *string
	Description     *string
	Price           *float64
	DurationMinutes *int
	Active          *bool
}

// CatalogRepository defines persistence for services and packages.
type CatalogRepository interface {
	CreateService(ctx context.Context, s *domain.MaintenanceService) (*domain.MaintenanceService, error)
	FindServiceByID(ctx context.Context, id string) (*domain.MaintenanceService, error)
	FindServicesByIDs(ctx context.Context, ids []string) ([]*domain.MaintenanceService, error)
	ListServices(ctx context.Context, filter ListServicesFilter) ([]*domain.MaintenanceService, int64, error)
	UpdateService(ctx context.Context, id string, update ServiceUpdate) (*domain.MaintenanceService, error)
	DeleteService(ctx context.Context, id string) error

	CreatePackage(ctx context.Context, p *domain.ServicePackage) (*domain.ServicePackage, error)
	FindPackageByID(ctx context.Context, id string) (*domain.ServicePackage, error)
	ListPackages(ctx context.Context, activeOnly bool) ([]*domain.ServicePackage, error)
	DeletePackage(ctx context.Context, id string) error
}

// CreateServiceInput carries the data for a new catalog entry.
type CreateServiceInput struct {
	Name            string
	Description     string
	Category        string
	Price           float64
	DurationMinutes int
}

// CreatePackageInput carries the data for a new service package.
type CreatePackageInput struct {
	Name        string
	Description string
	ServiceIDs  []string
	Price       float64
}

// CatalogService defines use-case operations over the service catalog.
type CatalogService interface {
	CreateService(ctx context.Context, input CreateServiceInput) (*domain.MaintenanceService, error)
	GetService(ctx context.Context, id string) (*domain.MaintenanceService, error)
	ListServices(ctx context.Context, filter ListServicesFilter) ([]*domain.MaintenanceService, int64, error)
	UpdateService(ctx context.Context, id string, update ServiceUpdate) (*domain.MaintenanceService, error)
	DeleteService(ctx context.Context, id string) error

	CreatePackage(ctx context.Context, input CreatePackageInput) (*domain.ServicePackage, error)
	GetPackage(ctx context.Context, id string) (*domain.ServicePackage, error)
	ListPackages(ctx context.Context, activeOnly bool) ([]*domain.ServicePackage, error)
	DeletePackage(ctx context.Context, id string) error
}
