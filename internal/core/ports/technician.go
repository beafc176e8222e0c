package ports

import (
	"context"

	"github.com/voltworks/ev-service-api/internal/core/domain"
)

// TechnicianRepository defines persistence for technician profiles.
type TechnicianRepository interface {
	Create(ctx context.Context, t *domain.Technician) (*domain.Technician, error)
	FindByID(ctx context.Context, id string) (*domain.Technician, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Technician, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Technician, error)
	AddCertificate(ctx context.Context, id string, cert domain.Certificate) (*domain.Technician, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.Technician, error)
}

// CreateTechnicianInput links a technician profile to an account.
type CreateTechnicianInput struct {
	UserID      string
	Specialties []string
}

// TechnicianService defines use-case operations for technician profiles.
type TechnicianService interface {
	Create(ctx context.Context, input CreateTechnicianInput) (*domain.Technician, error)
	Get(ctx context.Context, scope AccessScope, id string) (*domain.Technician, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Technician, error)
	AddCertificate(ctx context.Context, id string, cert domain.Certificate) (*domain.Technician, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.Technician, error)
}
