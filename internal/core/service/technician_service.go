package service

import (
	"context"
	"time"

	"github.com/voltworks/ev-service-api/internal/core/domain"
	"github.com/voltworks/ev-service-api/internal/core/ports"
)

// TechnicianService manages workshop technician profiles.
type TechnicianService struct {
	repo  ports.TechnicianRepository
	users ports.UserRepository
}

func NewTechnicianService(repo ports.TechnicianRepository, users ports.UserRepository) *TechnicianService {
	return &TechnicianService{repo: repo, users: users}
}

// Create links a profile to an existing account holding the technician role.
func (s *TechnicianService) Create(ctx context.Context, input ports.CreateTechnicianInput) (*domain.Technician, error) {
	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user.EffectiveRole() != domain.RoleTechnician {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.Technician{
		UserID:       input.UserID,
		Specialties:  input.Specialties,
		Certificates: []domain.Certificate{},
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (s *TechnicianService) Get(ctx context.Context, scope ports.AccessScope, id string) (*domain.Technician, error) {
	technician, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Technicians may only read their own profile.
	if !scope.Elevated() && technician.UserID != scope.UserID {
		return nil, domain.ErrForbidden
	}
	return technician, nil
}

func (s *TechnicianService) List(ctx context.Context, activeOnly bool) ([]*domain.Technician, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *TechnicianService) AddCertificate(ctx context.Context, id string, cert domain.Certificate) (*domain.Technician, error) {
	return s.repo.AddCertificate(ctx, id, cert)
}

func (s *TechnicianService) SetActive(ctx context.Context, id string, active bool) (*domain.Technician, error) {
	return s.repo.SetActive(ctx, id, active)
}
