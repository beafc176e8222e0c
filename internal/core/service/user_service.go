package service

import (
	"context"

	"github.com/voltworks/ev-service-api/internal/core/domain"
	"github.com/voltworks/ev-service-api/internal/core/ports"
)

const maxPageLimit = 100

// UserService implements account administration.
type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)
	return s.repo.List(ctx, filter)
}

func (s *UserService) Update(ctx context.Context, actorID string, asAdmin bool, id string, update ports.UserUpdate) (*domain.User, error) {
	if !asAdmin {
		if actorID != id {
			return nil, domain.ErrForbidden
		}
		// Role and disabled-flag changes are admin-only.
		if update.Role != nil || update.IsDisabled != nil {
			return nil, domain.ErrForbidden
		}
	}
	if update.Role != nil && !update.Role.Known() {
		return nil, domain.ErrInvalidCredentials
	}
	return s.repo.Update(ctx, id, update)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// clampPage normalises pagination inputs the same way for every listing.
func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
