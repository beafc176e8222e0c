package ports

import (
	"context"

	"github.com/voltworks/ev-service-api/internal/core/domain"
)

// ListUsersFilter carries query parameters for listing accounts.
type ListUsersFilter struct {
	Role   string // optional: filter by role
	Search string // optional: partial match on username, email or full name
	Page   int    // 1-based
	Limit  int    // max rows per page (capped at 100 by service)
}

// UserUpdate carries the mutable account fields. Nil pointers mean
// "leave unchanged".
type UserUpdate struct {
	FullName    *string
	PhoneNumber *string
	PhotoURL    *string
	Gender      *string
	Role        *domain.Role
	IsDisabled  *bool
}

// UserRepository defines persistence operations for accounts.
// Email and username lookups are case-insensitive: implementations match
// against normalised (lower-cased) values and enforce uniqueness on them.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByLogin(ctx context.Context, emailOrUsername string) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
