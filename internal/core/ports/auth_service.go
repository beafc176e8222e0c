package ports

import (
	"context"

	"github.com/voltworks/ev-service-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at account creation.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	Role        domain.Role // ignored unless the caller is an admin
	FullName    string
	PhoneNumber string
	// AsAdmin is true when an authenticated admin performs the registration,
	// which unlocks creating staff/technician/admin accounts.
	AsAdmin bool
}

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login authenticates by email or username and returns a signed
	// assertion plus the account profile.
	Login(ctx context.Context, login, password string) (string, *domain.User, error)
}

// UserService implements account administration.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	// Update applies the given fields. Role and disabled-flag changes
	// require asAdmin; profile fields additionally allow the owner.
	Update(ctx context.Context, actorID string, asAdmin bool, id string, update UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
