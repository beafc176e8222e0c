package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/voltworks/ev-service-api/internal/core/domain"
	"github.com/voltworks/ev-service-api/internal/core/ports"
)

// TokenMinter is the small slice of the token codec the service needs.
type TokenMinter interface {
	Mint(subjectID string, role domain.Role) (string, error)
}

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	minter TokenMinter
}

func NewAuthService(repo ports.UserRepository, minter TokenMinter) *AuthService {
	return &AuthService{repo: repo, minter: minter}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	email := normalizeLogin(input.Email)
	if username == "" || email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	// Self-registration always yields a customer account; only admins may
	// create privileged roles.
	role := domain.RoleCustomer
	if input.AsAdmin && input.Role != "" {
		if !input.Role.Known() {
			return nil, domain.ErrInvalidCredentials
		}
		role = input.Role
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		FullName:     input.FullName,
		PhoneNumber:  input.PhoneNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Create(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, login, password string) (string, *domain.User, error) {
	login = normalizeLogin(login)
	if login == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		return "", nil, err
	}
	if user.IsDisabled {
		return "", nil, domain.ErrAccountDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.minter.Mint(user.ID, user.EffectiveRole())
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// normalizeLogin lower-cases identifiers so email/username comparison is
// case-insensitive throughout.
func normalizeLogin(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
