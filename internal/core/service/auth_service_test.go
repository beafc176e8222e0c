package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/voltworks/ev-service-api/internal/core/domain"
	"github.com/voltworks/ev-service-api/internal/core/ports"
)

// stubUserRepo is an in-memory UserRepository for service tests.
type stubUserRepo struct {
	users  map[string]*domain.User // keyed by ID
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*domain.User{}}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	user.ID = "user-" + strconv.Itoa(r.nextID)
	r.users[user.ID] = user
	return user, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByLogin(_ context.Context, login string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == login || u.Username == login {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, _ ports.ListUsersFilter) ([]*domain.User, int64, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, update ports.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.FullName != nil {
		u.FullName = *update.FullName
	}
	if update.PhoneNumber != nil {
		u.PhoneNumber = *update.PhoneNumber
	}
	if update.PhotoURL != nil {
		u.PhotoURL = *update.PhotoURL
	}
	if update.Gender != nil {
		u.Gender = *update.Gender
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	if update.IsDisabled != nil {
		u.IsDisabled = *update.IsDisabled
	}
	return u, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubMinter struct {
	token string
	err   error
}

func (m *stubMinter) Mint(string, domain.Role) (string, error) {
	return m.token, m.err
}

func TestAuthService_Register_SelfServiceIsCustomer(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, &stubMinter{token: "tok"})

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "Alice",
		Email:    "Alice@Example.com",
		Password: "hunter2hunter2",
		Role:     domain.RoleAdmin, // must be ignored without AsAdmin
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if user.Role != domain.RoleCustomer {
		t.Fatalf("expected customer role, got %s", user.Role)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalised email, got %s", user.Email)
	}
	if user.PasswordHash == "hunter2hunter2" || user.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}
}

func TestAuthService_Register_AdminMaySetRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, &stubMinter{token: "tok"})

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "tech",
		Email:    "tech@example.com",
		Password: "hunter2hunter2",
		Role:     domain.RoleTechnician,
		AsAdmin:  true,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleTechnician {
		t.Fatalf("expected technician role, got %s", user.Role)
	}
}

func TestAuthService_Register_RejectsUnknownRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, &stubMinter{token: "tok"})

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "hunter2hunter2",
		Role:     "superuser",
		AsAdmin:  true,
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, &stubMinter{token: "tok"})

	input := ports.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func registerUser(t *testing.T, repo *stubUserRepo, username, email, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return user
}

func TestAuthService_Login_ByEmailAndUsername(t *testing.T) {
	repo := newStubUserRepo()
	registerUser(t, repo, "alice", "alice@example.com", "secretpass")
	svc := NewAuthService(repo, &stubMinter{token: "signed-token"})

	for _, login := range []string{"alice@example.com", "alice", "ALICE@Example.com"} {
		token, user, err := svc.Login(context.Background(), login, "secretpass")
		if err != nil {
			t.Fatalf("login %q: %v", login, err)
		}
		if token != "signed-token" {
			t.Fatalf("login %q: unexpected token %q", login, token)
		}
		if user.Username != "alice" {
			t.Fatalf("login %q: unexpected user %+v", login, user)
		}
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	registerUser(t, repo, "alice", "alice@example.com", "secretpass")
	svc := NewAuthService(repo, &stubMinter{token: "tok"})

	_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), &stubMinter{token: "tok"})

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Login_Disabled(t *testing.T) {
	repo := newStubUserRepo()
	user := registerUser(t, repo, "alice", "alice@example.com", "secretpass")
	user.IsDisabled = true
	svc := NewAuthService(repo, &stubMinter{token: "tok"})

	_, _, err := svc.Login(context.Background(), "alice@example.com", "secretpass")
	if !errors.Is(err, domain.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}
