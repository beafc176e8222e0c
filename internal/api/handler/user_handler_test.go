package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/voltworks/ev-service-api/internal/api/middleware"
	"github.com/voltworks/ev-service-api/internal/core/domain"
	"github.com/voltworks/ev-service-api/internal/core/ports"
)

func setTestIdentity(c echo.Context, id string, role domain.Role) {
	middleware.SetIdentity(c, middleware.Identity{ID: id, Role: role})
}

type stubUserService struct {
	getFn func(ctx context.Context, id string) (*domain.User, error)
}

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) List(context.Context, ports.ListUsersFilter) ([]*domain.User, int64, error) {
	return nil, 0, nil
}

func (s *stubUserService) Update(context.Context, string, bool, string, ports.UserUpdate) (*domain.User, error) {
	return nil, nil
}

func (s *stubUserService) Delete(context.Context, string) error { return nil }

func userGetContext(t *testing.T, id string, ident ports.AccessScope) echo.Context {
	t.Helper()
	c, _ := newTestContext(t, http.MethodGet, "/v1/users/"+id, "")
	c.SetParamNames("id")
	c.SetParamValues(id)
	setTestIdentity(c, ident.UserID, ident.Role)
	return c
}

func TestUserHandler_Get_OwnerMayReadOwnAccount(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		getFn: func(_ context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Username: "alice", Role: domain.RoleCustomer}, nil
		},
	})

	c := userGetContext(t, "cust-1", ports.AccessScope{UserID: "cust-1", Role: domain.RoleCustomer})
	if err := h.Get(c); err != nil {
		t.Fatalf("owner self-read must succeed: %v", err)
	}
}

func TestUserHandler_Get_CustomerMayNotReadOthers(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		getFn: func(_ context.Context, id string) (*domain.User, error) {
			t.Fatalf("service must not be reached")
			return nil, nil
		},
	})

	c := userGetContext(t, "cust-2", ports.AccessScope{UserID: "cust-1", Role: domain.RoleCustomer})
	if err := h.Get(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserHandler_Get_StaffMayReadAnyAccount(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		getFn: func(_ context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Username: "bob", Role: domain.RoleCustomer}, nil
		},
	})

	c := userGetContext(t, "cust-2", ports.AccessScope{UserID: "staff-1", Role: domain.RoleStaff})
	if err := h.Get(c); err != nil {
		t.Fatalf("staff read must succeed: %v", err)
	}
}
