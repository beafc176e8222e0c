package domain

import (
	"errors"
	"time"
)

// Role is the closed set of account roles. Unknown values are rejected at
// the boundary instead of being carried through the pipeline.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleStaff      Role = "staff"
	RoleTechnician Role = "technician"
	RoleCustomer   Role = "customer"
)

// roleLevels is the fixed privilege order. Higher means broader privilege.
// The table is immutable and loaded once at process start.
var roleLevels = map[Role]int{
	RoleAdmin:      4,
	RoleStaff:      3,
	RoleTechnician: 2,
	RoleCustomer:   1,
}

// Level returns the numeric privilege level of r, or 0 for unknown roles.
func (r Role) Level() int {
	return roleLevels[r]
}

// Known reports whether r is one of the enumerated roles.
func (r Role) Known() bool {
	_, ok := roleLevels[r]
	return ok
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrForbidden          = errors.New("access forbidden")
)

// User models an account in the system. The password hash never leaves
// the server.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	FullName     string    `json:"full_name,omitempty"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	IsDisabled   bool      `json:"is_disabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EffectiveRole returns the account's role, falling back to the customer
// baseline when the stored record carries no recognised role.
func (u *User) EffectiveRole() Role {
	if u.Role.Known() {
		return u.Role
	}
	return RoleCustomer
}
