package domain

import "testing"

func TestRoleLevels(t *testing.T) {
	cases := []struct {
		role  Role
		level int
	}{
		{RoleAdmin, 4},
		{RoleStaff, 3},
		{RoleTechnician, 2},
		{RoleCustomer, 1},
		{Role("superuser"), 0},
		{Role(""), 0},
	}
	for _, tc := range cases {
		if got := tc.role.Level(); got != tc.level {
			t.Errorf("%q.Level() = %d, want %d", tc.role, got, tc.level)
		}
	}
}

func TestRoleKnown(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleStaff, RoleTechnician, RoleCustomer} {
		if !r.Known() {
			t.Errorf("%q should be known", r)
		}
	}
	if Role("root").Known() {
		t.Errorf("undeclared role must not be known")
	}
}

func TestEffectiveRole(t *testing.T) {
	u := &User{Role: RoleStaff}
	if u.EffectiveRole() != RoleStaff {
		t.Fatalf("expected staff, got %s", u.EffectiveRole())
	}

	// Accounts with a missing or unrecognised role act as customers.
	u = &User{Role: ""}
	if u.EffectiveRole() != RoleCustomer {
		t.Fatalf("expected customer fallback, got %s", u.EffectiveRole())
	}
	u = &User{Role: Role("legacy_role")}
	if u.EffectiveRole() != RoleCustomer {
		t.Fatalf("expected customer fallback, got %s", u.EffectiveRole())
	}
}
