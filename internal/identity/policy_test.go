package identity

import "testing"

func TestAuthorizeSelfOrAdmin(t *testing.T) {
	cases := []struct {
		name    string
		actor   User
		target  int64
		allowed bool
	}{
		{"admin on self", User{ID: 1, Role: RoleAdmin}, 1, true},
		{"admin on other", User{ID: 1, Role: RoleAdmin}, 99, true},
		{"user on self", User{ID: 3, Role: RoleUser}, 3, true},
		{"user on other", User{ID: 3, Role: RoleUser}, 2, false},
		{"user on absent id", User{ID: 3, Role: RoleUser}, 222, false},
	}
	for _, tc := range cases {
		err := Authorize(tc.actor, tc.target)
		if tc.allowed && err != nil {
			t.Fatalf("%s: expected allow, got %v", tc.name, err)
		}
		if !tc.allowed {
			if err != ErrUnauthorized {
				t.Fatalf("%s: expected ErrUnauthorized, got %v", tc.name, err)
			}
			if err.Error() != "Unauthorized." {
				t.Fatalf("%s: unexpected message %q", tc.name, err.Error())
			}
		}
	}
}

func TestRequireAdmin(t *testing.T) {
	if err := RequireAdmin(User{ID: 1, Role: RoleAdmin}); err != nil {
		t.Fatalf("expected allow for admin, got %v", err)
	}
	// Non-admins are denied even for batches naming only their own id.
	if err := RequireAdmin(User{ID: 3, Role: RoleUser}); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestParseRole(t *testing.T) {
	if role, err := ParseRole(" Admin "); err != nil || role != RoleAdmin {
		t.Fatalf("unexpected result: %v %v", role, err)
	}
	if role, err := ParseRole("user"); err != nil || role != RoleUser {
		t.Fatalf("unexpected result: %v %v", role, err)
	}
	_, err := ParseRole("owner")
	if err == nil {
		t.Fatal("expected error for unknown role")
	}
	if err.Error() != "Invalid role: owner." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
