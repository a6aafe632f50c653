package models

import "testing"

// TestValidRole проверяет распознавание поддерживаемых ролей.
func TestValidRole(t *testing.T) {
	for _, role := range []UserRole{RoleAdmin, RoleMember, RoleTrainer} {
		if !ValidRole(role) {
			t.Fatalf("expected %s to be valid", role)
		}
	}

	for _, role := range []UserRole{"", "manager", "ADMIN"} {
		if ValidRole(role) {
			t.Fatalf("expected %q to be invalid", role)
		}
	}
}
