package rbac

import "testing"

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role       string
		permission string
		expected   bool
	}{
		{RoleAdmin, PermManageBackups, true},
		{RoleAdmin, PermPurgeActivityLog, true},
		{RoleAdmin, PermWithdrawInventory, true},
		{RoleManager, PermDecideLeave, true},
		{RoleManager, PermManageBlacklist, true},
		{RoleManager, PermManageBackups, false},
		{RoleManager, PermPurgeActivityLog, false},
		{RoleStaff, PermRequestLeave, true},
		{RoleStaff, PermWithdrawInventory, true},
		{RoleStaff, PermManageEmployees, false},
		{RoleStaff, PermDecideLeave, false},
		{"nonexistent", PermRequestLeave, false},
		{RoleAdmin, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.permission, func(t *testing.T) {
			result := HasPermission(tt.role, tt.permission)
			if result != tt.expected {
				t.Errorf("HasPermission(%q, %q) = %v, want %v", tt.role, tt.permission, result, tt.expected)
			}
		})
	}
}

func TestAllRolesHavePermissionEntry(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleManager, RoleStaff} {
		if _, ok := RolePermissions[role]; !ok {
			t.Errorf("role %q missing from RolePermissions map", role)
		}
	}
}

func TestAdminOperationsAreAdminOnly(t *testing.T) {
	for _, perm := range []string{PermPurgeActivityLog, PermManageBackups} {
		if !IsAdminOperation(perm) {
			t.Errorf("IsAdminOperation(%q) = false, want true", perm)
		}
		if HasPermission(RoleManager, perm) || HasPermission(RoleStaff, perm) {
			t.Errorf("permission %q must be admin-only", perm)
		}
	}
}
