package rbac

// Role constants
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// Permission constants
const (
	PermManageEmployees   = "manage_employees"
	PermViewEmployees     = "view_employees"
	PermRequestLeave      = "request_leave"
	PermDecideLeave       = "decide_leave"
	PermManageDiscipline  = "manage_discipline"
	PermManageInventory   = "manage_inventory"
	PermWithdrawInventory = "withdraw_inventory"
	PermManageBlacklist   = "manage_blacklist"
	PermViewActivityLog   = "view_activity_log"
	PermPurgeActivityLog  = "purge_activity_log"
	PermManageBackups     = "manage_backups"
)

// RolePermissions defines what each role can do.
var RolePermissions = map[string][]string{
	RoleAdmin: {
		PermManageEmployees, PermViewEmployees, PermRequestLeave, PermDecideLeave,
		PermManageDiscipline, PermManageInventory, PermWithdrawInventory,
		PermManageBlacklist, PermViewActivityLog, PermPurgeActivityLog,
		PermManageBackups,
	},
	RoleManager: {
		PermManageEmployees, PermViewEmployees, PermRequestLeave, PermDecideLeave,
		PermManageDiscipline, PermManageInventory, PermWithdrawInventory,
		PermManageBlacklist, PermViewActivityLog,
		// Manager CANNOT: PermPurgeActivityLog, PermManageBackups
	},
	RoleStaff: {
		PermViewEmployees, PermRequestLeave, PermWithdrawInventory,
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}

// IsAdminOperation checks if permission is reserved for admins.
func IsAdminOperation(permission string) bool {
	return permission == PermPurgeActivityLog || permission == PermManageBackups
}
