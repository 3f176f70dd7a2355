package models

// Document store collection names. The backup engine never reads this
// list; it discovers collections from the store itself.
const (
	CollectionEmployees       = "employees"
	CollectionLeaves          = "leaves"
	CollectionDiscipline      = "disciplinary_actions"
	CollectionInventory       = "inventory_items"
	CollectionWithdrawals     = "withdrawals"
	CollectionBlacklist       = "blacklist"
	CollectionNotifications   = "notifications"
	CollectionActivityLogs    = "activity_logs"
	CollectionBackupSchedules = "backup_schedules"
)
