package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/staffdesk/backend/internal/config"
	"github.com/staffdesk/backend/internal/http/handlers"
	"github.com/staffdesk/backend/internal/middleware"
	"github.com/staffdesk/backend/internal/rbac"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	employeeHandler *handlers.EmployeeHandler,
	leaveHandler *handlers.LeaveHandler,
	disciplineHandler *handlers.DisciplineHandler,
	inventoryHandler *handlers.InventoryHandler,
	blacklistHandler *handlers.BlacklistHandler,
	notificationHandler *handlers.NotificationHandler,
	activityHandler *handlers.ActivityHandler,
	backupHandler *handlers.BackupHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Everything below requires a valid token
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// Employees
	protected.Post("/employees", middleware.RequirePermission(rbac.PermManageEmployees), employeeHandler.CreateEmployee)
	protected.Get("/employees", middleware.RequirePermission(rbac.PermViewEmployees), employeeHandler.ListEmployees)
	protected.Get("/employees/:id", middleware.RequirePermission(rbac.PermViewEmployees), employeeHandler.GetEmployee)
	protected.Put("/employees/:id", middleware.RequirePermission(rbac.PermManageEmployees), employeeHandler.UpdateEmployee)
	protected.Delete("/employees/:id", middleware.RequirePermission(rbac.PermManageEmployees), employeeHandler.DeleteEmployee)

	// Leave requests
	protected.Post("/leaves", middleware.RequirePermission(rbac.PermRequestLeave), leaveHandler.RequestLeave)
	protected.Get("/leaves", middleware.RequirePermission(rbac.PermRequestLeave), leaveHandler.ListLeaves)
	protected.Get("/leaves/:id", middleware.RequirePermission(rbac.PermRequestLeave), leaveHandler.GetLeave)
	protected.Post("/leaves/:id/approve", middleware.RequirePermission(rbac.PermDecideLeave), leaveHandler.ApproveLeave)
	protected.Post("/leaves/:id/reject", middleware.RequirePermission(rbac.PermDecideLeave), leaveHandler.RejectLeave)
	protected.Post("/leaves/:id/cancel", middleware.RequirePermission(rbac.PermRequestLeave), leaveHandler.CancelLeave)

	// Disciplinary actions
	protected.Post("/discipline", middleware.RequirePermission(rbac.PermManageDiscipline), disciplineHandler.CreateAction)
	protected.Get("/discipline", middleware.RequirePermission(rbac.PermManageDiscipline), disciplineHandler.ListActions)
	protected.Get("/discipline/:id", middleware.RequirePermission(rbac.PermManageDiscipline), disciplineHandler.GetAction)
	protected.Put("/discipline/:id", middleware.RequirePermission(rbac.PermManageDiscipline), disciplineHandler.UpdateAction)
	protected.Delete("/discipline/:id", middleware.RequirePermission(rbac.PermManageDiscipline), disciplineHandler.DeleteAction)

	// Inventory
	protected.Post("/inventory", middleware.RequirePermission(rbac.PermManageInventory), inventoryHandler.CreateItem)
	protected.Get("/inventory", middleware.RequirePermission(rbac.PermWithdrawInventory), inventoryHandler.ListItems)
	protected.Get("/inventory/:id", middleware.RequirePermission(rbac.PermWithdrawInventory), inventoryHandler.GetItem)
	protected.Put("/inventory/:id", middleware.RequirePermission(rbac.PermManageInventory), inventoryHandler.UpdateItem)
	protected.Delete("/inventory/:id", middleware.RequirePermission(rbac.PermManageInventory), inventoryHandler.DeleteItem)
	protected.Post("/inventory/:id/withdraw", middleware.RequirePermission(rbac.PermWithdrawInventory), inventoryHandler.WithdrawItem)
	protected.Get("/withdrawals", middleware.RequirePermission(rbac.PermWithdrawInventory), inventoryHandler.ListWithdrawals)

	// Blacklist
	protected.Post("/blacklist", middleware.RequirePermission(rbac.PermManageBlacklist), blacklistHandler.CreateEntry)
	protected.Get("/blacklist", middleware.RequirePermission(rbac.PermManageBlacklist), blacklistHandler.ListEntries)
	protected.Get("/blacklist/:id", middleware.RequirePermission(rbac.PermManageBlacklist), blacklistHandler.GetEntry)
	protected.Delete("/blacklist/:id", middleware.RequirePermission(rbac.PermManageBlacklist), blacklistHandler.DeleteEntry)

	// Notifications (own mailbox, no extra permission)
	protected.Get("/notifications", notificationHandler.ListNotifications)
	protected.Get("/notifications/unread-count", notificationHandler.UnreadCount)
	protected.Post("/notifications/:id/read", notificationHandler.MarkRead)
	protected.Post("/notifications/read-all", notificationHandler.MarkAllRead)

	// Activity log
	protected.Get("/activity-log", middleware.RequirePermission(rbac.PermViewActivityLog), activityHandler.ListActivity)
	protected.Get("/activity-log/analytics", middleware.RequirePermission(rbac.PermViewActivityLog), activityHandler.GetAnalytics)
	protected.Delete("/activity-log", middleware.AdminMiddleware(), activityHandler.PurgeActivity)

	// Backup and restore (admin only)
	admin := protected.Group("", middleware.AdminMiddleware())
	admin.Post("/backup", backupHandler.CreateBackup)
	admin.Get("/backup/history", backupHandler.BackupHistory)
	admin.Post("/restore", backupHandler.Restore)
	admin.Post("/backup/schedules", backupHandler.CreateSchedule)
	admin.Get("/backup/schedules", backupHandler.ListSchedules)
	admin.Put("/backup/schedules/:id", backupHandler.UpdateSchedule)
	admin.Delete("/backup/schedules/:id", backupHandler.DeleteSchedule)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
