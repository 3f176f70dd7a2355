package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/staffdesk/backend/internal/audit"
	"github.com/staffdesk/backend/internal/backup"
	"github.com/staffdesk/backend/internal/config"
	"github.com/staffdesk/backend/internal/db"
	"github.com/staffdesk/backend/internal/docstore"
	"github.com/staffdesk/backend/internal/events"
	apphttp "github.com/staffdesk/backend/internal/http"
	"github.com/staffdesk/backend/internal/http/handlers"
	"github.com/staffdesk/backend/internal/repositories"
	"github.com/staffdesk/backend/internal/services"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Document store + repositories
	store := docstore.New(pool, log)
	employeeRepo := repositories.NewEmployeeRepo(store)
	leaveRepo := repositories.NewLeaveRepo(store)
	disciplineRepo := repositories.NewDisciplineRepo(store)
	inventoryRepo := repositories.NewInventoryRepo(store)
	blacklistRepo := repositories.NewBlacklistRepo(store)
	notificationRepo := repositories.NewNotificationRepo(store)
	activityRepo := repositories.NewActivityRepo(store, pool)
	snapshotRepo := repositories.NewSnapshotRepo(pool)
	scheduleRepo := repositories.NewScheduleRepo(store)

	// Events + observers
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)
	observers := events.NewFanout(log,
		events.NewPublisherObserver(publisher, events.StreamDomain),
		services.NewWebhookClient(cfg.WebhookURL, cfg.ObserverTimeout, log),
		services.NewSheetsClient(cfg.SheetsBridgeURL, cfg.ObserverTimeout, log),
	)

	// Services
	auditService := audit.NewService(activityRepo, log)
	notificationService := services.NewNotificationService(notificationRepo, publisher, log)
	employeeService := services.NewEmployeeService(employeeRepo, auditService, observers, log)
	leaveService := services.NewLeaveService(leaveRepo, employeeRepo, notificationService, auditService, observers, log)
	disciplineService := services.NewDisciplineService(disciplineRepo, employeeRepo, auditService, observers, log)
	inventoryService := services.NewInventoryService(inventoryRepo, notificationService, auditService, observers, cfg.LowStockThreshold, log)
	blacklistService := services.NewBlacklistService(blacklistRepo, auditService, log)
	backupEngine := backup.NewEngine(store, snapshotRepo, auditService, observers, log)
	restorer := backup.NewRestorer(store, auditService, log)
	scheduleService := backup.NewScheduleService(scheduleRepo, auditService, log)

	// Handlers
	employeeHandler := handlers.NewEmployeeHandler(employeeService, log)
	leaveHandler := handlers.NewLeaveHandler(leaveService, log)
	disciplineHandler := handlers.NewDisciplineHandler(disciplineService, log)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, log)
	blacklistHandler := handlers.NewBlacklistHandler(blacklistService, log)
	notificationHandler := handlers.NewNotificationHandler(notificationService, log)
	activityHandler := handlers.NewActivityHandler(auditService, cfg.ActivityTrendDays, log)
	backupHandler := handlers.NewBackupHandler(backupEngine, restorer, scheduleService, snapshotRepo, notificationService, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb,
		employeeHandler, leaveHandler, disciplineHandler, inventoryHandler,
		blacklistHandler, notificationHandler, activityHandler, backupHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
