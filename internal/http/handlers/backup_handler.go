package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/staffdesk/backend/internal/backup"
	"github.com/staffdesk/backend/internal/http/dto"
	"github.com/staffdesk/backend/internal/models"
	"github.com/staffdesk/backend/internal/repositories"
	"github.com/staffdesk/backend/internal/services"
	"go.uber.org/zap"
)

type BackupHandler struct {
	engine          *backup.Engine
	restorer        *backup.Restorer
	scheduleService *backup.ScheduleService
	snapshotRepo    *repositories.SnapshotRepo
	notifications   *services.NotificationService
	log             *zap.Logger
}

func NewBackupHandler(
	engine *backup.Engine,
	restorer *backup.Restorer,
	scheduleService *backup.ScheduleService,
	snapshotRepo *repositories.SnapshotRepo,
	notifications *services.NotificationService,
	log *zap.Logger,
) *BackupHandler {
	return &BackupHandler{
		engine:          engine,
		restorer:        restorer,
		scheduleService: scheduleService,
		snapshotRepo:    snapshotRepo,
		notifications:   notifications,
		log:             log,
	}
}

// CreateBackup snapshots every collection and returns the full payload
// so the client can store it offline. A scheduleId marks the run as
// automatic and stamps the schedule's lastRun.
func (h *BackupHandler) CreateBackup(c *fiber.Ctx) error {
	var req dto.CreateBackupRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	opts := backup.CreateOptions{IsAutomatic: req.IsAutomatic}
	if req.ScheduleID != "" {
		scheduleID, err := uuid.Parse(req.ScheduleID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid schedule id"})
		}
		if _, err := h.scheduleService.GetByID(c.Context(), scheduleID); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "schedule not found"})
		}
		opts.ScheduleID = req.ScheduleID
		opts.IsAutomatic = true
	}

	actor := requestActor(c)
	snap, err := h.engine.Create(c.Context(), actor, opts)
	if err != nil {
		h.log.Error("backup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "backup failed"})
	}

	if opts.ScheduleID != "" {
		scheduleID, _ := uuid.Parse(opts.ScheduleID)
		if err := h.scheduleService.TouchLastRun(c.Context(), scheduleID, time.Now().UTC()); err != nil {
			h.log.Warn("schedule last run update failed",
				zap.String("schedule_id", opts.ScheduleID), zap.Error(err))
		}
	}

	h.notifications.Notify(c.Context(), models.Notification{
		RecipientID: actor.ID,
		Kind:        models.NotificationBackupCompleted,
		Title:       "Backup completed",
		EntityType:  "Backup",
		EntityID:    snap.ID,
	})

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: snap})
}

func (h *BackupHandler) BackupHistory(c *fiber.Ctx) error {
	filter := repositories.SnapshotFilter{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if c.Query("automatic") != "" {
		auto := c.QueryBool("automatic", false)
		filter.IsAutomatic = &auto
	}

	infos, err := h.engine.History(c.Context(), filter)
	if err != nil {
		h.log.Error("backup history failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: infos})
}

// Restore accepts either an inline snapshot (a previously downloaded
// backup file) or a snapshotId referencing stored history.
func (h *BackupHandler) Restore(c *fiber.Ctx) error {
	var req dto.RestoreRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	snap := req.Backup
	if snap == nil {
		if v := c.Query("snapshotId"); v != "" {
			id, err := uuid.Parse(v)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid snapshot id"})
			}
			snap, err = h.snapshotRepo.GetByID(c.Context(), id)
			if err != nil {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "snapshot not found"})
			}
		}
	}

	restored, err := h.restorer.Restore(c.Context(), snap, req.ClearExisting, requestActor(c))
	if errors.Is(err, backup.ErrInvalidSnapshot) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	if err != nil {
		// Failure past validation: some collections may already be
		// restored. That is a server-side fault, not a bad request.
		h.log.Error("restore failed partway",
			zap.Strings("restored_collections", restored), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.RestoreResponse{
		RestoredCollections: restored,
		ClearExisting:       req.ClearExisting,
	}})
}

func (h *BackupHandler) CreateSchedule(c *fiber.Ctx) error {
	var req dto.CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	schedule := &models.BackupSchedule{
		Frequency:     req.Frequency,
		Time:          req.Time,
		DayOfWeek:     req.DayOfWeek,
		DayOfMonth:    req.DayOfMonth,
		IsActive:      req.IsActive,
		RetentionDays: req.RetentionDays,
		Collections:   req.Collections,
	}

	if err := h.scheduleService.Create(c.Context(), requestActor(c), schedule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: schedule})
}

func (h *BackupHandler) ListSchedules(c *fiber.Ctx) error {
	schedules, err := h.scheduleService.List(c.Context())
	if err != nil {
		h.log.Error("list schedules failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: schedules})
}

func (h *BackupHandler) UpdateSchedule(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid schedule id"})
	}

	var req dto.UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	updated, err := h.scheduleService.Update(c.Context(), id, requestActor(c), backup.ScheduleUpdate{
		Frequency:     req.Frequency,
		Time:          req.Time,
		DayOfWeek:     req.DayOfWeek,
		DayOfMonth:    req.DayOfMonth,
		IsActive:      req.IsActive,
		RetentionDays: req.RetentionDays,
		Collections:   req.Collections,
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: updated})
}

func (h *BackupHandler) DeleteSchedule(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid schedule id"})
	}

	if err := h.scheduleService.Delete(c.Context(), id, requestActor(c)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "schedule not found"})
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}
