package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/staffdesk/backend/internal/http/dto"
	"github.com/staffdesk/backend/internal/middleware"
	"github.com/staffdesk/backend/internal/services"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
	log                 *zap.Logger
}

func NewNotificationHandler(notificationService *services.NotificationService, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, log: log}
}

func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	notifications, err := h.notificationService.ListForRecipient(
		c.Context(), middleware.GetUserID(c),
		c.QueryBool("unread", false),
		c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		h.log.Error("list notifications failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: notifications})
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.notificationService.UnreadCount(c.Context(), middleware.GetUserID(c))
	if err != nil {
		h.log.Error("unread count failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.UnreadCountResponse{Count: count}})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid notification id"})
	}

	if err := h.notificationService.MarkRead(c.Context(), id, middleware.GetUserID(c)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "notification not found"})
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.notificationService.MarkAllRead(c.Context(), middleware.GetUserID(c)); err != nil {
		h.log.Error("mark all read failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}
