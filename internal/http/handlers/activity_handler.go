package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/staffdesk/backend/internal/audit"
	"github.com/staffdesk/backend/internal/http/dto"
	"github.com/staffdesk/backend/internal/middleware"
	"github.com/staffdesk/backend/internal/repositories"
	"go.uber.org/zap"
)

type ActivityHandler struct {
	auditService *audit.Service
	trendDays    int
	log          *zap.Logger
}

func NewActivityHandler(auditService *audit.Service, trendDays int, log *zap.Logger) *ActivityHandler {
	return &ActivityHandler{auditService: auditService, trendDays: trendDays, log: log}
}

func (h *ActivityHandler) ListActivity(c *fiber.Ctx) error {
	filter := repositories.ActivityFilter{
		Search: c.Query("search"),
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if v := c.Query("action"); v != "" {
		filter.Action = &v
	}
	if v := c.Query("entityType"); v != "" {
		filter.EntityType = &v
	}
	if v := c.Query("performedBy"); v != "" {
		filter.PerformedBy = &v
	}
	if v := c.Query("since"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.Since = &t
		}
	}
	if v := c.Query("until"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.Until = &t
		}
	}

	entries, err := h.auditService.List(c.Context(), filter)
	if err != nil {
		h.log.Error("list activity failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: entries})
}

func (h *ActivityHandler) GetAnalytics(c *fiber.Ctx) error {
	days := c.QueryInt("days", h.trendDays)
	analytics, err := h.auditService.Analytics(c.Context(), days)
	if err != nil {
		h.log.Error("activity analytics failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: analytics})
}

// PurgeActivity wipes the log. Admin-only, and the purge itself is the
// first entry of the fresh log.
func (h *ActivityHandler) PurgeActivity(c *fiber.Ctx) error {
	deleted, err := h.auditService.Purge(c.Context(),
		middleware.GetUserID(c).String(), middleware.GetUserName(c),
		middleware.ClientIP(c), middleware.ClientUserAgent(c))
	if err != nil {
		h.log.Error("activity purge failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.PurgeResponse{DeletedCount: deleted}})
}
