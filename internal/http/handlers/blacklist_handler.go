package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/staffdesk/backend/internal/http/dto"
	"github.com/staffdesk/backend/internal/models"
	"github.com/staffdesk/backend/internal/services"
	"go.uber.org/zap"
)

type BlacklistHandler struct {
	blacklistService *services.BlacklistService
	log              *zap.Logger
}

func NewBlacklistHandler(blacklistService *services.BlacklistService, log *zap.Logger) *BlacklistHandler {
	return &BlacklistHandler{blacklistService: blacklistService, log: log}
}

func (h *BlacklistHandler) CreateEntry(c *fiber.Ctx) error {
	var req dto.CreateBlacklistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	entry := &models.BlacklistEntry{
		SubjectName: req.SubjectName,
		IDNumber:    req.IDNumber,
		Reason:      req.Reason,
	}

	if err := h.blacklistService.Create(c.Context(), requestActor(c), entry); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: entry})
}

func (h *BlacklistHandler) GetEntry(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid entry id"})
	}

	entry, err := h.blacklistService.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "entry not found"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: entry})
}

func (h *BlacklistHandler) ListEntries(c *fiber.Ctx) error {
	entries, err := h.blacklistService.List(c.Context(),
		c.Query("search"), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		h.log.Error("list blacklist failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: entries})
}

func (h *BlacklistHandler) DeleteEntry(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid entry id"})
	}

	if err := h.blacklistService.Delete(c.Context(), id, requestActor(c)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "entry not found"})
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}
