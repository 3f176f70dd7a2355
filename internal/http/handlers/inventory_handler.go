package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/staffdesk/backend/internal/http/dto"
	"github.com/staffdesk/backend/internal/models"
	"github.com/staffdesk/backend/internal/repositories"
	"github.com/staffdesk/backend/internal/services"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	inventoryService *services.InventoryService
	log              *zap.Logger
}

func NewInventoryHandler(inventoryService *services.InventoryService, log *zap.Logger) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService, log: log}
}

func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var req dto.CreateInventoryItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	item := &models.InventoryItem{
		Name:         req.Name,
		Category:     req.Category,
		Unit:         req.Unit,
		CurrentStock: req.CurrentStock,
		MinStock:     req.MinStock,
	}

	if err := h.inventoryService.Create(c.Context(), requestActor(c), item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: item})
}

func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid item id"})
	}

	item, err := h.inventoryService.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "item not found"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: item})
}

func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	filter := repositories.InventoryFilter{
		Search: c.Query("search"),
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}

	items, err := h.inventoryService.List(c.Context(), filter)
	if err != nil {
		h.log.Error("list inventory failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: items})
}

func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid item id"})
	}

	var req dto.UpdateInventoryItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	item := &models.InventoryItem{
		Name:         req.Name,
		Category:     req.Category,
		Unit:         req.Unit,
		CurrentStock: req.CurrentStock,
		MinStock:     req.MinStock,
	}

	updated, err := h.inventoryService.Update(c.Context(), id, requestActor(c), item)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: updated})
}

func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid item id"})
	}

	if err := h.inventoryService.Delete(c.Context(), id, requestActor(c)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "item not found"})
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *InventoryHandler) WithdrawItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid item id"})
	}

	var req dto.WithdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	withdrawal, err := h.inventoryService.Withdraw(c.Context(), id, requestActor(c), req.Quantity, req.Purpose)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: withdrawal})
}

func (h *InventoryHandler) ListWithdrawals(c *fiber.Ctx) error {
	filter := repositories.WithdrawalFilter{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	if v := c.Query("itemId"); v != "" {
		filter.ItemID = &v
	}
	if v := c.Query("withdrawnBy"); v != "" {
		filter.WithdrawnBy = &v
	}

	withdrawals, err := h.inventoryService.ListWithdrawals(c.Context(), filter)
	if err != nil {
		h.log.Error("list withdrawals failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: withdrawals})
}
