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

type DisciplineHandler struct {
	disciplineService *services.DisciplineService
	log               *zap.Logger
}

func NewDisciplineHandler(disciplineService *services.DisciplineService, log *zap.Logger) *DisciplineHandler {
	return &DisciplineHandler{disciplineService: disciplineService, log: log}
}

func (h *DisciplineHandler) CreateAction(c *fiber.Ctx) error {
	var req dto.CreateDisciplineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	action := &models.DisciplinaryAction{
		EmployeeID:  req.EmployeeID,
		Category:    req.Category,
		Description: req.Description,
	}

	if err := h.disciplineService.Create(c.Context(), requestActor(c), action); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: action})
}

func (h *DisciplineHandler) GetAction(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid action id"})
	}

	action, err := h.disciplineService.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "action not found"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: action})
}

func (h *DisciplineHandler) ListActions(c *fiber.Ctx) error {
	filter := repositories.DisciplineFilter{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	if v := c.Query("employeeId"); v != "" {
		filter.EmployeeID = &v
	}
	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}

	actions, err := h.disciplineService.List(c.Context(), filter)
	if err != nil {
		h.log.Error("list disciplinary actions failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: actions})
}

func (h *DisciplineHandler) UpdateAction(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid action id"})
	}

	var req dto.UpdateDisciplineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	action := &models.DisciplinaryAction{
		Category:    req.Category,
		Description: req.Description,
	}

	updated, err := h.disciplineService.Update(c.Context(), id, requestActor(c), action)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: updated})
}

func (h *DisciplineHandler) DeleteAction(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid action id"})
	}

	if err := h.disciplineService.Delete(c.Context(), id, requestActor(c)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "action not found"})
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}
