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

type LeaveHandler struct {
	leaveService *services.LeaveService
	log          *zap.Logger
}

func NewLeaveHandler(leaveService *services.LeaveService, log *zap.Logger) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService, log: log}
}

func (h *LeaveHandler) RequestLeave(c *fiber.Ctx) error {
	var req dto.RequestLeaveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	leave := &models.Leave{
		EmployeeID: req.EmployeeID,
		Type:       req.Type,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Reason:     req.Reason,
	}

	if err := h.leaveService.Request(c.Context(), requestActor(c), leave); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: leave})
}

func (h *LeaveHandler) GetLeave(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid leave id"})
	}

	leave, err := h.leaveService.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "leave not found"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: leave})
}

func (h *LeaveHandler) ListLeaves(c *fiber.Ctx) error {
	filter := repositories.LeaveFilter{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	if v := c.Query("employeeId"); v != "" {
		filter.EmployeeID = &v
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("type"); v != "" {
		filter.Type = &v
	}

	leaves, err := h.leaveService.List(c.Context(), filter)
	if err != nil {
		h.log.Error("list leaves failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: leaves})
}

func (h *LeaveHandler) ApproveLeave(c *fiber.Ctx) error {
	return h.decide(c, true)
}

func (h *LeaveHandler) RejectLeave(c *fiber.Ctx) error {
	return h.decide(c, false)
}

func (h *LeaveHandler) decide(c *fiber.Ctx, approve bool) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid leave id"})
	}

	var req dto.DecideLeaveRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	leave, err := h.leaveService.Decide(c.Context(), id, requestActor(c), approve, req.Note)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: leave})
}

func (h *LeaveHandler) CancelLeave(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid leave id"})
	}

	leave, err := h.leaveService.Cancel(c.Context(), id, requestActor(c))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: leave})
}
