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

type EmployeeHandler struct {
	employeeService *services.EmployeeService
	log             *zap.Logger
}

func NewEmployeeHandler(employeeService *services.EmployeeService, log *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService, log: log}
}

func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	employee := &models.Employee{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		Position:   req.Position,
		Status:     req.Status,
		HireDate:   req.HireDate,
	}

	if err := h.employeeService.Create(c.Context(), requestActor(c), employee); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: employee})
}

func (h *EmployeeHandler) GetEmployee(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid employee id"})
	}

	employee, err := h.employeeService.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "employee not found"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: employee})
}

func (h *EmployeeHandler) ListEmployees(c *fiber.Ctx) error {
	filter := repositories.EmployeeFilter{
		Search: c.Query("search"),
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	if v := c.Query("department"); v != "" {
		filter.Department = &v
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}

	employees, err := h.employeeService.List(c.Context(), filter)
	if err != nil {
		h.log.Error("list employees failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: employees})
}

func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid employee id"})
	}

	var req dto.UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	employee := &models.Employee{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		Position:   req.Position,
		Status:     req.Status,
		HireDate:   req.HireDate,
	}

	updated, err := h.employeeService.Update(c.Context(), id, requestActor(c), employee)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: updated})
}

func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid employee id"})
	}

	if err := h.employeeService.Delete(c.Context(), id, requestActor(c)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "employee not found"})
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}
