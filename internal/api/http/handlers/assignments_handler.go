package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-assignment/internal/api/dto"
	"github.com/spec-kit/ticket-assignment/internal/service"
	apperrors "github.com/spec-kit/ticket-assignment/pkg/util"
)

// AssignmentsHandler exposes the assignment engine operations.
type AssignmentsHandler struct {
	service *service.AssignmentService
}

// NewAssignmentsHandler constructs handler.
func NewAssignmentsHandler(assignmentService *service.AssignmentService) *AssignmentsHandler {
	return &AssignmentsHandler{service: assignmentService}
}

// Route POST /tickets/:id/route.
func (h *AssignmentsHandler) Route(c *fiber.Ctx) error {
	unit, err := h.service.RouteToUnit(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromUnit(unit)})
}

// AutoAssign POST /tickets/:id/auto-assign.
func (h *AssignmentsHandler) AutoAssign(c *fiber.Ctx) error {
	ticket, err := h.service.AutoRouteAndAssign(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// Claim POST /tickets/:id/claim.
func (h *AssignmentsHandler) Claim(c *fiber.Ctx) error {
	var req dto.ClaimRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.WorkerID) == "" {
		return apperrors.NewValidationError("worker_id required", nil)
	}
	ticket, err := h.service.Claim(c.UserContext(), c.Params("id"), req.WorkerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// Reassign POST /tickets/:id/reassign.
func (h *AssignmentsHandler) Reassign(c *fiber.Ctx) error {
	var req dto.ReassignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.WorkerID) == "" {
		return apperrors.NewValidationError("worker_id required", nil)
	}
	ticket, err := h.service.ReassignInternally(c.UserContext(), c.Params("id"), req.WorkerID, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// Transfer POST /tickets/:id/transfer.
func (h *AssignmentsHandler) Transfer(c *fiber.Ctx) error {
	var req dto.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.UnitID) == "" {
		return apperrors.NewValidationError("unit_id required", nil)
	}
	ticket, err := h.service.TransferToUnit(c.UserContext(), c.Params("id"), req.UnitID, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// TransferAndAssign POST /tickets/:id/transfer-and-assign.
func (h *AssignmentsHandler) TransferAndAssign(c *fiber.Ctx) error {
	var req dto.TransferAndAssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.UnitID) == "" || strings.TrimSpace(req.WorkerID) == "" {
		return apperrors.NewValidationError("unit_id and worker_id required", nil)
	}
	ticket, err := h.service.TransferAndAssign(c.UserContext(), c.Params("id"), req.UnitID, req.WorkerID, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}
