package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-assignment/internal/api/dto"
	"github.com/spec-kit/ticket-assignment/internal/service"
	apperrors "github.com/spec-kit/ticket-assignment/pkg/util"
)

// WorkloadHandler exposes the workload analyzer queries.
type WorkloadHandler struct {
	service *service.WorkloadService
}

// NewWorkloadHandler constructs handler.
func NewWorkloadHandler(workloadService *service.WorkloadService) *WorkloadHandler {
	return &WorkloadHandler{service: workloadService}
}

// WorkerWorkload GET /workload/workers/:id.
func (h *WorkloadHandler) WorkerWorkload(c *fiber.Ctx) error {
	workerID := c.Params("id")
	count, err := h.service.WorkerWorkload(c.UserContext(), workerID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.WorkloadResponse{ID: workerID, Count: count}})
}

// UnitWorkload GET /workload/units/:id.
func (h *WorkloadHandler) UnitWorkload(c *fiber.Ctx) error {
	unitID := c.Params("id")
	count, err := h.service.UnitWorkload(c.UserContext(), unitID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.WorkloadResponse{ID: unitID, Count: count}})
}

// LeastBusyWorker GET /units/:id/least-busy.
func (h *WorkloadHandler) LeastBusyWorker(c *fiber.Ctx) error {
	worker, err := h.service.LeastBusyWorker(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	if worker == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": dto.FromWorker(worker)})
}
