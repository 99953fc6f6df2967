package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-assignment/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Assignments *handlers.AssignmentsHandler
	Workload    *handlers.WorkloadHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	tickets := app.Group("/tickets")
	tickets.Post("/:id/route", cfg.Assignments.Route)
	tickets.Post("/:id/auto-assign", cfg.Assignments.AutoAssign)
	tickets.Post("/:id/claim", cfg.Assignments.Claim)
	tickets.Post("/:id/reassign", cfg.Assignments.Reassign)
	tickets.Post("/:id/transfer", cfg.Assignments.Transfer)
	tickets.Post("/:id/transfer-and-assign", cfg.Assignments.TransferAndAssign)

	app.Get("/workload/workers/:id", cfg.Workload.WorkerWorkload)
	app.Get("/workload/units/:id", cfg.Workload.UnitWorkload)
	app.Get("/units/:id/least-busy", cfg.Workload.LeastBusyWorker)
}
