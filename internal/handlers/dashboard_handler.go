package handlers

import (
	"log"

	"podcatalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler serves the figures shown on the admin dashboard.
type DashboardHandler struct {
	service *services.ProductService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(service *services.ProductService) *DashboardHandler {
	return &DashboardHandler{
		service: service,
	}
}

// RegisterRoutes registers the dashboard routes with the Fiber app.
func (h *DashboardHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/dashboard/stats", h.HandleGetStats)
}

// HandleGetStats returns product, variant and category totals.
func (h *DashboardHandler) HandleGetStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		log.Printf("Error computing catalog stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.JSON(stats)
}
