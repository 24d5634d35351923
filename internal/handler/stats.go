package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/driftboard/driftboard-go/internal/middleware"
	"github.com/driftboard/driftboard-go/internal/service"
)

type StatsHandler struct {
	svc *service.ItemService
}

func NewStatsHandler(svc *service.ItemService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	stats, err := h.svc.Stats(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load stats")
	}
	return c.JSON(stats)
}
