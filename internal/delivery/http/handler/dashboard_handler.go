package handler

import (
	"lynxhire/internal/pkg/response"
	"lynxhire/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DashboardHandler struct {
	uc usecase.DashboardUsecase
}

func NewDashboardHandler(uc usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}
	r.Get("/dashboard/stats", auth, h.HandleStats)
}

func (h *DashboardHandler) HandleStats(c fiber.Ctx) error {
	stats, err := h.uc.Stats(c.Context(), callerOf(c))
	if err != nil {
		return mapUsecaseError(err, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, stats)
}
