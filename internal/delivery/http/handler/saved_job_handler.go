package handler

import (
	"lynxhire/internal/delivery/http/dto"
	"lynxhire/internal/pkg/response"
	"lynxhire/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SavedJobHandler struct {
	uc usecase.SavedJobUsecase
}

func NewSavedJobHandler(uc usecase.SavedJobUsecase) *SavedJobHandler {
	return &SavedJobHandler{uc: uc}
}

func (h *SavedJobHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}
	r.Post("/jobs/:id/save", auth, h.HandleToggle)
	r.Get("/saved-jobs", auth, h.HandleList)
}

func (h *SavedJobHandler) HandleToggle(c fiber.Ctx) error {
	jobID, err := uuidParam(c, "id", "Job not found")
	if err != nil {
		return err
	}

	saved, err := h.uc.Toggle(c.Context(), callerOf(c), jobID)
	if err != nil {
		return mapUsecaseError(err, messages{
			usecase.ErrRoleForbidden: "Only candidates can save jobs.",
			usecase.ErrNotFound:      "Job not found",
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SavedToggleResponse{Saved: saved})
}

func (h *SavedJobHandler) HandleList(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), callerOf(c))
	if err != nil {
		return mapUsecaseError(err, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(items))
}
