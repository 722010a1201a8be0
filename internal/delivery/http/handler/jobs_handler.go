package handler

import (
	"lynxhire/internal/delivery/http/dto"
	"lynxhire/internal/delivery/http/middleware"
	"lynxhire/internal/domain/job"
	"lynxhire/internal/pkg/response"
	"lynxhire/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc   usecase.JobUsecase
	desc usecase.JobDescriptionUsecase
}

func NewJobsHandler(uc usecase.JobUsecase, desc usecase.JobDescriptionUsecase) *JobsHandler {
	return &JobsHandler{uc: uc, desc: desc}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/jobs", h.HandleListJobs)
	r.Post("/jobs", auth, h.HandleCreateJob)
	r.Post("/jobs/description", auth, h.HandleGenerateDescription)
	r.Get("/jobs/:id", h.HandleGetJob)
	r.Patch("/jobs/:id/status", auth, h.HandleUpdateStatus)
	r.Get("/employer/jobs", auth, h.HandleListEmployerJobs)
}

func (h *JobsHandler) HandleListJobs(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.ListActiveJobs(c.Context(), job.ListFilter{
		Search:          c.Query("search"),
		WorkType:        c.Query("work_type"),
		LocationType:    c.Query("location_type"),
		ExperienceLevel: c.Query("experience_level"),
		Limit:           limit,
		Offset:          offset,
	})
	if err != nil {
		return mapUsecaseError(err, nil)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(items))
}

func (h *JobsHandler) HandleGetJob(c fiber.Ctx) error {
	id, err := uuidParam(c, "id", "Job not found")
	if err != nil {
		return err
	}

	p, err := h.uc.GetPublicJob(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err, messages{usecase.ErrNotFound: "Job not found"})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(p))
}

func (h *JobsHandler) HandleCreateJob(c fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	p, err := h.uc.CreateJob(c.Context(), callerOf(c), req.Input())
	if err != nil {
		return mapUsecaseError(err, messages{
			usecase.ErrRoleForbidden: "Only employers can post jobs.",
			usecase.ErrNotFound:      "Company profile required",
			usecase.ErrInvalidInput:  "Title, description, work type and location type are required",
		})
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewJobResponse(p))
}

func (h *JobsHandler) HandleUpdateStatus(c fiber.Ctx) error {
	id, err := uuidParam(c, "id", "Job not found")
	if err != nil {
		return err
	}
	var req dto.StatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	if err := h.uc.UpdateJobStatus(c.Context(), callerOf(c), id, req.Status); err != nil {
		return mapUsecaseError(err, messages{
			usecase.ErrNotFound:     "Job not found",
			usecase.ErrInvalidInput: "Invalid status",
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"status": req.Status})
}

func (h *JobsHandler) HandleListEmployerJobs(c fiber.Ctx) error {
	items, err := h.uc.ListEmployerJobs(c.Context(), callerOf(c))
	if err != nil {
		return mapUsecaseError(err, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(items))
}

func (h *JobsHandler) HandleGenerateDescription(c fiber.Ctx) error {
	var req dto.JobDescriptionRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	text, err := h.desc.Generate(c.Context(), callerOf(c), req.Input())
	if err != nil {
		return mapUsecaseError(err, messages{
			usecase.ErrRoleForbidden: "Only employers can generate job descriptions.",
			usecase.ErrInvalidInput:  "Title and key points are required",
			usecase.ErrNotConfigured: "AI generation is not configured",
			usecase.ErrUpstream:      "AI generation failed",
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobDescriptionResponse{Description: text})
}
