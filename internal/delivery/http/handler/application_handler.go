package handler

import (
	"lynxhire/internal/delivery/http/dto"
	"lynxhire/internal/delivery/http/middleware"
	"lynxhire/internal/domain/profile"
	"lynxhire/internal/pkg/response"
	"lynxhire/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	MsgApplyLoginRequired  = "You must be logged in to apply."
	MsgApplyCandidatesOnly = "Only candidates can apply to jobs."
	MsgAlreadyApplied      = "You have already applied to this job."
	MsgJobNotAccepting     = "Job not found or no longer accepting applications."
	MsgApplicationNotFound = "Application not found"
	MsgUnauthorized        = "Unauthorized"
)

type ApplicationHandler struct {
	uc      usecase.ApplicationUsecase
	scoring usecase.MatchingUsecase
}

func NewApplicationHandler(uc usecase.ApplicationUsecase, scoring usecase.MatchingUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, scoring: scoring}
}

// RegisterRoutes mounts the application endpoints. optional lets anonymous
// apply requests reach the handler so they get the workflow's own message.
func (h *ApplicationHandler) RegisterRoutes(r fiber.Router, auth, optional fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/applications", optional, h.HandleCreate)
	r.Get("/applications/me", auth, h.HandleListMine)
	r.Get("/applications/:id", auth, h.HandleGet)
	r.Patch("/applications/:id/status", auth, h.HandleUpdateStatus)
	r.Post("/applications/:id/score", auth, h.HandleScore)
	r.Get("/jobs/:id/applications", auth, h.HandleListForJob)
}

// HandleCreate leaves caller checks to the workflow: an unreadable job id is
// passed on as uuid.Nil so login and role errors still come first.
func (h *ApplicationHandler) HandleCreate(c fiber.Ctx) error {
	caller := callerOf(c)
	var req dto.CreateApplicationRequest
	if err := c.Bind().Body(&req); err != nil && caller.Authenticated() && caller.Role == profile.RoleCandidate {
		return badRequest(err)
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		jobID = uuid.Nil
	}

	app, err := h.uc.Create(c.Context(), caller, jobID, req.CoverLetter)
	if err != nil {
		return mapUsecaseError(err, messages{
			usecase.ErrUnauthorized:         MsgApplyLoginRequired,
			usecase.ErrRoleForbidden:        MsgApplyCandidatesOnly,
			usecase.ErrDuplicateApplication: MsgAlreadyApplied,
			usecase.ErrJobUnavailable:       MsgJobNotAccepting,
		})
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewApplicationResponse(app))
}

func (h *ApplicationHandler) HandleUpdateStatus(c fiber.Ctx) error {
	id, err := uuidParam(c, "id", MsgApplicationNotFound)
	if err != nil {
		return err
	}
	var req dto.StatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	if err := h.uc.UpdateStatus(c.Context(), callerOf(c), id, req.Status); err != nil {
		return mapUsecaseError(err, messages{
			usecase.ErrUnauthorized: MsgUnauthorized,
			usecase.ErrNotFound:     MsgApplicationNotFound,
			usecase.ErrInvalidInput: "Invalid status",
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"status": req.Status})
}

func (h *ApplicationHandler) HandleListMine(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	rows, err := h.uc.ListForCandidate(c.Context(), callerOf(c), limit)
	if err != nil {
		return mapUsecaseError(err, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCandidateApplicationResponses(rows))
}

func (h *ApplicationHandler) HandleListForJob(c fiber.Ctx) error {
	jobID, err := uuidParam(c, "id", "Job not found")
	if err != nil {
		return err
	}

	rows, err := h.uc.ListForJob(c.Context(), callerOf(c), jobID)
	if err != nil {
		return mapUsecaseError(err, messages{usecase.ErrNotFound: "Job not found"})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobApplicationResponses(rows))
}

func (h *ApplicationHandler) HandleGet(c fiber.Ctx) error {
	id, err := uuidParam(c, "id", MsgApplicationNotFound)
	if err != nil {
		return err
	}

	detail, err := h.uc.GetForEmployer(c.Context(), callerOf(c), id)
	if err != nil {
		return mapUsecaseError(err, messages{usecase.ErrNotFound: MsgApplicationNotFound})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationDetailResponse(detail))
}

func (h *ApplicationHandler) HandleScore(c fiber.Ctx) error {
	id, err := uuidParam(c, "id", MsgApplicationNotFound)
	if err != nil {
		return err
	}

	res, err := h.scoring.Score(c.Context(), callerOf(c), id)
	if err != nil {
		return mapUsecaseError(err, messages{
			usecase.ErrNotFound:      MsgApplicationNotFound,
			usecase.ErrNotConfigured: "Match scoring is not configured",
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.MatchScoreResponse{
		ApplicationID: id,
		Score:         res.Score,
		Reason:        res.Reason,
	})
}
