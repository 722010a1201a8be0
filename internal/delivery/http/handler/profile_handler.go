package handler

import (
	"lynxhire/internal/delivery/http/dto"
	"lynxhire/internal/delivery/http/middleware"
	"lynxhire/internal/pkg/response"
	"lynxhire/internal/usecase"
	ucuser "lynxhire/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc usecase.UserUsecase
}

func NewProfileHandler(uc usecase.UserUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/me", auth, h.GetMe)
	r.Patch("/me", auth, h.UpdateMe)
	r.Put("/me/candidate-profile", auth, h.UpsertCandidateProfile)
	r.Put("/me/company", auth, h.UpsertCompany)
	r.Post("/me/onboarding/complete", auth, h.CompleteOnboarding)
	r.Post("/me/resume", auth, h.UploadResume)
	r.Post("/me/logo", auth, h.UploadLogo)
}

func (h *ProfileHandler) GetMe(c fiber.Ctx) error {
	me, err := h.uc.GetMe(c.Context(), callerOf(c))
	if err != nil {
		return mapUsecaseError(err, messages{ucuser.ErrNotFound: "User not found"})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMeResponse(me))
}

func (h *ProfileHandler) UpdateMe(c fiber.Ctx) error {
	var req dto.UpdateMeRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	if req.FullName == nil {
		return badRequest(nil)
	}

	me, err := h.uc.UpdateMe(c.Context(), callerOf(c), ucuser.UpdateMeInput{FullName: req.FullName})
	if err != nil {
		return mapUsecaseError(err, messages{
			ucuser.ErrNotFound:     "User not found",
			ucuser.ErrInvalidInput: "Invalid request payload",
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMeResponse(me))
}

func (h *ProfileHandler) UpsertCandidateProfile(c fiber.Ctx) error {
	var req dto.CandidateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	cp, err := h.uc.UpsertCandidateProfile(c.Context(), callerOf(c), req.Input())
	if err != nil {
		return mapUsecaseError(err, messages{
			ucuser.ErrRoleForbidden: "Only candidates have a candidate profile.",
			ucuser.ErrInvalidInput:  "Invalid request payload",
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCandidateProfileResponse(cp))
}

func (h *ProfileHandler) UpsertCompany(c fiber.Ctx) error {
	var req dto.CompanyRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	co, err := h.uc.UpsertCompany(c.Context(), callerOf(c), req.Input())
	if err != nil {
		return mapUsecaseError(err, messages{
			ucuser.ErrRoleForbidden: "Only employers have a company profile.",
			ucuser.ErrInvalidInput:  "Company name is required",
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCompanyResponse(co))
}

func (h *ProfileHandler) CompleteOnboarding(c fiber.Ctx) error {
	if err := h.uc.CompleteOnboarding(c.Context(), callerOf(c)); err != nil {
		return mapUsecaseError(err, messages{ucuser.ErrNotFound: "User not found"})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"onboarding_complete": true})
}

func (h *ProfileHandler) UploadResume(c fiber.Ctx) error {
	up, closeFn, err := formUpload(c)
	if err != nil {
		return err
	}
	defer closeFn()

	url, err := h.uc.UploadResume(c.Context(), callerOf(c), up)
	if err != nil {
		return mapUsecaseError(err, messages{
			ucuser.ErrRoleForbidden: "Only candidates can upload a resume.",
			ucuser.ErrInvalidInput:  "Resume must be a PDF or Word document up to 5 MB",
			ucuser.ErrNotConfigured: "File storage is not configured",
			ucuser.ErrUpstream:      "File upload failed",
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.UploadResponse{URL: url})
}

func (h *ProfileHandler) UploadLogo(c fiber.Ctx) error {
	up, closeFn, err := formUpload(c)
	if err != nil {
		return err
	}
	defer closeFn()

	url, err := h.uc.UploadLogo(c.Context(), callerOf(c), up)
	if err != nil {
		return mapUsecaseError(err, messages{
			ucuser.ErrRoleForbidden: "Only employers can upload a company logo.",
			ucuser.ErrNotFound:      "Company profile required",
			ucuser.ErrInvalidInput:  "Logo must be an image up to 5 MB",
			ucuser.ErrNotConfigured: "File storage is not configured",
			ucuser.ErrUpstream:      "File upload failed",
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.UploadResponse{URL: url})
}

func formUpload(c fiber.Ctx) (ucuser.Upload, func(), error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return ucuser.Upload{}, nil, middleware.NewAppError(fiber.StatusBadRequest, "A file field is required", nil, err)
	}
	if fh.Size > ucuser.MaxUploadBytes {
		return ucuser.Upload{}, nil, middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "File exceeds 5 MB", nil, nil)
	}
	f, err := fh.Open()
	if err != nil {
		return ucuser.Upload{}, nil, middleware.NewAppError(fiber.StatusBadRequest, "Unreadable file", nil, err)
	}
	return ucuser.Upload{Filename: fh.Filename, Size: fh.Size, Body: f}, func() { _ = f.Close() }, nil
}
