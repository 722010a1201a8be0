package handler

import (
	"errors"

	"lynxhire/internal/delivery/http/middleware"
	"lynxhire/internal/pkg/response"
	"lynxhire/internal/usecase"
	ucuser "lynxhire/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

// messages overrides the default text per usecase error for one endpoint.
type messages map[error]string

func (m messages) get(err error, def string) string {
	for target, msg := range m {
		if errors.Is(err, target) {
			return msg
		}
	}
	return def
}

func mapUsecaseError(err error, custom messages) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, custom.get(err, "Unauthorized"), nil, err)
	case errors.Is(err, usecase.ErrRoleForbidden), errors.Is(err, ucuser.ErrRoleForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, custom.get(err, "Forbidden"), nil, err)
	case errors.Is(err, usecase.ErrNotFound), errors.Is(err, ucuser.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, custom.get(err, "Not found"), nil, err)
	case errors.Is(err, usecase.ErrDuplicateApplication), errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, custom.get(err, "Conflict"), nil, err)
	case errors.Is(err, usecase.ErrJobUnavailable):
		return middleware.NewAppError(fiber.StatusNotFound, custom.get(err, "Job not available"), nil, err)
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, ucuser.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, custom.get(err, "Bad request"), nil, err)
	case errors.Is(err, usecase.ErrInvalidPlan):
		return middleware.NewAppError(fiber.StatusBadRequest, custom.get(err, "Invalid plan"), nil, err)
	case errors.Is(err, usecase.ErrInvalidSignature):
		return middleware.NewAppError(fiber.StatusBadRequest, custom.get(err, "Invalid signature"), nil, err)
	case errors.Is(err, usecase.ErrNotConfigured), errors.Is(err, ucuser.ErrNotConfigured):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, custom.get(err, "Service not configured"), nil, err)
	case errors.Is(err, usecase.ErrScoringFailed):
		return middleware.NewAppError(fiber.StatusBadGateway, custom.get(err, "Scoring failed"), nil, err)
	case errors.Is(err, usecase.ErrUpstream), errors.Is(err, ucuser.ErrUpstream):
		return middleware.NewAppError(fiber.StatusBadGateway, custom.get(err, response.MessageBadGateway), nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
