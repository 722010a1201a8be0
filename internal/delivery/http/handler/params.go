package handler

import (
	"strconv"

	"lynxhire/internal/delivery/http/middleware"
	"lynxhire/internal/domain/profile"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// callerOf returns the zero caller for anonymous requests; usecases decide
// how to answer them.
func callerOf(c fiber.Ctx) profile.Caller {
	caller, _ := middleware.CallerFrom(c)
	return caller
}

func uuidParam(c fiber.Ctx, name, notFoundMsg string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusNotFound, notFoundMsg, nil, err)
	}
	return id, nil
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func badRequest(err error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
}
